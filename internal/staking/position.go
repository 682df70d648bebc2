package staking

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

// Position is a participant's staking record. It is created by the first
// stake and never removed.
type Position struct {
	Staked            sdkmath.Int
	AvailableReward   sdkmath.Int
	UnavailableReward sdkmath.Int
	// LastActionAt is the settlement clock.
	LastActionAt time.Time
	// LockedSince is the time of the latest stake, the unstake lock runs from it.
	LockedSince time.Time
}

func NewPosition() Position {
	return Position{
		Staked:            sdkmath.ZeroInt(),
		AvailableReward:   sdkmath.ZeroInt(),
		UnavailableReward: sdkmath.ZeroInt(),
	}
}

// Balance is the participant view returned by BalanceOf.
type Balance struct {
	Staked            sdkmath.Int `json:"staked"`
	AvailableReward   sdkmath.Int `json:"available_reward"`
	UnavailableReward sdkmath.Int `json:"unavailable_reward"`
}

func (p Position) Balance() Balance {
	return Balance{
		Staked:            p.Staked,
		AvailableReward:   p.AvailableReward,
		UnavailableReward: p.UnavailableReward,
	}
}

func (p Position) normalized() Position {
	if p.Staked.IsNil() {
		p.Staked = sdkmath.ZeroInt()
	}
	if p.AvailableReward.IsNil() {
		p.AvailableReward = sdkmath.ZeroInt()
	}
	if p.UnavailableReward.IsNil() {
		p.UnavailableReward = sdkmath.ZeroInt()
	}
	return p
}
