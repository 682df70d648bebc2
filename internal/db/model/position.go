package model

import (
	"fmt"
	"time"

	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

type PositionDocument struct {
	Account           string    `bson:"_id"`
	Staked            string    `bson:"staked"`
	AvailableReward   string    `bson:"available_reward"`
	UnavailableReward string    `bson:"unavailable_reward"`
	LastActionAt      time.Time `bson:"last_action_at"`
	LockedSince       time.Time `bson:"locked_since"`
}

func FromPosition(account types.Address, p staking.Position) *PositionDocument {
	return &PositionDocument{
		Account:           account.String(),
		Staked:            p.Staked.String(),
		AvailableReward:   p.AvailableReward.String(),
		UnavailableReward: p.UnavailableReward.String(),
		LastActionAt:      p.LastActionAt,
		LockedSince:       p.LockedSince,
	}
}

func (d *PositionDocument) ToPosition() (types.Address, staking.Position, error) {
	account, err := types.ParseAddress(d.Account)
	if err != nil {
		return types.Address{}, staking.Position{}, err
	}

	pos := staking.Position{
		LastActionAt: d.LastActionAt.UTC(),
		LockedSince:  d.LockedSince.UTC(),
	}
	if pos.Staked, err = types.ParseAmount(d.Staked); err != nil {
		return types.Address{}, staking.Position{}, fmt.Errorf("position %s staked: %w", d.Account, err)
	}
	if pos.AvailableReward, err = types.ParseAmount(d.AvailableReward); err != nil {
		return types.Address{}, staking.Position{}, fmt.Errorf("position %s available reward: %w", d.Account, err)
	}
	if pos.UnavailableReward, err = types.ParseAmount(d.UnavailableReward); err != nil {
		return types.Address{}, staking.Position{}, fmt.Errorf("position %s unavailable reward: %w", d.Account, err)
	}

	return account, pos, nil
}
