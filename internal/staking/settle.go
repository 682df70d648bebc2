package staking

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

var percent = sdkmath.NewInt(100)

// Settle brings a position up to date at `now` and resets its settlement clock.
//
// Once a full maturation window has passed since the last action the booked
// reward matures. A position held for several windows earns rate% of its
// stake for each of them, the booked reward counting towards the first one.
// With a zero window every settlement matures the booked reward.
func Settle(pos Position, p Params, now time.Time) (Position, error) {
	out := pos.normalized()

	elapsed := now.Sub(out.LastActionAt)
	if elapsed < 0 {
		elapsed = 0
	}

	var promoted sdkmath.Int
	switch {
	case p.RewardMaturationWindow <= 0:
		promoted = out.UnavailableReward
	case elapsed >= p.RewardMaturationWindow:
		windows := int64(elapsed / p.RewardMaturationWindow)
		earned, err := accrued(out.Staked, p.RewardRate, windows)
		if err != nil {
			return pos, err
		}
		promoted = sdkmath.MaxInt(out.UnavailableReward, earned)
	}

	if !promoted.IsNil() {
		available, err := out.AvailableReward.SafeAdd(promoted)
		if err != nil {
			return pos, fmt.Errorf("%w: reward overflow: %w", types.ErrInvalidAmount, err)
		}
		out.AvailableReward = available
		out.UnavailableReward = sdkmath.ZeroInt()
	}

	out.LastActionAt = now
	return out, nil
}

// BookedReward is the reward credited as unavailable when amount is staked.
func BookedReward(amount sdkmath.Int, rate uint64) (sdkmath.Int, error) {
	return accrued(amount, rate, 1)
}

func accrued(staked sdkmath.Int, rate uint64, windows int64) (sdkmath.Int, error) {
	if staked.IsZero() || rate == 0 || windows <= 0 {
		return sdkmath.ZeroInt(), nil
	}

	v, err := staked.SafeMul(sdkmath.NewIntFromUint64(rate))
	if err == nil {
		v, err = v.SafeMul(sdkmath.NewInt(windows))
	}
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: reward overflow: %w", types.ErrInvalidAmount, err)
	}

	return v.Quo(percent), nil
}
