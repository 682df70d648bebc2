package staking

import (
	"fmt"
	"time"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

const (
	DefaultRewardRate             = 10
	DefaultRewardMaturationWindow = 10 * time.Minute
	DefaultUnstakeLockDuration    = 10 * time.Minute
)

// Params are the global reward parameters. RewardRate is the percent of the
// staked amount earned per maturation window.
type Params struct {
	RewardRate             uint64        `json:"reward_rate"`
	RewardMaturationWindow time.Duration `json:"reward_maturation_window"`
	UnstakeLockDuration    time.Duration `json:"unstake_lock_duration"`
}

func DefaultParams() Params {
	return Params{
		RewardRate:             DefaultRewardRate,
		RewardMaturationWindow: DefaultRewardMaturationWindow,
		UnstakeLockDuration:    DefaultUnstakeLockDuration,
	}
}

func (p Params) Validate() error {
	if p.RewardMaturationWindow < 0 {
		return fmt.Errorf("%w: reward maturation window must not be negative", types.ErrInvalidAmount)
	}
	if p.UnstakeLockDuration < 0 {
		return fmt.Errorf("%w: unstake lock duration must not be negative", types.ErrInvalidAmount)
	}
	return nil
}
