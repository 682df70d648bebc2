package model

import (
	"time"

	"github.com/spritzen-labs/simply-staking/internal/staking"
)

const StakingParamsID = "singleton"

type StakingParamsDocument struct {
	ID                     string        `bson:"_id"`
	RewardRate             uint64        `bson:"reward_rate"`
	RewardMaturationWindow time.Duration `bson:"reward_maturation_window"`
	UnstakeLockDuration    time.Duration `bson:"unstake_lock_duration"`
	UpdatedAt              time.Time     `bson:"updated_at"`
}

func FromParams(p staking.Params, updatedAt time.Time) *StakingParamsDocument {
	return &StakingParamsDocument{
		ID:                     StakingParamsID,
		RewardRate:             p.RewardRate,
		RewardMaturationWindow: p.RewardMaturationWindow,
		UnstakeLockDuration:    p.UnstakeLockDuration,
		UpdatedAt:              updatedAt,
	}
}

func (d *StakingParamsDocument) ToParams() staking.Params {
	return staking.Params{
		RewardRate:             d.RewardRate,
		RewardMaturationWindow: d.RewardMaturationWindow,
		UnstakeLockDuration:    d.UnstakeLockDuration,
	}
}
