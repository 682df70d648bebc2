package config

import (
	"errors"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

type StakingConfig struct {
	// AdminAddress is the staking admin and the minter of both ledgers.
	AdminAddress string `mapstructure:"admin-address"`
	// EngineAddress is the account holding staked liquidity and the reward pool.
	EngineAddress   string        `mapstructure:"engine-address"`
	RewardRate      uint64        `mapstructure:"reward-rate"`
	UnavailableTime time.Duration `mapstructure:"unavailable-time"`
	UnstakeTime     time.Duration `mapstructure:"unstake-time"`
	// RewardPool is minted to the engine account on first start.
	RewardPool string `mapstructure:"reward-pool"`
}

func (cfg *StakingConfig) Validate() error {
	admin, err := types.ParseAddress(cfg.AdminAddress)
	if err != nil {
		return fmt.Errorf("admin-address: %w", err)
	}
	if admin.IsZero() {
		return errors.New("admin-address must not be the zero address")
	}

	engine, err := types.ParseAddress(cfg.EngineAddress)
	if err != nil {
		return fmt.Errorf("engine-address: %w", err)
	}
	if engine.IsZero() {
		return errors.New("engine-address must not be the zero address")
	}

	if admin == engine {
		return errors.New("admin-address and engine-address must differ")
	}

	if cfg.UnavailableTime < 0 {
		return errors.New("unavailable-time must not be negative")
	}

	if cfg.UnstakeTime < 0 {
		return errors.New("unstake-time must not be negative")
	}

	if _, err := cfg.GetRewardPool(); err != nil {
		return fmt.Errorf("reward-pool: %w", err)
	}

	return nil
}

func (cfg *StakingConfig) Admin() types.Address {
	return types.MustParseAddress(cfg.AdminAddress)
}

func (cfg *StakingConfig) Engine() types.Address {
	return types.MustParseAddress(cfg.EngineAddress)
}

func (cfg *StakingConfig) Params() staking.Params {
	return staking.Params{
		RewardRate:             cfg.RewardRate,
		RewardMaturationWindow: cfg.UnavailableTime,
		UnstakeLockDuration:    cfg.UnstakeTime,
	}
}

func (cfg *StakingConfig) GetRewardPool() (sdkmath.Int, error) {
	if cfg.RewardPool == "" {
		return sdkmath.ZeroInt(), nil
	}
	return types.ParseAmount(cfg.RewardPool)
}
