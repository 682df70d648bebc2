package config

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

type TokenConfig struct {
	Name     string `mapstructure:"name"`
	Symbol   string `mapstructure:"symbol"`
	Decimals uint8  `mapstructure:"decimals"`
	// InitialSupply is minted to the staking admin on first start.
	InitialSupply string `mapstructure:"initial-supply"`
}

func (cfg *TokenConfig) Validate() error {
	if cfg.Name == "" {
		return errors.New("token name must be set")
	}

	if cfg.Symbol == "" {
		return errors.New("token symbol must be set")
	}

	if cfg.Decimals > 77 {
		return fmt.Errorf("decimals must not exceed 77, got %d", cfg.Decimals)
	}

	if _, err := cfg.GetInitialSupply(); err != nil {
		return fmt.Errorf("initial-supply: %w", err)
	}

	return nil
}

func (cfg *TokenConfig) GetInitialSupply() (sdkmath.Int, error) {
	if cfg.InitialSupply == "" {
		return sdkmath.ZeroInt(), nil
	}
	return types.ParseAmount(cfg.InitialSupply)
}
