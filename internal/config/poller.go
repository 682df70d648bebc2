package config

import (
	"fmt"
	"time"
)

const (
	defaultStatsPollingInterval = 30 * time.Second
	minStatsPollingInterval     = time.Second
)

type PollerConfig struct {
	// StatsPollingInterval is how often supply and staking gauges are refreshed.
	StatsPollingInterval time.Duration `mapstructure:"stats-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.StatsPollingInterval <= 0 {
		cfg.StatsPollingInterval = defaultStatsPollingInterval
		return nil
	}
	if cfg.StatsPollingInterval < minStatsPollingInterval {
		return fmt.Errorf("stats-polling-interval must be at least %s, got %s",
			minStatsPollingInterval, cfg.StatsPollingInterval)
	}

	return nil
}
