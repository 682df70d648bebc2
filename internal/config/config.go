package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig  `mapstructure:"server"`
	Db        DbConfig      `mapstructure:"db"`
	Queue     *QueueConfig  `mapstructure:"queue"`
	Metrics   MetricsConfig `mapstructure:"metrics"`
	Poller    PollerConfig  `mapstructure:"poller"`
	Token     TokenConfig   `mapstructure:"token"`
	Liquidity TokenConfig   `mapstructure:"liquidity"`
	Staking   StakingConfig `mapstructure:"staking"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}

	// queue is optional, events are not published without it
	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return fmt.Errorf("queue: %w", err)
		}
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}

	if err := cfg.Token.Validate(); err != nil {
		return fmt.Errorf("token: %w", err)
	}

	if err := cfg.Liquidity.Validate(); err != nil {
		return fmt.Errorf("liquidity: %w", err)
	}

	if cfg.Token.Symbol == cfg.Liquidity.Symbol {
		return errors.New("token and liquidity symbols must differ")
	}

	if err := cfg.Staking.Validate(); err != nil {
		return fmt.Errorf("staking: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	/*
		Nested keys are overridden from the environment with `.` replaced by `_`
		and `-` replaced by `__`:
		1. `db.address` is overridden by `DB_ADDRESS`
		2. `staking.reward-rate` is overridden by `STAKING_REWARD__RATE`
	*/
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "__"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
