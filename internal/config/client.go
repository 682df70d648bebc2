package config

import (
	"errors"
	"strings"
	"time"
)

const (
	defaultClientTimeout       = 15 * time.Second
	defaultClientMaxRetryTimes = 3
	defaultClientRetryInterval = 500 * time.Millisecond
)

// ClientConfig configures the API client used by the CLI commands.
type ClientConfig struct {
	BaseURL       string        `mapstructure:"base-url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	CallerHeader  string        `mapstructure:"caller-header"`
}

func (cfg *ClientConfig) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base-url must be set")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout < 0 || cfg.RetryInterval < 0 {
		return errors.New("timeout and retry-interval must not be negative")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultClientTimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultClientMaxRetryTimes
	}
	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = defaultClientRetryInterval
	}
	if cfg.CallerHeader == "" {
		cfg.CallerHeader = DefaultCallerHeader
	}

	return nil
}
