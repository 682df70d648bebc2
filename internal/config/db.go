package config

import (
	"errors"
)

type DbConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"db-name"`
	Address  string `mapstructure:"address"`
	// MaxEventsLimit caps the number of events returned by a single query.
	MaxEventsLimit int64 `mapstructure:"max-events-limit"`
}

const defaultMaxEventsLimit = 100

func (cfg *DbConfig) Validate() error {
	if cfg.Username == "" {
		return errors.New("missing db username")
	}

	if cfg.Password == "" {
		return errors.New("missing db password")
	}

	if cfg.Address == "" {
		return errors.New("missing db address")
	}

	if cfg.DbName == "" {
		return errors.New("missing db name")
	}

	if cfg.MaxEventsLimit < 0 {
		return errors.New("max-events-limit must not be negative")
	}
	if cfg.MaxEventsLimit == 0 {
		cfg.MaxEventsLimit = defaultMaxEventsLimit
	}

	return nil
}
