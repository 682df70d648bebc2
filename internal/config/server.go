package config

import (
	"errors"
	"fmt"
	"time"
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
	CallerHeader string        `mapstructure:"caller-header"`
}

const DefaultCallerHeader = "X-Caller-Address"

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("host cannot be empty")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port number must be between 0 and 65535, got %d", cfg.Port)
	}

	if cfg.WriteTimeout <= 0 {
		return errors.New("write-timeout must be positive")
	}

	if cfg.ReadTimeout <= 0 {
		return errors.New("read-timeout must be positive")
	}

	if cfg.IdleTimeout <= 0 {
		return errors.New("idle-timeout must be positive")
	}

	if cfg.CallerHeader == "" {
		cfg.CallerHeader = DefaultCallerHeader
	}

	return nil
}

func (cfg *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
