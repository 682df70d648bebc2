package config

import (
	"errors"
	"time"
)

const (
	ClassicQueueType = "classic"
	QuorumQueueType  = "quorum"
)

type QueueConfig struct {
	QueueUser              string        `mapstructure:"queue-user"`
	QueuePassword          string        `mapstructure:"queue-password"`
	Url                    string        `mapstructure:"url"`
	QueueName              string        `mapstructure:"queue-name"`
	QueueProcessingTimeout time.Duration `mapstructure:"processing-timeout"`
	MsgMaxRetryAttempts    uint          `mapstructure:"msg-max-retry-attempts"`
	RetryInterval          time.Duration `mapstructure:"retry-interval"`
	QueueType              string        `mapstructure:"queue-type"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return errors.New("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return errors.New("missing queue password")
	}

	if cfg.Url == "" {
		return errors.New("missing queue url")
	}

	if cfg.QueueName == "" {
		return errors.New("missing queue name")
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return errors.New("processing-timeout must be positive")
	}

	if cfg.MsgMaxRetryAttempts == 0 {
		return errors.New("msg-max-retry-attempts must be positive")
	}

	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	switch cfg.QueueType {
	case "":
		cfg.QueueType = QuorumQueueType
	case ClassicQueueType, QuorumQueueType:
	default:
		return errors.New("queue-type must be classic or quorum")
	}

	return nil
}
