package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// EventPublisher forwards committed events to downstream consumers.
//
//go:generate mockery --name=EventPublisher --output=../../tests/mocks --outpkg=mocks --filename=mock_event_publisher.go
type EventPublisher interface {
	PushEvent(ctx context.Context, ev types.Event) error
	Shutdown()
}

// NoopPublisher is used when no queue is configured.
type NoopPublisher struct{}

func (NoopPublisher) PushEvent(context.Context, types.Event) error { return nil }

func (NoopPublisher) Shutdown() {}

type QueueManager struct {
	cfg    *config.QueueConfig
	logger *zap.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	if cfg == nil {
		return nil, errors.New("queue config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	qm := &QueueManager{
		cfg:    cfg,
		logger: logger,
	}
	if err := qm.connect(); err != nil {
		return nil, err
	}

	return qm, nil
}

func (qm *QueueManager) connect() error {
	dialURL, err := DialURL(qm.cfg)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(dialURL)
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open queue channel: %w", err)
	}

	if err := DeclareQueue(channel, qm.cfg); err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	qm.conn = conn
	qm.channel = channel
	qm.logger.Info("connected to queue", zap.String("queue", qm.cfg.QueueName))

	return nil
}

// DialURL places the configured credentials into the queue url.
func DialURL(cfg *config.QueueConfig) (string, error) {
	raw := cfg.Url
	if !strings.Contains(raw, "://") {
		raw = "amqp://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid queue url: %w", err)
	}
	u.User = url.UserPassword(cfg.QueueUser, cfg.QueuePassword)

	return u.String(), nil
}

// DeclareQueue declares the durable events queue. Publishers and consumers
// declare it with the same arguments.
func DeclareQueue(ch *amqp.Channel, cfg *config.QueueConfig) error {
	_, err := ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		amqp.Table{"x-queue-type": cfg.QueueType},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.QueueName, err)
	}
	return nil
}

// PushEvent publishes ev as JSON. A failed publish is retried up to
// msg-max-retry-attempts times, reconnecting when the channel was closed.
func (qm *QueueManager) PushEvent(ctx context.Context, ev types.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", ev.ID, err)
	}

	err = retry.Do(
		func() error {
			return qm.publish(ctx, ev, body)
		},
		retry.Context(ctx),
		retry.Attempts(qm.cfg.MsgMaxRetryAttempts),
		retry.Delay(qm.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Uint("attempt", n+1).
				Str("event_id", ev.ID).
				Err(err).
				Msg("retrying queue publish")
		}),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		qm.logger.Error("failed to push event", zap.String("event_id", ev.ID), zap.Error(err))
		return err
	}

	return nil
}

func (qm *QueueManager) publish(ctx context.Context, ev types.Event, body []byte) error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.channel == nil || qm.channel.IsClosed() {
		if qm.conn != nil {
			qm.conn.Close()
		}
		if err := qm.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.QueueProcessingTimeout)
	defer cancel()

	return qm.channel.PublishWithContext(ctx,
		"",               // default exchange
		qm.cfg.QueueName, // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Type:         ev.Type.String(),
			Timestamp:    ev.Timestamp,
			Body:         body,
		},
	)
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.channel != nil {
		if err := qm.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			qm.logger.Warn("failed to close queue channel", zap.Error(err))
		}
	}
	if qm.conn != nil {
		if err := qm.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			qm.logger.Warn("failed to close queue connection", zap.Error(err))
		}
	}
	_ = qm.logger.Sync()
}
