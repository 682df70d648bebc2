package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/queue"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// EventConsumer reads the events published by the staking service.
type EventConsumer interface {
	Start() error
	// ReceiveEvents delivers events in publish order until ctx is done or the
	// consumer is stopped. Each event is acknowledged once it was decoded.
	ReceiveEvents(ctx context.Context) (<-chan types.Event, error)
	Stop() error
}

type QueueConsumer struct {
	cfg *config.QueueConfig

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

var _ EventConsumer = (*QueueConsumer)(nil)

func NewQueueConsumer(cfg *config.QueueConfig) (*QueueConsumer, error) {
	if cfg == nil {
		return nil, errors.New("queue config is required")
	}
	return &QueueConsumer{cfg: cfg}, nil
}

func (c *QueueConsumer) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	dialURL, err := queue.DialURL(c.cfg)
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
	if err := queue.DeclareQueue(channel, c.cfg); err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	c.conn = conn
	c.channel = channel
	return nil
}

func (c *QueueConsumer) ReceiveEvents(ctx context.Context) (<-chan types.Event, error) {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()
	if channel == nil {
		return nil, errors.New("consumer is not started")
	}

	deliveries, err := channel.ConsumeWithContext(ctx, c.cfg.QueueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to consume from %s: %w", c.cfg.QueueName, err)
	}

	out := make(chan types.Event)
	go func() {
		defer close(out)
		for msg := range deliveries {
			var ev types.Event
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Error().Err(err).Str("message_id", msg.MessageId).Msg("dropping undecodable event")
				_ = msg.Nack(false, false)
				continue
			}
			if err := msg.Ack(false); err != nil {
				log.Warn().Err(err).Str("event_id", ev.ID).Msg("failed to ack event")
			}

			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (c *QueueConsumer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	err := c.conn.Close()
	c.conn, c.channel = nil, nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}
