//go:build integration

package queue_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/queue"
	"github.com/spritzen-labs/simply-staking/internal/types"
	"github.com/spritzen-labs/simply-staking/pkg"
	"github.com/spritzen-labs/simply-staking/testutil"
)

const (
	rabbitUser     = "user"
	rabbitPassword = "password"
	rabbitVersion  = "3.13-alpine"
)

func setupRabbitContainer(t *testing.T) *config.QueueConfig {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       "rabbitmq-integration-tests-" + pkg.RandString(3),
		Repository: "rabbitmq",
		Tag:        rabbitVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPassword,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pool.Purge(resource))
	})

	addr := fmt.Sprintf("amqp://%s:%s@localhost:%s/", rabbitUser, rabbitPassword, resource.GetPort("5672/tcp"))
	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		conn, err := amqp.Dial(addr)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	require.NoError(t, err)

	return &config.QueueConfig{
		QueueUser:              rabbitUser,
		QueuePassword:          rabbitPassword,
		Url:                    "localhost:" + resource.GetPort("5672/tcp"),
		QueueName:              "events-" + pkg.RandString(4),
		QueueProcessingTimeout: 5 * time.Second,
		MsgMaxRetryAttempts:    3,
		RetryInterval:          100 * time.Millisecond,
		QueueType:              config.QuorumQueueType,
	}
}

func TestQueueManagerPushEvent(t *testing.T) {
	metrics.Init(9997)
	cfg := setupRabbitContainer(t)

	qm, err := queue.NewQueueManager(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(qm.Shutdown)

	ev := types.Event{
		ID:        uuid.NewString(),
		Type:      types.EventStake,
		Source:    "staking",
		Account:   testutil.RandomAddress(),
		Amount:    sdkmath.NewInt(10),
		Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, qm.PushEvent(t.Context(), ev))

	conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s/", rabbitUser, rabbitPassword, cfg.Url))
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	deliveries, err := ch.ConsumeWithContext(ctx, cfg.QueueName, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case msg := <-deliveries:
		assert.Equal(t, ev.ID, msg.MessageId)
		assert.Equal(t, "application/json", msg.ContentType)

		var got types.Event
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, ev.Account, got.Account)
		assert.Equal(t, ev.Amount.String(), got.Amount.String())
		assert.Equal(t, ev.Type, got.Type)
	case <-ctx.Done():
		t.Fatal("no message delivered")
	}
}
