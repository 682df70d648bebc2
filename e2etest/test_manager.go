//go:build e2e

package e2etest

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/spritzen-labs/simply-staking/consumer"
	"github.com/spritzen-labs/simply-staking/internal/api"
	"github.com/spritzen-labs/simply-staking/internal/clients/stakingclient"
	"github.com/spritzen-labs/simply-staking/internal/clock"
	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/db"
	dbmodel "github.com/spritzen-labs/simply-staking/internal/db/model"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/queue"
	"github.com/spritzen-labs/simply-staking/internal/services"
	"github.com/spritzen-labs/simply-staking/internal/types"
	"github.com/spritzen-labs/simply-staking/pkg"
)

const (
	mongoUser     = "user"
	mongoPassword = "password"
	mongoVersion  = "7.0.5"

	rabbitUser     = "user"
	rabbitPassword = "password"
	rabbitVersion  = "3.13-alpine"

	eventuallyWaitTimeOut = 20 * time.Second
	eventuallyPollTime    = 200 * time.Millisecond
)

var (
	adminAddress  = types.MustParseAddress("0x1000000000000000000000000000000000000001")
	engineAddress = types.MustParseAddress("0x2000000000000000000000000000000000000002")
)

// TestManager runs the whole server against real mongo and rabbitmq
// containers. The service clock is manual so lock and maturation windows can
// be crossed without waiting.
type TestManager struct {
	Config   *config.Config
	Clock    *clock.ManualClock
	Client   *stakingclient.Client
	Consumer *consumer.QueueConsumer
	Events   <-chan types.Event

	dbClient  db.DbInterface
	publisher *queue.QueueManager
	server    *httptest.Server
}

func StartManager(t *testing.T) *TestManager {
	metrics.Init(9993)

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	pool.MaxWait = 2 * time.Minute

	cfg := DefaultConfig()
	cfg.Db = startMongo(t, pool)
	cfg.Queue = startRabbit(t, pool)

	ctx := t.Context()
	require.NoError(t, dbmodel.Setup(ctx, &cfg.Db))

	dbClient, err := db.New(ctx, cfg.Db)
	require.NoError(t, err)

	publisher, err := queue.NewQueueManager(cfg.Queue, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(publisher.Shutdown)

	eventConsumer, err := consumer.NewQueueConsumer(cfg.Queue)
	require.NoError(t, err)
	require.NoError(t, eventConsumer.Start())
	t.Cleanup(func() {
		require.NoError(t, eventConsumer.Stop())
	})
	evs, err := eventConsumer.ReceiveEvents(ctx)
	require.NoError(t, err)

	tm := &TestManager{
		Config:    cfg,
		Clock:     clock.NewManualClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		Consumer:  eventConsumer,
		Events:    evs,
		dbClient:  db.NewDbWithMetrics(dbClient),
		publisher: publisher,
	}
	tm.StartServer(t)

	return tm
}

// StartServer starts a fresh service and api server on the shared database,
// replacing any running one. The new service restores what is stored.
func (tm *TestManager) StartServer(t *testing.T) {
	if tm.server != nil {
		tm.server.Close()
	}

	service, err := services.NewService(tm.Config, tm.dbClient, tm.publisher, tm.Clock)
	require.NoError(t, err)
	require.NoError(t, service.Start(t.Context()))

	handler := api.NewHandler(service, tm.Config.Server.CallerHeader)
	tm.server = httptest.NewServer(handler.Routes())
	t.Cleanup(tm.server.Close)

	clientCfg := &config.ClientConfig{
		BaseURL:       tm.server.URL,
		RetryInterval: 10 * time.Millisecond,
		CallerHeader:  tm.Config.Server.CallerHeader,
	}
	require.NoError(t, clientCfg.Validate())
	tm.Client = stakingclient.NewClient(clientCfg)
}

// NextEvent returns the next published event that touches account.
func (tm *TestManager) NextEvent(t *testing.T, account types.Address) types.Event {
	t.Helper()

	timeout := time.After(eventuallyWaitTimeOut)
	for {
		select {
		case ev, ok := <-tm.Events:
			require.True(t, ok, "event stream closed")
			for _, p := range ev.Participants() {
				if p == account {
					return ev
				}
			}
		case <-timeout:
			t.Fatalf("no event for %s within %s", account, eventuallyWaitTimeOut)
		}
	}
}

func DefaultConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			CallerHeader: config.DefaultCallerHeader,
		},
		Poller: config.PollerConfig{StatsPollingInterval: time.Second},
		Token: config.TokenConfig{
			Name:          "Spritzen",
			Symbol:        "SPR",
			Decimals:      18,
			InitialSupply: "1000000",
		},
		Liquidity: config.TokenConfig{
			Name:          "Spritzen Liquidity",
			Symbol:        "LP",
			Decimals:      18,
			InitialSupply: "10000",
		},
		Staking: config.StakingConfig{
			AdminAddress:    adminAddress.String(),
			EngineAddress:   engineAddress.String(),
			RewardRate:      10,
			UnavailableTime: 10 * time.Minute,
			UnstakeTime:     10 * time.Minute,
			RewardPool:      "100000",
		},
	}
}

func startMongo(t *testing.T, pool *dockertest.Pool) config.DbConfig {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       "mongo-e2e-" + pkg.RandString(4),
		Repository: "mongo",
		Tag:        mongoVersion,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + mongoUser,
			"MONGO_INITDB_ROOT_PASSWORD=" + mongoPassword,
		},
	}, noRestart)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pool.Purge(resource))
	})

	cfg := config.DbConfig{
		Username:       mongoUser,
		Password:       mongoPassword,
		DbName:         "simply-staking-e2e",
		Address:        fmt.Sprintf("mongodb://localhost:%s/", resource.GetPort("27017/tcp")),
		MaxEventsLimit: 100,
	}

	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts := options.Client().ApplyURI(cfg.Address).SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return err
		}
		defer client.Disconnect(ctx)
		return client.Ping(ctx, nil)
	})
	require.NoError(t, err)

	return cfg
}

func startRabbit(t *testing.T, pool *dockertest.Pool) *config.QueueConfig {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       "rabbitmq-e2e-" + pkg.RandString(4),
		Repository: "rabbitmq",
		Tag:        rabbitVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPassword,
		},
	}, noRestart)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pool.Purge(resource))
	})

	cfg := &config.QueueConfig{
		QueueUser:              rabbitUser,
		QueuePassword:          rabbitPassword,
		Url:                    "localhost:" + resource.GetPort("5672/tcp"),
		QueueName:              "simply-staking-events",
		QueueProcessingTimeout: 5 * time.Second,
		MsgMaxRetryAttempts:    3,
		RetryInterval:          100 * time.Millisecond,
		QueueType:              config.QuorumQueueType,
	}

	err = pool.Retry(func() error {
		dialURL, err := queue.DialURL(cfg)
		if err != nil {
			return err
		}
		conn, err := amqp.Dial(dialURL)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	require.NoError(t, err)

	return cfg
}

func noRestart(config *docker.HostConfig) {
	config.AutoRemove = true
	config.RestartPolicy = docker.RestartPolicy{
		Name: "no",
	}
}
