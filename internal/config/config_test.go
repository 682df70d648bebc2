package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spritzen-labs/simply-staking/internal/staking"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8090,
			WriteTimeout: 60 * time.Second,
			ReadTimeout:  60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Queue: &QueueConfig{
			QueueUser:              "test",
			QueuePassword:          "test",
			Url:                    "localhost:5672",
			QueueName:              "events",
			QueueProcessingTimeout: 5 * time.Second,
			MsgMaxRetryAttempts:    10,
			RetryInterval:          time.Second,
			QueueType:              "quorum",
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
		Token: TokenConfig{
			Name:          "Spritzen",
			Symbol:        "SPR",
			Decimals:      18,
			InitialSupply: "1000000000",
		},
		Liquidity: TokenConfig{
			Name:     "Liquidity",
			Symbol:   "LP",
			Decimals: 18,
		},
		Staking: StakingConfig{
			AdminAddress:    "0x1000000000000000000000000000000000000001",
			EngineAddress:   "0x2000000000000000000000000000000000000002",
			RewardRate:      10,
			UnavailableTime: 10 * time.Minute,
			UnstakeTime:     10 * time.Minute,
			RewardPool:      "1000",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
		// defaults are filled in
		assert.Equal(t, DefaultCallerHeader, cfg.Server.CallerHeader)
		assert.Equal(t, int64(defaultMaxEventsLimit), cfg.Db.MaxEventsLimit)
		assert.Equal(t, defaultStatsPollingInterval, cfg.Poller.StatsPollingInterval)
	})

	t.Run("optional queue", func(t *testing.T) {
		cfg := validConfig()
		cfg.Queue = nil
		require.NoError(t, cfg.Validate())
		assert.Nil(t, cfg.Queue)
	})

	cases := []struct {
		name     string
		mutate   func(cfg *Config)
		contains string
	}{
		{"missing db address", func(c *Config) { c.Db.Address = "" }, "missing db address"},
		{"bad server port", func(c *Config) { c.Server.Port = 70000 }, "port number must be between"},
		{"bad metrics host", func(c *Config) { c.Metrics.Host = "localhost" }, "invalid metrics server host"},
		{"bad queue type", func(c *Config) { c.Queue.QueueType = "stream" }, "queue-type must be classic or quorum"},
		{"missing token symbol", func(c *Config) { c.Token.Symbol = "" }, "token symbol must be set"},
		{"same symbols", func(c *Config) { c.Liquidity.Symbol = "SPR" }, "symbols must differ"},
		{"bad initial supply", func(c *Config) { c.Token.InitialSupply = "-5" }, "initial-supply"},
		{"bad admin", func(c *Config) { c.Staking.AdminAddress = "0x12" }, "admin-address"},
		{"zero engine", func(c *Config) {
			c.Staking.EngineAddress = "0x0000000000000000000000000000000000000000"
		}, "engine-address must not be the zero address"},
		{"admin is engine", func(c *Config) { c.Staking.EngineAddress = c.Staking.AdminAddress }, "must differ"},
		{"negative unstake time", func(c *Config) { c.Staking.UnstakeTime = -time.Second }, "unstake-time must not be negative"},
		{"bad reward pool", func(c *Config) { c.Staking.RewardPool = "abc" }, "reward-pool"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := validConfig()
			c.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.contains)
		})
	}
}

func TestStakingConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, staking.Params{
		RewardRate:             10,
		RewardMaturationWindow: 10 * time.Minute,
		UnstakeLockDuration:    10 * time.Minute,
	}, cfg.Staking.Params())
	assert.Equal(t, "0x1000000000000000000000000000000000000001", cfg.Staking.Admin().String())
	assert.Equal(t, "0x2000000000000000000000000000000000000002", cfg.Staking.Engine().String())

	pool, err := cfg.Staking.GetRewardPool()
	require.NoError(t, err)
	assert.Equal(t, "1000", pool.String())

	supply, err := cfg.Liquidity.GetInitialSupply()
	require.NoError(t, err)
	assert.True(t, supply.IsZero())
}

func TestNew(t *testing.T) {
	t.Run("local config file", func(t *testing.T) {
		cfg, err := New(filepath.Join("..", "..", "config", "config-local.yml"))
		require.NoError(t, err)

		assert.Equal(t, 8090, cfg.Server.Port)
		assert.Equal(t, "SPR", cfg.Token.Symbol)
		assert.Equal(t, "LP", cfg.Liquidity.Symbol)
		assert.Equal(t, 10*time.Minute, cfg.Staking.UnavailableTime)
		assert.Equal(t, 30*time.Second, cfg.Poller.StatsPollingInterval)
		require.NotNil(t, cfg.Queue)
		assert.Equal(t, "simply-staking-events", cfg.Queue.QueueName)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("STAKING_REWARD__RATE", "25")
		t.Setenv("DB_ADDRESS", "mongodb://db:27017")

		cfg, err := New(filepath.Join("..", "..", "config", "config-local.yml"))
		require.NoError(t, err)
		assert.Equal(t, uint64(25), cfg.Staking.RewardRate)
		assert.Equal(t, "mongodb://db:27017", cfg.Db.Address)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})

	t.Run("invalid content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  host: \"\"\n"), 0o600))

		_, err := New(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "host cannot be empty")
	})
}

func TestClientConfig(t *testing.T) {
	cfg := ClientConfig{BaseURL: "http://localhost:8090/"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8090", cfg.BaseURL)
	assert.Equal(t, defaultClientTimeout, cfg.Timeout)
	assert.Equal(t, uint(defaultClientMaxRetryTimes), cfg.MaxRetryTimes)
	assert.Equal(t, DefaultCallerHeader, cfg.CallerHeader)

	cfg = ClientConfig{}
	assert.Error(t, cfg.Validate())
}
