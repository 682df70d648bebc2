package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spritzen-labs/simply-staking/internal/api"
	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/db"
	dbmodel "github.com/spritzen-labs/simply-staking/internal/db/model"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/observability/tracing"
	"github.com/spritzen-labs/simply-staking/internal/queue"
	"github.com/spritzen-labs/simply-staking/internal/services"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking api server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return fmt.Errorf("error while setting up db model: %w", err)
	}

	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		return fmt.Errorf("error while creating db client: %w", err)
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("error while creating zap logger: %w", err)
	}
	defer func() {
		// stderr sync fails on some platforms, nothing to do about it
		_ = zapLogger.Sync()
	}()

	var publisher queue.EventPublisher = queue.NoopPublisher{}
	if cfg.Queue != nil {
		qm, err := queue.NewQueueManager(cfg.Queue, zapLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		publisher = qm
	} else {
		log.Warn().Msg("queue is not configured, events will not be published")
	}
	defer publisher.Shutdown()

	metrics.Init(cfg.Metrics.GetMetricsPort())

	service, err := services.NewService(cfg, dbClient, publisher, nil)
	if err != nil {
		return fmt.Errorf("error while creating service: %w", err)
	}
	if err := service.Start(ctx); err != nil {
		return fmt.Errorf("error while starting service: %w", err)
	}

	server := api.New(&cfg.Server, service)

	var (
		wg        conc.WaitGroup
		serverErr error
	)
	wg.Go(func() {
		serverErr = server.Start()
		stop()
	})
	wg.Go(func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down api server")
		}
	})
	wg.Wait()

	return serverErr
}
