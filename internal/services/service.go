package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/clock"
	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/db"
	"github.com/spritzen-labs/simply-staking/internal/events"
	"github.com/spritzen-labs/simply-staking/internal/ledger"
	"github.com/spritzen-labs/simply-staking/internal/queue"
	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// Service owns the reward token, the liquidity asset and the staking engine.
// Every mutating call is serialised so that the persisted event log follows
// commit order.
type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	publisher queue.EventPublisher
	clock     clock.Clock

	mu        sync.Mutex
	recorder  *events.Recorder
	token     *ledger.Ledger
	liquidity *ledger.Ledger
	engine    *staking.Engine
	sequence  int64

	// events stored but not yet published
	outMu      sync.Mutex
	outbox     []types.Event
	publishing sync.Mutex
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	publisher queue.EventPublisher,
	clk clock.Clock,
) (*Service, error) {
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}
	if clk == nil {
		clk = clock.NewSystemClock()
	}

	admin := cfg.Staking.Admin()
	recorder := events.NewRecorder()
	sink := events.Fanout(recorder, events.SinkFunc(traceEvent))

	token, err := ledger.New(
		metadata(cfg.Token),
		admin,
		ledger.WithClock(clk),
		ledger.WithEventSink(sink),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token ledger: %w", err)
	}

	liquidity, err := ledger.New(
		metadata(cfg.Liquidity),
		admin,
		ledger.WithClock(clk),
		ledger.WithEventSink(sink),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create liquidity ledger: %w", err)
	}

	engine, err := staking.New(
		admin,
		cfg.Staking.Engine(),
		liquidity,
		token,
		staking.WithParams(cfg.Staking.Params()),
		staking.WithClock(clk),
		staking.WithEventSink(sink),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create staking engine: %w", err)
	}

	return &Service{
		cfg:       cfg,
		db:        db,
		publisher: publisher,
		clock:     clk,
		recorder:  recorder,
		token:     token,
		liquidity: liquidity,
		engine:    engine,
	}, nil
}

// Start restores persisted state, bootstraps an empty deployment and starts
// the stats poller.
func (s *Service) Start(ctx context.Context) error {
	restored, err := s.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore state: %w", err)
	}

	if !restored {
		if err := s.Bootstrap(ctx); err != nil {
			return fmt.Errorf("failed to bootstrap: %w", err)
		}
	}

	s.StartStatsPoller(ctx)
	return nil
}

func (s *Service) ledgers() []*ledger.Ledger {
	return []*ledger.Ledger{s.token, s.liquidity}
}

func traceEvent(ev types.Event) {
	log.Trace().
		Str("event_id", ev.ID).
		Str("source", ev.Source).
		Stringer("type", ev.Type).
		Stringer("amount", ev.Amount).
		Msg("Event emitted")
}

func metadata(cfg config.TokenConfig) ledger.Metadata {
	return ledger.Metadata{
		Name:     cfg.Name,
		Symbol:   cfg.Symbol,
		Decimals: cfg.Decimals,
	}
}
