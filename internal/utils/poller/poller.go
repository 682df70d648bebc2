package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(p *Poller)

// WithImmediateRun makes Start poll once before waiting for the first tick.
func WithImmediateRun() Option {
	return func(p *Poller) {
		p.immediate = true
	}
}

type Poller struct {
	name       string
	interval   time.Duration
	immediate  bool
	pollMethod func(ctx context.Context) error

	quit     chan struct{}
	stopOnce sync.Once
}

func NewPoller(name string, interval time.Duration, pollMethod func(ctx context.Context) error, opts ...Option) *Poller {
	p := &Poller{
		name:       name,
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start blocks until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	logger := log.Ctx(ctx).With().Str("poller", p.name).Logger()
	logger.Info().Msgf("Starting poller with interval %s", p.interval)

	if p.immediate {
		p.poll(ctx, &logger)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx, &logger)
		case <-ctx.Done():
			logger.Info().Msg("Poller stopped, context done")
			return
		case <-p.quit:
			logger.Info().Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context, logger *zerolog.Logger) {
	start := time.Now()
	if err := p.pollMethod(ctx); err != nil {
		logger.Error().Err(err).Msg("Error polling")
		return
	}
	logger.Debug().Dur("took", time.Since(start)).Msg("Polled")
}

// Stop ends a running Start. It is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}
