package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/utils/poller"
)

// StartStatsPoller refreshes the gauges right away and then on every
// poller.stats-polling-interval.
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.updateStats),
		poller.WithImmediateRun(),
	)
	go statsPoller.Start(ctx)
}

// updateStats refreshes the supply and staking gauges from in-memory state.
func (s *Service) updateStats(ctx context.Context) error {
	for _, l := range s.ledgers() {
		symbol := l.Metadata().Symbol
		metrics.RecordTotalSupply(symbol, l.TotalSupply())
		metrics.RecordHolders(symbol, l.Holders())
	}

	rewardPool, err := s.token.BalanceOf(s.engine.Account())
	if err != nil {
		return err
	}
	totalStaked := s.engine.TotalStaked()
	positions := len(s.engine.Positions())

	metrics.RecordRewardPool(rewardPool)
	metrics.RecordTotalStaked(totalStaked)
	metrics.RecordPositions(positions)

	log.Ctx(ctx).Debug().
		Stringer("reward_pool", rewardPool).
		Stringer("total_staked", totalStaked).
		Int("positions", positions).
		Msg("Updated stats")

	return nil
}
