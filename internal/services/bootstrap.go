package services

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/ledger"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// Bootstrap seeds an empty deployment: the initial supplies go to the admin
// and the reward pool is minted into the engine account. Supply rows and the
// staking params are stored even when nothing is minted, so the next start
// restores instead of bootstrapping again.
func (s *Service) Bootstrap(ctx context.Context) error {
	log := log.Ctx(ctx)

	// runs after s.mu is released
	defer s.publishPending(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	admin := s.engine.Admin()

	tokenSupply, err := s.cfg.Token.GetInitialSupply()
	if err != nil {
		return err
	}
	liquiditySupply, err := s.cfg.Liquidity.GetInitialSupply()
	if err != nil {
		return err
	}
	rewardPool, err := s.cfg.Staking.GetRewardPool()
	if err != nil {
		return err
	}

	mints := []struct {
		ledger *ledger.Ledger
		to     types.Address
		amount sdkmath.Int
	}{
		{s.token, admin, tokenSupply},
		{s.token, s.engine.Account(), rewardPool},
		{s.liquidity, admin, liquiditySupply},
	}
	for _, m := range mints {
		if m.amount.IsZero() {
			continue
		}
		if err := m.ledger.Mint(admin, m.to, m.amount); err != nil {
			return fmt.Errorf("failed to mint %s %s to %s: %w", m.amount, m.ledger.Metadata().Symbol, m.to, err)
		}
	}

	changes := newChangeSet()
	changes.supply[s.token] = struct{}{}
	changes.supply[s.liquidity] = struct{}{}
	if err := s.persistChanges(ctx, changes); err != nil {
		return err
	}
	if err := s.flush(ctx, newChangeSet()); err != nil {
		return err
	}
	if err := s.persistParams(ctx); err != nil {
		return err
	}

	log.Info().
		Stringer("token_supply", s.token.TotalSupply()).
		Stringer("reward_pool", rewardPool).
		Stringer("liquidity_supply", s.liquidity.TotalSupply()).
		Msg("Bootstrapped ledgers")

	return nil
}
