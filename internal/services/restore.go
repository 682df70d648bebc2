package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/spritzen-labs/simply-staking/internal/db"
	"github.com/spritzen-labs/simply-staking/internal/db/model"
	"github.com/spritzen-labs/simply-staking/internal/ledger"
	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// Restore loads ledgers, staking params, positions and the event sequence
// from the database. It reports false when nothing was stored yet, in which
// case in-memory state is left untouched.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	log := log.Ctx(ctx)

	var (
		tokenState, liquidityState *model.LedgerState
		paramsDoc                  *model.StakingParamsDocument
		positionDocs               []*model.PositionDocument
		lastSequence               int64
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		tokenState, err = s.loadLedgerState(ctx, s.token)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		liquidityState, err = s.loadLedgerState(ctx, s.liquidity)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		paramsDoc, err = s.db.GetStakingParams(ctx)
		if db.IsNotFoundError(err) {
			return nil
		}
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		positionDocs, err = s.db.GetPositions(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		lastSequence, err = s.db.GetLastEventSequence(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return false, err
	}

	if tokenState == nil && liquidityState == nil {
		log.Info().Msg("No stored ledger state found")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := restoreLedger(s.token, tokenState); err != nil {
		return false, err
	}
	if err := restoreLedger(s.liquidity, liquidityState); err != nil {
		return false, err
	}

	params := s.cfg.Staking.Params()
	if paramsDoc != nil {
		params = paramsDoc.ToParams()
	}

	positions := make(map[types.Address]staking.Position, len(positionDocs))
	for _, doc := range positionDocs {
		account, pos, err := doc.ToPosition()
		if err != nil {
			return false, fmt.Errorf("failed to decode position: %w", err)
		}
		positions[account] = pos
	}
	if err := s.engine.Restore(params, positions); err != nil {
		return false, fmt.Errorf("failed to restore staking engine: %w", err)
	}

	s.sequence = lastSequence

	log.Info().
		Stringer("token_supply", s.token.TotalSupply()).
		Stringer("liquidity_supply", s.liquidity.TotalSupply()).
		Int("positions", len(positions)).
		Int64("last_sequence", lastSequence).
		Msg("Restored state")

	return true, nil
}

func (s *Service) loadLedgerState(ctx context.Context, l *ledger.Ledger) (*model.LedgerState, error) {
	state, err := s.db.GetLedgerState(ctx, l.Metadata().Symbol)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s ledger: %w", l.Metadata().Symbol, err)
	}
	return state, nil
}

func restoreLedger(l *ledger.Ledger, stored *model.LedgerState) error {
	if stored == nil {
		return nil
	}

	state, err := stored.ToState()
	if err != nil {
		return fmt.Errorf("failed to decode %s ledger: %w", l.Metadata().Symbol, err)
	}
	if err := l.Restore(state); err != nil {
		return fmt.Errorf("failed to restore %s ledger: %w", l.Metadata().Symbol, err)
	}

	return nil
}
