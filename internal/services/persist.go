package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/db/model"
	"github.com/spritzen-labs/simply-staking/internal/ledger"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// changeSet lists the rows touched by one call.
type changeSet struct {
	balances   map[*ledger.Ledger]map[types.Address]struct{}
	allowances map[*ledger.Ledger]map[ledger.AllowanceKey]struct{}
	supply     map[*ledger.Ledger]struct{}
	positions  map[types.Address]struct{}
}

func newChangeSet() *changeSet {
	return &changeSet{
		balances:   make(map[*ledger.Ledger]map[types.Address]struct{}),
		allowances: make(map[*ledger.Ledger]map[ledger.AllowanceKey]struct{}),
		supply:     make(map[*ledger.Ledger]struct{}),
		positions:  make(map[types.Address]struct{}),
	}
}

func (c *changeSet) addBalance(l *ledger.Ledger, a types.Address) {
	if a.IsZero() {
		// mint or burn
		c.supply[l] = struct{}{}
		return
	}
	if c.balances[l] == nil {
		c.balances[l] = make(map[types.Address]struct{})
	}
	c.balances[l][a] = struct{}{}
}

func (c *changeSet) addAllowance(l *ledger.Ledger, owner, spender types.Address) {
	if c.allowances[l] == nil {
		c.allowances[l] = make(map[ledger.AllowanceKey]struct{})
	}
	c.allowances[l][ledger.AllowanceKey{Owner: owner, Spender: spender}] = struct{}{}
}

func (s *Service) ledgerBySymbol(symbol string) *ledger.Ledger {
	switch symbol {
	case s.token.Metadata().Symbol:
		return s.token
	case s.liquidity.Metadata().Symbol:
		return s.liquidity
	}
	return nil
}

// collect derives touched rows from committed events.
func (s *Service) collect(evs []types.Event, changes *changeSet) {
	for _, ev := range evs {
		if ev.Source == staking.EventSource {
			changes.positions[ev.Account] = struct{}{}
			continue
		}

		l := s.ledgerBySymbol(ev.Source)
		if l == nil {
			continue
		}
		switch ev.Type {
		case types.EventTransfer:
			changes.addBalance(l, ev.From)
			changes.addBalance(l, ev.To)
		case types.EventApproval:
			changes.addAllowance(l, ev.Owner, ev.Spender)
		}
	}
}

// flush persists the rows touched by the last call together with its events
// and queues the events for publishing. The caller must hold s.mu.
func (s *Service) flush(ctx context.Context, changes *changeSet) error {
	evs := s.recorder.Drain()
	if len(evs) == 0 {
		return nil
	}
	s.collect(evs, changes)

	if err := s.persistChanges(ctx, changes); err != nil {
		return types.NewNotPersistedError(fmt.Errorf("failed to persist state: %w", err))
	}

	docs := make([]*model.EventDocument, len(evs))
	for i, ev := range evs {
		docs[i] = model.FromEvent(ev, s.sequence+int64(i)+1)
	}
	if err := s.db.SaveEvents(ctx, docs); err != nil {
		return types.NewNotPersistedError(fmt.Errorf("failed to save events: %w", err))
	}
	s.sequence += int64(len(evs))

	for _, ev := range evs {
		metrics.RecordEvent(ev.Source, ev.Type.String())
	}
	s.enqueue(evs)

	return nil
}

func (s *Service) enqueue(evs []types.Event) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	s.outbox = append(s.outbox, evs...)
}

func (s *Service) takeOutbox() []types.Event {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	evs := s.outbox
	s.outbox = nil
	return evs
}

func (s *Service) hasPending() bool {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	return len(s.outbox) > 0
}

// publishPending pushes stored events in commit order. It must be called
// without s.mu held. One goroutine drains the outbox at a time and the others
// leave their events to it.
func (s *Service) publishPending(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for s.publishing.TryLock() {
		for evs := s.takeOutbox(); len(evs) > 0; evs = s.takeOutbox() {
			for _, ev := range evs {
				if err := s.publisher.PushEvent(ctx, ev); err != nil {
					// the event is already stored, consumers can catch up from the log
					log.Ctx(ctx).Error().
						Err(err).
						Str("event_id", ev.ID).
						Msg("Failed to publish event")
				}
			}
		}
		s.publishing.Unlock()

		if !s.hasPending() {
			return
		}
	}
}

func (s *Service) persistChanges(ctx context.Context, changes *changeSet) error {
	now := s.clock.Now()

	for l, accounts := range changes.balances {
		symbol := l.Metadata().Symbol
		for a := range accounts {
			balance, err := l.BalanceOf(a)
			if err != nil {
				return err
			}
			if err := s.db.UpsertBalance(ctx, model.NewBalanceDocument(symbol, a, balance, now)); err != nil {
				return err
			}
		}
	}

	for l, keys := range changes.allowances {
		symbol := l.Metadata().Symbol
		for k := range keys {
			allowance, err := l.Allowance(k.Owner, k.Spender)
			if err != nil {
				return err
			}
			if err := s.db.UpsertAllowance(ctx, model.NewAllowanceDocument(symbol, k, allowance, now)); err != nil {
				return err
			}
		}
	}

	for l := range changes.supply {
		doc := model.NewSupplyDocument(l.Metadata().Symbol, l.TotalSupply(), now)
		if err := s.db.UpsertSupply(ctx, doc); err != nil {
			return err
		}
	}

	for a := range changes.positions {
		pos, ok := s.engine.Position(a)
		if !ok {
			continue
		}
		if err := s.db.UpsertPosition(ctx, model.FromPosition(a, pos)); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) persistParams(ctx context.Context) error {
	doc := model.FromParams(s.engine.Params(), s.clock.Now())
	if err := s.db.UpsertStakingParams(ctx, doc); err != nil {
		return types.NewNotPersistedError(fmt.Errorf("failed to persist staking params: %w", err))
	}
	return nil
}
