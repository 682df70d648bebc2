package services

import (
	"context"
	"fmt"

	"github.com/spritzen-labs/simply-staking/internal/db"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

type EventQuery struct {
	Account types.Address
	Source  string
	Type    types.EventType
	Limit   int64
}

// Events returns stored events newest first.
func (s *Service) Events(ctx context.Context, q EventQuery) ([]types.Event, error) {
	filter := db.EventFilter{
		Source: q.Source,
		Type:   q.Type.String(),
		Limit:  q.Limit,
	}
	if !q.Account.IsZero() {
		filter.Account = q.Account.String()
	}

	docs, err := s.db.GetEvents(ctx, filter)
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to get events: %w", err))
	}

	out := make([]types.Event, 0, len(docs))
	for _, doc := range docs {
		ev, err := doc.ToEvent()
		if err != nil {
			return nil, types.NewInternalServiceError(fmt.Errorf("failed to decode event %s: %w", doc.ID, err))
		}
		out = append(out, ev)
	}

	return out, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
