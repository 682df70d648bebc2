package db

import (
	"context"

	"github.com/spritzen-labs/simply-staking/internal/db/model"
)

// EventFilter narrows GetEvents. Empty fields match everything.
type EventFilter struct {
	Account string
	Source  string
	Type    string
	Limit   int64
}

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	// SaveEvents inserts events, returning DuplicateKeyError if one is already stored.
	SaveEvents(ctx context.Context, events []*model.EventDocument) error
	// GetEvents returns matching events, newest first.
	GetEvents(ctx context.Context, filter EventFilter) ([]*model.EventDocument, error)
	// GetLastEventSequence returns 0 when no event is stored.
	GetLastEventSequence(ctx context.Context) (int64, error)
	UpsertBalance(ctx context.Context, doc *model.BalanceDocument) error
	UpsertAllowance(ctx context.Context, doc *model.AllowanceDocument) error
	UpsertSupply(ctx context.Context, doc *model.SupplyDocument) error
	// GetLedgerState returns NotFoundError when no supply row exists for the token.
	GetLedgerState(ctx context.Context, token string) (*model.LedgerState, error)
	UpsertPosition(ctx context.Context, doc *model.PositionDocument) error
	GetPositions(ctx context.Context) ([]*model.PositionDocument, error)
	UpsertStakingParams(ctx context.Context, doc *model.StakingParamsDocument) error
	// GetStakingParams returns NotFoundError when params were never stored.
	GetStakingParams(ctx context.Context) (*model.StakingParamsDocument, error)
}
