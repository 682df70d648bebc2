package db

import (
	"context"
	"time"

	"github.com/spritzen-labs/simply-staking/internal/db/model"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveEvents(ctx context.Context, events []*model.EventDocument) error {
	return d.run("SaveEvents", func() error {
		return d.db.SaveEvents(ctx, events)
	})
}

func (d *DbWithMetrics) GetEvents(ctx context.Context, filter EventFilter) (result []*model.EventDocument, err error) {
	//nolint:errcheck
	d.run("GetEvents", func() error {
		result, err = d.db.GetEvents(ctx, filter)
		return err
	})
	return
}

func (d *DbWithMetrics) GetLastEventSequence(ctx context.Context) (result int64, err error) {
	//nolint:errcheck
	d.run("GetLastEventSequence", func() error {
		result, err = d.db.GetLastEventSequence(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertBalance(ctx context.Context, doc *model.BalanceDocument) error {
	return d.run("UpsertBalance", func() error {
		return d.db.UpsertBalance(ctx, doc)
	})
}

func (d *DbWithMetrics) UpsertAllowance(ctx context.Context, doc *model.AllowanceDocument) error {
	return d.run("UpsertAllowance", func() error {
		return d.db.UpsertAllowance(ctx, doc)
	})
}

func (d *DbWithMetrics) UpsertSupply(ctx context.Context, doc *model.SupplyDocument) error {
	return d.run("UpsertSupply", func() error {
		return d.db.UpsertSupply(ctx, doc)
	})
}

func (d *DbWithMetrics) GetLedgerState(ctx context.Context, token string) (result *model.LedgerState, err error) {
	//nolint:errcheck
	d.run("GetLedgerState", func() error {
		result, err = d.db.GetLedgerState(ctx, token)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertPosition(ctx context.Context, doc *model.PositionDocument) error {
	return d.run("UpsertPosition", func() error {
		return d.db.UpsertPosition(ctx, doc)
	})
}

func (d *DbWithMetrics) GetPositions(ctx context.Context) (result []*model.PositionDocument, err error) {
	//nolint:errcheck
	d.run("GetPositions", func() error {
		result, err = d.db.GetPositions(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertStakingParams(ctx context.Context, doc *model.StakingParamsDocument) error {
	return d.run("UpsertStakingParams", func() error {
		return d.db.UpsertStakingParams(ctx, doc)
	})
}

func (d *DbWithMetrics) GetStakingParams(ctx context.Context) (result *model.StakingParamsDocument, err error) {
	//nolint:errcheck
	d.run("GetStakingParams", func() error {
		result, err = d.db.GetStakingParams(ctx)
		return err
	})
	return
}

// run executes f and records its duration under method, along with whether it failed.
// The error from f is returned as is.
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
