package metrics

import (
	"context"
	"time"
)

// pollerFunction alias is private and should be used only here
type pollerFunction = func(ctx context.Context) error

// RecordPollerDuration wraps a poll function so each run lands in the
// poller histogram under typ.
func RecordPollerDuration(typ string, f pollerFunction) pollerFunction {
	return func(ctx context.Context) error {
		startTime := time.Now()
		err := f(ctx)

		status := Success
		if err != nil {
			status = Error
		}
		pollerDurationHistogram.WithLabelValues(typ, status.String()).Observe(time.Since(startTime).Seconds())

		return err
	}
}

// TrackOperation runs f and records its latency and outcome under operation.
func TrackOperation(operation string, f func() error) error {
	startTime := time.Now()
	err := f()
	RecordOperationLatency(time.Since(startTime), operation, err != nil)
	return err
}
