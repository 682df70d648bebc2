package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))

	ctx := InjectTraceID(context.Background())
	assert.Len(t, TraceID(ctx), 36)

	ctx = WithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", TraceID(ctx))

	ctx = WithTraceID(context.Background(), "")
	assert.NotEmpty(t, TraceID(ctx))
}
