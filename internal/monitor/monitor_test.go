package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	l := NewLimiter(2)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx))
	require.NoError(t, l.Acquire(ctx))
	assert.Equal(t, Metrics{ActiveRuns: 2, MaxRuns: 2}, l.GetMetrics())

	// A third acquire blocks until a slot frees up.
	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, l.Acquire(blocked), context.DeadlineExceeded)

	l.Release()
	require.NoError(t, l.Acquire(ctx))

	l.Release()
	l.Release()
	assert.Equal(t, Metrics{ActiveRuns: 0, MaxRuns: 2}, l.GetMetrics())
}

func TestLimiterClampsBound(t *testing.T) {
	l := NewLimiter(0)
	assert.Equal(t, int64(1), l.GetMetrics().MaxRuns)
}
