// Package monitor bounds the number of profiler processes running at once.
package monitor

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Metrics is a snapshot of current profiler load.
type Metrics struct {
	// ActiveRuns is the number of profiler processes currently executing.
	ActiveRuns int64
	// MaxRuns is the configured concurrency bound.
	MaxRuns int64
}

// Limiter is a semaphore-backed concurrency bound. Acquire blocks until a
// slot frees up or the context is cancelled; the caller MUST call Release
// once the run completes.
type Limiter struct {
	sem    *semaphore.Weighted
	max    int64
	active atomic.Int64
}

// NewLimiter creates a limiter allowing at most maxRuns concurrent runs.
// Bounds below one are clamped to one.
func NewLimiter(maxRuns int64) *Limiter {
	if maxRuns < 1 {
		maxRuns = 1
	}
	return &Limiter{
		sem: semaphore.NewWeighted(maxRuns),
		max: maxRuns,
	}
}

// Acquire claims a run slot, blocking until one is available.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	l.active.Add(1)
	return nil
}

// Release frees a slot claimed by Acquire.
func (l *Limiter) Release() {
	l.active.Add(-1)
	l.sem.Release(1)
}

// GetMetrics returns current load statistics.
func (l *Limiter) GetMetrics() Metrics {
	return Metrics{
		ActiveRuns: l.active.Load(),
		MaxRuns:    l.max,
	}
}
