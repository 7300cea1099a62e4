package scraper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when the gate sleeps or a call takes time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newFakeGate(clock *fakeClock, min, jmin, jmax time.Duration) *RateGate {
	g := NewRateGate(min, jmin, jmax)
	g.now = clock.Now
	g.sleep = func(_ context.Context, d time.Duration) error {
		clock.Advance(d)
		return nil
	}
	return g
}

func TestRateGateSpacing(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)}
	g := newFakeGate(clock, 3*time.Second, 500*time.Millisecond, 1500*time.Millisecond)

	var starts, ends []time.Time
	for i := 0; i < 5; i++ {
		err := g.Do(context.Background(), func() error {
			starts = append(starts, clock.Now())
			clock.Advance(200 * time.Millisecond)
			ends = append(ends, clock.Now())
			return nil
		})
		require.NoError(t, err)
	}

	for k := 1; k < len(starts); k++ {
		gap := starts[k].Sub(ends[k-1])
		assert.GreaterOrEqual(t, gap, 3500*time.Millisecond, "call %d", k)
		assert.LessOrEqual(t, gap, 4500*time.Millisecond, "call %d", k)
	}
}

func TestRateGateFirstCallOnlyJitters(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)}
	g := newFakeGate(clock, 3*time.Second, 0, 0)

	start := clock.Now()
	require.NoError(t, g.Do(context.Background(), func() error { return nil }))
	assert.Equal(t, start, clock.Now())
}

func TestRateGateElapsedCountsTowardInterval(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)}
	g := newFakeGate(clock, 3*time.Second, 0, 0)

	require.NoError(t, g.Do(context.Background(), func() error { return nil }))
	clock.Advance(2 * time.Second)

	var started time.Time
	require.NoError(t, g.Do(context.Background(), func() error {
		started = clock.Now()
		return nil
	}))
	assert.Equal(t, time.Date(2024, 1, 20, 9, 0, 3, 0, time.UTC), started)
}

func TestRateGateConcurrentCallersSerialize(t *testing.T) {
	g := NewRateGate(20*time.Millisecond, 0, 0)

	var mu sync.Mutex
	var starts []time.Time
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(context.Background(), func() error {
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	require.Len(t, starts, 4)
	for k := 1; k < len(starts); k++ {
		assert.GreaterOrEqual(t, starts[k].Sub(starts[k-1]), 20*time.Millisecond)
	}
}

func TestRateGateCancelled(t *testing.T) {
	g := NewRateGate(time.Hour, 0, 0)
	require.NoError(t, g.Do(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := g.Do(ctx, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
