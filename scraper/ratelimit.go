package scraper

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// RateGate serializes calls and keeps at least minInterval plus a random
// jitter between the end of one call and the start of the next.
type RateGate struct {
	mu          sync.Mutex
	minInterval time.Duration
	jitterMin   time.Duration
	jitterMax   time.Duration
	last        time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	rand  func(n int64) int64
}

func NewRateGate(minInterval, jitterMin, jitterMax time.Duration) *RateGate {
	if jitterMax < jitterMin {
		jitterMax = jitterMin
	}
	return &RateGate{
		minInterval: minInterval,
		jitterMin:   jitterMin,
		jitterMax:   jitterMax,
		now:         time.Now,
		sleep:       sleepContext,
		rand:        rand.Int64N,
	}
}

// Do waits for the gate, runs fn and records its completion time. Concurrent
// callers queue behind each other.
func (g *RateGate) Do(ctx context.Context, fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if wait := g.minInterval - g.now().Sub(g.last); wait > 0 {
			if err := g.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	if jitter := g.jitter(); jitter > 0 {
		if err := g.sleep(ctx, jitter); err != nil {
			return err
		}
	}

	err := fn()
	g.last = g.now()
	return err
}

func (g *RateGate) jitter() time.Duration {
	spread := g.jitterMax - g.jitterMin
	if spread <= 0 {
		return g.jitterMin
	}
	return g.jitterMin + time.Duration(g.rand(int64(spread)+1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
