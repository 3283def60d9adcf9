package chain

import (
	"context"
	"sync"
	"time"
)

// Limiter gates outbound RPC calls.
type Limiter interface {
	Wait(ctx context.Context) error
}

// nopLimiter allows unlimited throughput.
type nopLimiter struct{}

func (nopLimiter) Wait(ctx context.Context) error { return ctx.Err() }

// NewNopLimiter returns a limiter that never blocks.
func NewNopLimiter() Limiter { return nopLimiter{} }

// WindowLimiter permits at most calls invocations per fixed window. Once the
// budget is exhausted, Wait blocks until the window rolls over; calls are
// never dropped. Construct one per run and share it across every component
// issuing RPC calls.
type WindowLimiter struct {
	calls  int
	window time.Duration

	// Injectable for tests with a simulated clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu          sync.Mutex
	windowStart time.Time
	used        int
}

// NewWindowLimiter returns a limiter allowing calls per window. calls <= 0 or
// window <= 0 yields an unlimited limiter.
func NewWindowLimiter(calls int, window time.Duration) Limiter {
	if calls <= 0 || window <= 0 {
		return nopLimiter{}
	}
	return &WindowLimiter{
		calls:  calls,
		window: window,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// Wait consumes one unit of budget, blocking until the current window permits
// it or ctx is cancelled.
func (l *WindowLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := l.now()
		if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
			l.windowStart = now
			l.used = 0
		}
		if l.used < l.calls {
			l.used++
			return nil
		}
		if err := l.sleep(ctx, l.windowStart.Add(l.window).Sub(now)); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
