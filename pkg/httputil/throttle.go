package httputil

import (
	"context"
	"sync"
	"time"
)

// Throttle spaces calls at least delay apart. The first call passes
// immediately. It is safe for concurrent use; concurrent callers are
// serialized.
type Throttle struct {
	delay time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewThrottle creates a throttle with the given minimum spacing.
// A non-positive delay disables throttling.
func NewThrottle(delay time.Duration) *Throttle {
	return &Throttle{delay: delay, now: time.Now}
}

// Wait blocks until the next call is allowed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.delay <= 0 {
		return ctx.Err()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		if wait := t.delay - t.now().Sub(t.last); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	t.last = t.now()
	return nil
}

// Delay returns the configured spacing.
func (t *Throttle) Delay() time.Duration {
	if t == nil {
		return 0
	}
	return t.delay
}
