package tasks

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces the fixed inter-request delay before every profile fetch.
//
// Backed by a [rate.Limiter] with burst 1 and the initial token drained, so the
// first fetch waits the full delay too. No jitter, no adaptive backoff.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle with the given per-request delay. A zero or
// negative delay disables waiting.
func NewThrottle(delay time.Duration) *Throttle {
	if delay <= 0 {
		return &Throttle{}
	}

	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow()
	return &Throttle{limiter: limiter}
}

// Wait blocks until the next request slot or until ctx is cancelled.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.limiter == nil {
		return ctx.Err()
	}
	return t.limiter.Wait(ctx)
}
