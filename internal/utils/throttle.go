package utils

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle inserts a fixed delay between successive outbound requests. An
// interval of zero disables it entirely.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle that allows one request per interval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{}
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the next request may be issued or the context is
// canceled.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}

// Enabled reports whether the throttle imposes any delay.
func (t *Throttle) Enabled() bool {
	return t != nil && t.limiter != nil
}
