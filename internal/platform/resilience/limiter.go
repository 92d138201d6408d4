package resilience

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces calls to a quota-bound dependency. A nil limiter never
// blocks.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.PerSecond <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.PerSecond), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
