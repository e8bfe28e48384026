// Package ratelimit throttles outbound calls to third-party APIs.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands out a fixed number of tokens per minute.
type Limiter struct {
	limiter *rate.Limiter
}

// PerMinute allows n calls per minute with a burst of n. n <= 0 means unlimited.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
