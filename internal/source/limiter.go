package source

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket shared by every fetch in a run.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter returns a limiter allowing rps requests per second with a
// burst of one. A non-positive rps disables limiting.
func NewLimiter(rps float64) *Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Limiter{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.bucket.Wait(ctx)
}

// Rate returns the configured requests per second; zero means unlimited.
func (l *Limiter) Rate() float64 {
	if l == nil || l.bucket.Limit() == rate.Inf {
		return 0
	}
	return float64(l.bucket.Limit())
}
