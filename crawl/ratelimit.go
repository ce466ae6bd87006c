package crawl

import (
	"context"

	"github.com/fwojciec/hearings"
	"golang.org/x/time/rate"
)

var (
	_ hearings.RateLimiter = (*Limiter)(nil)
	_ hearings.Fetcher     = (*RateLimitedFetcher)(nil)
)

// Limiter is a process-wide token bucket shared by every outbound request.
// The bucket holds a single token, so request starts never burst above rps.
// rate.Limiter hands out reservations in call order, which keeps admission FIFO.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter admitting at most rps request starts per second.
// A non-positive rps disables limiting.
func NewLimiter(rps float64) *Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Limiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the rate limit allows a request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// RateLimitedFetcher waits on a RateLimiter before every fetch.
type RateLimitedFetcher struct {
	next    hearings.Fetcher
	limiter hearings.RateLimiter
}

// NewRateLimitedFetcher wraps next so that every call passes through limiter.
func NewRateLimitedFetcher(next hearings.Fetcher, limiter hearings.RateLimiter) *RateLimitedFetcher {
	return &RateLimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the limiter, then delegates to the wrapped fetcher.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return f.next.Fetch(ctx, url)
}
