package mock

import (
	"context"

	"github.com/fwojciec/hearings"
)

var (
	_ hearings.Fetcher     = (*Fetcher)(nil)
	_ hearings.RateLimiter = (*RateLimiter)(nil)
)

// Fetcher is a mock implementation of hearings.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

// RateLimiter is a mock implementation of hearings.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
