package hearings

import "context"

// Fetcher retrieves raw documents from the document repository.
type Fetcher interface {
	// Fetch issues a GET for the URL and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// RateLimiter bounds how often outbound requests may start.
// A single limiter is shared by every request the process makes.
type RateLimiter interface {
	// Wait blocks until the next request may start.
	// Callers are admitted in the order they called Wait.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context) error
}
