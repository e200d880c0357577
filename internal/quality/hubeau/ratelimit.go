package hubeau

import (
	"context"
	"fmt"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"golang.org/x/time/rate"
)

// RateLimitedFetcher wraps a Fetcher with an outbound request limiter.
type RateLimitedFetcher struct {
	fetcher quality.Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher allows rps requests per second with the given burst.
// rps can be fractional for less than one request per second.
func NewRateLimitedFetcher(fetcher quality.Fetcher, rps float64, burst int) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for the limiter, then forwards to the wrapped fetcher.
func (r *RateLimitedFetcher) Fetch(ctx context.Context) ([]quality.Record, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.fetcher.Fetch(ctx)
}

var _ quality.Fetcher = (*RateLimitedFetcher)(nil)
