package httpx

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps next so that requests wait for a token from a shared
// limiter allowing limit requests per second with the given burst. A wait
// that cannot complete before ctx ends fails with CodeRateLimited.
func RateLimited(next Transport, limit rate.Limit, burst int) Transport {
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(limit, max(burst, 1)),
	}
}

type rateLimited struct {
	next    Transport
	limiter *rate.Limiter
}

func (t *rateLimited) Do(ctx context.Context, cfg RequestConfig) (*Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, NewTransportError(cfg, CodeRateLimited, nil, nil, err)
	}
	return t.next.Do(ctx, cfg)
}
