package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider spaces out calls to a shared endpoint so that several
// sessions cannot exceed the provider's per-minute quota. Calls that would
// exceed it wait for a free slot; they are never dropped or retried.
type RateLimitedProvider struct {
	provider Provider
	interval time.Duration
	burst    int

	mu       sync.Mutex
	tokens   int
	lastFill time.Time
}

// NewRateLimitedProvider wraps provider so that at most rpm requests start
// per minute. Rates finer than one token per nanosecond are treated as one.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	rpm = max(rpm, 1)
	return &RateLimitedProvider{
		provider: provider,
		interval: max(time.Minute/time.Duration(rpm), time.Nanosecond),
		burst:    rpm,
		tokens:   rpm,
		lastFill: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}

func (r *RateLimitedProvider) acquire(ctx context.Context) error {
	for {
		wait := r.take(time.Now())
		if wait == 0 {
			return nil
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// take consumes a token if one is available and returns zero, or returns
// how long until the next token is due.
func (r *RateLimitedProvider) take(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if earned := int(now.Sub(r.lastFill) / r.interval); earned > 0 {
		r.tokens = min(r.burst, r.tokens+earned)
		r.lastFill = r.lastFill.Add(time.Duration(earned) * r.interval)
	}

	if r.tokens > 0 {
		r.tokens--
		return 0
	}
	return r.lastFill.Add(r.interval).Sub(now)
}
