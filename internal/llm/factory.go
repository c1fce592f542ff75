package llm

import (
	"fmt"
	"time"
)

// Options describes how to reach the completion service.
type Options struct {
	Type              string // "endpoint" or "openai"
	URL               string
	APIKey            string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// NewProvider creates a provider from opts, wrapping it in a rate limiter
// when RequestsPerMinute is positive.
func NewProvider(opts Options) (Provider, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("completion endpoint URL is not set")
	}

	var p Provider
	switch opts.Type {
	case "", "endpoint":
		p = NewEndpointProvider(opts.URL, opts.APIKey, opts.Model, opts.Timeout)
	case "openai":
		p = NewOpenAIProvider(opts.URL, opts.APIKey, opts.Model, opts.Timeout)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", opts.Type)
	}

	if opts.RequestsPerMinute > 0 {
		p = NewRateLimitedProvider(p, opts.RequestsPerMinute)
	}
	return p, nil
}
