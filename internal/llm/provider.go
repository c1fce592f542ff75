package llm

import "context"

// Provider defines the interface for completion backends.
type Provider interface {
	// Complete sends one completion request and returns the response.
	// Implementations make a single attempt; they never retry.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
