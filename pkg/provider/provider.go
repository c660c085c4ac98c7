package provider

import (
	"context"

	"github.com/rhuss/hfbridge/pkg/api"
)

// Provider abstracts a chat-completion backend.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g., "huggingface").
	Name() string

	// Generate performs a unary generation.
	Generate(ctx context.Context, req *Request) (*api.GenerationResult, error)

	// Stream performs a streaming generation. The returned channel yields
	// one start event, zero or more delta events and one terminal event,
	// then is closed. Cancelling ctx stops the stream early; the channel is
	// closed without a terminal event in that case.
	Stream(ctx context.Context, req *Request) (<-chan api.StreamEvent, error)

	// Close releases provider resources.
	Close() error
}
