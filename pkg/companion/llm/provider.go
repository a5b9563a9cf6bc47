// Package llm provides completion providers for the chat responder.
package llm

import "context"

// Provider performs one synchronous completion call. No streaming, no retry.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Complete sends a single prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}
