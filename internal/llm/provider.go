package llm

import (
	"context"
	"errors"
)

// ErrGeneration indicates the language-model backend failed to serve a
// completion (transport error or backend rejection). A malformed but
// present response is NOT a generation error: providers degrade to a
// best-effort string rendering of the response instead.
var ErrGeneration = errors.New("generation failed")

// Provider is the uniform completion capability. Implementations are
// swappable without changing any caller.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
