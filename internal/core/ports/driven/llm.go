// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// StreamFunc receives one incremental text fragment of a streamed
// generation. Implementations must be non-blocking best-effort: a slow or
// failing consumer must never abort the generation.
type StreamFunc func(fragment string)

// LLMService produces text completions for the answering pipeline.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (GPT-4o, GPT-4o-mini)
type LLMService interface {
	// Generate produces a complete text completion for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateStream produces a completion incrementally, invoking onChunk
	// for each fragment as it arrives, and returns the accumulated full
	// text once the stream ends.
	GenerateStream(ctx context.Context, prompt string, onChunk StreamFunc) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
