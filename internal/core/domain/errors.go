package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyncInProgress indicates an ingestion batch is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrVaultNotConfigured indicates no vault path has been set.
	ErrVaultNotConfigured = errors.New("vault path not configured")

	// ErrLLMUnavailable indicates the generation provider is not configured
	// or unreachable. Answering questions requires it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured or unreachable. Indexing and retrieval require it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrUnsupportedProvider indicates an unrecognised provider name in
	// settings. This fails loudly rather than silently falling back to a
	// default so configuration typos surface immediately.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrMissingAPIKey indicates a provider that requires an API key has
	// none configured.
	ErrMissingAPIKey = errors.New("missing API key")
)
