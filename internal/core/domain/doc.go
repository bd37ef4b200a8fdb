// Package domain defines the core business entities for Metabrain.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An indexed knowledge-base note with change-detection metadata
//   - Chunk: An embeddable, retrievable slice of a document
//   - ChatMessage: One turn of the persisted conversation log
//   - RetrievalResult: A chunk paired with a similarity score for one query
//   - Settings: Runtime configuration for providers and the vault
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
