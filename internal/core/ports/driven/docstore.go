// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

// DocumentStore persists documents and their chunks.
// Backed by SQLite. Every operation is atomic at single-operation
// granularity; the store exposes no partial-batch transactions.
type DocumentStore interface {
	// SaveDocument stores or updates a document, keyed by id on conflict.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocumentByPath retrieves a document by its unique path.
	// Returns domain.ErrNotFound if absent.
	GetDocumentByPath(ctx context.Context, path string) (*domain.Document, error)

	// ListDocuments returns all documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document by id, cascading to its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentByPath removes a document by path, cascading to its
	// chunks. Deleting an absent path is not an error.
	DeleteDocumentByPath(ctx context.Context, path string) error

	// SaveChunk inserts a single chunk with its embedding.
	SaveChunk(ctx context.Context, chunk *domain.Chunk) error

	// DeleteChunks removes all chunks belonging to a document.
	DeleteChunks(ctx context.Context, documentID string) error

	// ListAllChunks returns the full chunk set with embeddings.
	// Deliberately unindexed: similarity search is a brute-force scan
	// over this result.
	ListAllChunks(ctx context.Context) ([]domain.Chunk, error)
}

// ChatStore persists the conversation log.
type ChatStore interface {
	// Append records a message and returns it with its assigned id.
	Append(ctx context.Context, role, content string) (*domain.ChatMessage, error)

	// History returns all messages in conversation order
	// (timestamp ascending, id as tiebreak).
	History(ctx context.Context) ([]domain.ChatMessage, error)

	// Clear removes the entire conversation log.
	Clear(ctx context.Context) error
}

// SettingsStore persists runtime settings as key-value pairs.
type SettingsStore interface {
	// Get returns the current settings, with defaults for unset keys.
	Get(ctx context.Context) (*domain.Settings, error)

	// Save persists the given settings.
	Save(ctx context.Context, settings *domain.Settings) error
}
