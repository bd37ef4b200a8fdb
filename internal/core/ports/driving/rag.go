package driving

import (
	"context"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

// RagService answers questions grounded in the indexed knowledge base.
type RagService interface {
	// Answer runs the full retrieval-augmented pipeline for a question:
	// persist the user turn, expand the query, retrieve and fuse context,
	// stream the generated answer through the notifier, and persist the
	// assistant turn. Returns the accumulated answer text.
	Answer(ctx context.Context, question string) (string, error)

	// History returns the persisted conversation in order.
	History(ctx context.Context) ([]domain.ChatMessage, error)

	// ClearHistory removes the entire conversation log.
	ClearHistory(ctx context.Context) error
}
