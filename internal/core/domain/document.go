package domain

import "fmt"

// Document represents an indexed note from the knowledge base.
// It carries the change-detection metadata used to decide whether
// a source needs re-embedding.
type Document struct {
	// ID is the unique identifier for the document. It is minted once
	// and remains stable across re-indexing of the same path.
	ID string

	// Path is the unique source location. Either a filesystem path or a
	// synthetic scheme-qualified identifier such as "outline://<id>" for
	// remote documents.
	Path string

	// LastModified is the source modification time (Unix seconds).
	LastModified int64

	// ContentHash is the SHA-256 hex fingerprint of the raw content,
	// computed before any normalisation. Used purely for change
	// detection, not security.
	ContentHash string

	// IndexedAt is when the document was last (re)indexed (Unix seconds).
	IndexedAt int64
}

// Chunk represents one retrievable unit of text belonging to exactly
// one Document. Chunk ordinals for a document are contiguous from 0.
type Chunk struct {
	// ID is the composite identity "<documentID>#<position>".
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Position is the 0-based ordinal within the document.
	Position int

	// Content is the chunk's text.
	Content string

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// ChunkID builds the composite chunk identity from its parts.
func ChunkID(documentID string, position int) string {
	return fmt.Sprintf("%s#%d", documentID, position)
}

// RetrievalResult pairs a chunk with its similarity score for one query.
// It is ephemeral and never persisted.
type RetrievalResult struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// Similarity is the cosine similarity in [-1, 1].
	Similarity float32
}
