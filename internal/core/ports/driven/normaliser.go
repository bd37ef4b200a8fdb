package driven

import (
	"context"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

// Frontmatter holds the structured metadata from a note's leading
// "---" delimited block.
type Frontmatter struct {
	// Title is the optional note title.
	Title string

	// Tags are the note's tags, normalised to a list.
	Tags []string

	// Aliases are alternative note names, normalised to a list.
	Aliases []string
}

// ParsedDocument is the normaliser's output for one note.
type ParsedDocument struct {
	// Frontmatter is the parsed metadata block, zero-valued when absent
	// or malformed.
	Frontmatter Frontmatter

	// PlainText is the note body as whitespace-normalised plain text.
	PlainText string

	// Fingerprint is the SHA-256 hex digest of the raw input bytes,
	// computed before any normalisation.
	Fingerprint string
}

// Normaliser transforms raw note content into plain text plus metadata.
type Normaliser interface {
	// Normalise parses raw note content. Frontmatter malformation is
	// swallowed, never surfaced as an error.
	Normalise(ctx context.Context, raw []byte) (*ParsedDocument, error)
}

// Chunker splits normalised text into embeddable chunks.
type Chunker interface {
	// Split divides text into overlapping chunks owned by documentID.
	// Empty text produces no chunks.
	Split(documentID, text string) []domain.Chunk
}
