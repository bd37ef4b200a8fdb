// Package chunker splits normalised document text into overlapping
// word-window chunks suitable for embedding.
package chunker

import (
	"strings"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of words shared between
// consecutive chunks.
const DefaultChunkOverlap = 50

// Processor splits text into fixed-size word windows.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Split divides text into chunks of at most chunkSize words, each
// consecutive pair sharing overlap words. Text at or below the chunk
// size produces a single chunk holding the whole text. Chunk IDs are
// derived from the document ID and chunk position.
func (p *Processor) Split(documentID, text string) []domain.Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	words := strings.Fields(text)

	if len(words) <= p.chunkSize {
		return []domain.Chunk{{
			ID:         domain.ChunkID(documentID, 0),
			DocumentID: documentID,
			Position:   0,
			Content:    text,
		}}
	}

	estimated := (len(words) / (p.chunkSize - p.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	position := 0

	for start < len(words) {
		end := start + p.chunkSize
		if end > len(words) {
			end = len(words)
		}

		// Absorb a tail of at most overlap words into this window rather
		// than emitting a mostly-duplicate trailing chunk.
		if len(words)-end <= p.overlap {
			end = len(words)
		}

		chunks = append(chunks, domain.Chunk{
			ID:         domain.ChunkID(documentID, position),
			DocumentID: documentID,
			Position:   position,
			Content:    strings.Join(words[start:end], " "),
		})
		position++

		if end == len(words) {
			break
		}

		// Step back so the next window re-reads the overlap tail.
		start = end - p.overlap
	}

	return chunks
}
