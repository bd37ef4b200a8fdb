package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
	"github.com/4ug-aug/Metabrain/internal/logger"
)

// Retriever performs brute-force similarity search over stored chunk
// embeddings.
type Retriever struct {
	docStore driven.DocumentStore
}

// NewRetriever creates a new retriever backed by the given store.
func NewRetriever(docStore driven.DocumentStore) *Retriever {
	return &Retriever{docStore: docStore}
}

// Search scans every stored chunk, scores it against the query vector
// and returns the k best matches ordered by descending similarity.
func (r *Retriever) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalResult, error) {
	if k <= 0 {
		return nil, nil
	}

	chunks, err := r.docStore.ListAllChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	logger.Debug("Scoring %d chunks against query vector (%d dims)", len(chunks), len(query))

	results := make([]domain.RetrievalResult, 0, len(chunks))
	for i := range chunks {
		results = append(results, domain.RetrievalResult{
			Chunk:      chunks[i],
			Similarity: CosineSimilarity(query, chunks[i].Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero-magnitude vectors score zero rather than
// erroring, so a single bad embedding never fails a whole search.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
