// Package memory provides in-memory implementations of the storage
// ports, used in tests and as reference implementations.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string]map[string]domain.Chunk // documentID -> chunkID -> chunk
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string]map[string]domain.Chunk),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// GetDocumentByPath retrieves a document by its path.
func (s *DocumentStore) GetDocumentByPath(_ context.Context, path string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.Path == path {
			d := doc
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListDocuments returns all documents ordered by path.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// DeleteDocument removes a document and its chunks by id.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	delete(s.chunks, id)
	return nil
}

// DeleteDocumentByPath removes a document and its chunks by path.
// Deleting an absent path is not an error.
func (s *DocumentStore) DeleteDocumentByPath(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, doc := range s.documents {
		if doc.Path == path {
			delete(s.documents, id)
			delete(s.chunks, id)
			return nil
		}
	}
	return nil
}

// SaveChunk inserts or replaces a single chunk.
func (s *DocumentStore) SaveChunk(_ context.Context, chunk *domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.chunks[chunk.DocumentID]
	if !ok {
		byID = make(map[string]domain.Chunk)
		s.chunks[chunk.DocumentID] = byID
	}
	byID[chunk.ID] = *chunk
	return nil
}

// DeleteChunks removes all chunks belonging to a document.
func (s *DocumentStore) DeleteChunks(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, documentID)
	return nil
}

// ListAllChunks returns every stored chunk, ordered by document and
// position for deterministic iteration.
func (s *DocumentStore) ListAllChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []domain.Chunk
	for _, byID := range s.chunks {
		for _, chunk := range byID {
			all = append(all, chunk)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].DocumentID != all[j].DocumentID {
			return all[i].DocumentID < all[j].DocumentID
		}
		return all[i].Position < all[j].Position
	})
	return all, nil
}
