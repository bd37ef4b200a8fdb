package memory

import (
	"context"
	"sync"
	"time"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure ChatStore implements the interface.
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore is an in-memory implementation of driven.ChatStore.
type ChatStore struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
	nextID   int64
}

// NewChatStore creates a new in-memory chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{nextID: 1}
}

// Append records a message and returns it with its assigned id.
func (s *ChatStore) Append(_ context.Context, role, content string) (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.ChatMessage{
		ID:        s.nextID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	return &msg, nil
}

// History returns all messages in insertion order.
func (s *ChatStore) History(_ context.Context) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// Clear removes the entire conversation log.
func (s *ChatStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	return nil
}
