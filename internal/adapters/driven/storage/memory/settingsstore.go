package memory

import (
	"context"
	"sync"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is an in-memory implementation of driven.SettingsStore.
type SettingsStore struct {
	mu       sync.RWMutex
	settings domain.Settings
}

// NewSettingsStore creates a new in-memory settings store seeded with
// defaults.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: *domain.DefaultSettings()}
}

// Get returns the current settings.
func (s *SettingsStore) Get(_ context.Context) (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := s.settings
	return &settings, nil
}

// Save persists the given settings.
func (s *SettingsStore) Save(_ context.Context, settings *domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = *settings
	return nil
}
