package cli

import (
	"bytes"
	"context"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driving"
)

// executeCommand runs the root command with args and captures output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// mockIngestor implements driving.Ingestor for testing.
type mockIngestor struct {
	status       driving.IngestStatus
	syncErr      error
	vaultSyncs   int
	outlineSyncs int
	removedPaths []string
	removeErr    error
}

func (m *mockIngestor) SyncVault(_ context.Context) (*driving.IngestStatus, error) {
	m.vaultSyncs++
	if m.syncErr != nil {
		return nil, m.syncErr
	}
	return &m.status, nil
}

func (m *mockIngestor) SyncOutline(_ context.Context) (*driving.IngestStatus, error) {
	m.outlineSyncs++
	if m.syncErr != nil {
		return nil, m.syncErr
	}
	return &m.status, nil
}

func (m *mockIngestor) IngestPath(_ context.Context, _ string, _ []byte, _ int64) error {
	return nil
}

func (m *mockIngestor) RemovePath(_ context.Context, path string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removedPaths = append(m.removedPaths, path)
	return nil
}

func (m *mockIngestor) Status() driving.IngestStatus {
	return m.status
}

// mockRagService implements driving.RagService for testing.
type mockRagService struct {
	answer    string
	answerErr error
	questions []string
	history   []domain.ChatMessage
	cleared   bool
}

func (m *mockRagService) Answer(_ context.Context, question string) (string, error) {
	m.questions = append(m.questions, question)
	if m.answerErr != nil {
		return "", m.answerErr
	}
	return m.answer, nil
}

func (m *mockRagService) History(_ context.Context) ([]domain.ChatMessage, error) {
	return m.history, nil
}

func (m *mockRagService) ClearHistory(_ context.Context) error {
	m.cleared = true
	return nil
}

// mockSettingsStore implements driven.SettingsStore for testing.
type mockSettingsStore struct {
	settings *domain.Settings
	saved    *domain.Settings
}

func (m *mockSettingsStore) Get(_ context.Context) (*domain.Settings, error) {
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return m.settings, nil
}

func (m *mockSettingsStore) Save(_ context.Context, settings *domain.Settings) error {
	m.saved = settings
	return nil
}

// mockDocumentStore implements the subset of driven.DocumentStore the CLI
// touches.
type mockDocumentStore struct {
	docs []domain.Document
}

func (m *mockDocumentStore) SaveDocument(_ context.Context, _ *domain.Document) error { return nil }

func (m *mockDocumentStore) GetDocumentByPath(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockDocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.docs, nil
}

func (m *mockDocumentStore) DeleteDocument(_ context.Context, _ string) error       { return nil }
func (m *mockDocumentStore) DeleteDocumentByPath(_ context.Context, _ string) error { return nil }
func (m *mockDocumentStore) SaveChunk(_ context.Context, _ *domain.Chunk) error     { return nil }
func (m *mockDocumentStore) DeleteChunks(_ context.Context, _ string) error         { return nil }

func (m *mockDocumentStore) ListAllChunks(_ context.Context) ([]domain.Chunk, error) {
	return nil, nil
}
