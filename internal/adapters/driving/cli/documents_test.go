package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

func setupDocumentsTest(store *mockDocumentStore, ing *mockIngestor) func() {
	oldStore := documentStore
	oldIngestor := ingestor
	documentStore = store
	ingestor = ing
	return func() {
		documentStore = oldStore
		ingestor = oldIngestor
	}
}

func TestDocumentsListCmd(t *testing.T) {
	t.Run("lists indexed documents", func(t *testing.T) {
		store := &mockDocumentStore{docs: []domain.Document{
			{ID: "doc-1", Path: "/vault/a.md", IndexedAt: 1700000000},
			{ID: "doc-2", Path: "outline://wiki-1", IndexedAt: 1700000100},
		}}
		defer setupDocumentsTest(store, &mockIngestor{})()

		out, err := executeCommand("documents", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "/vault/a.md")
		assert.Contains(t, out, "outline://wiki-1")
		assert.Contains(t, out, "Total: 2 documents")
	})

	t.Run("empty index", func(t *testing.T) {
		defer setupDocumentsTest(&mockDocumentStore{}, &mockIngestor{})()

		out, err := executeCommand("documents", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No documents indexed")
	})
}

func TestDocumentsRemoveCmd(t *testing.T) {
	ing := &mockIngestor{}
	defer setupDocumentsTest(&mockDocumentStore{}, ing)()

	out, err := executeCommand("documents", "remove", "/vault/a.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"/vault/a.md"}, ing.removedPaths)
	assert.Contains(t, out, "Removed /vault/a.md")
}
