package sqlite

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates database and runs migrations", func(t *testing.T) {
		store := newTestStore(t)
		assert.NotEmpty(t, store.Path())
	})

	t.Run("reopening an existing database is idempotent", func(t *testing.T) {
		dir := t.TempDir()

		store, err := NewStore(dir)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		store, err = NewStore(dir)
		require.NoError(t, err)
		require.NoError(t, store.Close())
	})
}

func TestDocumentStore(t *testing.T) {
	ctx := context.Background()

	doc := domain.Document{
		ID:           "doc-1",
		Path:         "/vault/note.md",
		LastModified: 1700000000,
		ContentHash:  "abc123",
		IndexedAt:    1700000100,
	}

	t.Run("save and get by path", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()

		require.NoError(t, docs.SaveDocument(ctx, &doc))

		got, err := docs.GetDocumentByPath(ctx, "/vault/note.md")
		require.NoError(t, err)
		assert.Equal(t, doc, *got)
	})

	t.Run("get unknown path returns ErrNotFound", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()

		_, err := docs.GetDocumentByPath(ctx, "/nowhere.md")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save twice updates in place", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()

		require.NoError(t, docs.SaveDocument(ctx, &doc))

		updated := doc
		updated.ContentHash = "def456"
		require.NoError(t, docs.SaveDocument(ctx, &updated))

		all, err := docs.ListDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "def456", all[0].ContentHash)
	})

	t.Run("list orders by path", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()

		b := domain.Document{ID: "b", Path: "/vault/b.md"}
		a := domain.Document{ID: "a", Path: "/vault/a.md"}
		require.NoError(t, docs.SaveDocument(ctx, &b))
		require.NoError(t, docs.SaveDocument(ctx, &a))

		all, err := docs.ListDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "/vault/a.md", all[0].Path)
	})

	t.Run("delete by path is idempotent", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()

		require.NoError(t, docs.SaveDocument(ctx, &doc))
		require.NoError(t, docs.DeleteDocumentByPath(ctx, doc.Path))
		require.NoError(t, docs.DeleteDocumentByPath(ctx, doc.Path))

		_, err := docs.GetDocumentByPath(ctx, doc.Path)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("deleting a document cascades to its chunks", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()

		require.NoError(t, docs.SaveDocument(ctx, &doc))
		chunk := domain.Chunk{
			ID:         "doc-1#0",
			DocumentID: "doc-1",
			Position:   0,
			Content:    "some text",
			Embedding:  []float32{1, 2, 3},
		}
		require.NoError(t, docs.SaveChunk(ctx, &chunk))

		require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))

		chunks, err := docs.ListAllChunks(ctx)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("chunk embeddings round-trip bit for bit", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()
		require.NoError(t, docs.SaveDocument(ctx, &doc))

		embedding := []float32{
			0, 1, -1, 0.5,
			math.MaxFloat32, math.SmallestNonzeroFloat32,
			float32(math.Inf(1)), 3.14159265,
		}
		chunk := domain.Chunk{
			ID:         "doc-1#0",
			DocumentID: "doc-1",
			Position:   0,
			Content:    "embedded text",
			Embedding:  embedding,
		}
		require.NoError(t, docs.SaveChunk(ctx, &chunk))

		chunks, err := docs.ListAllChunks(ctx)
		require.NoError(t, err)
		require.Len(t, chunks, 1)

		require.Len(t, chunks[0].Embedding, len(embedding))
		for i := range embedding {
			assert.Equal(t, math.Float32bits(embedding[i]), math.Float32bits(chunks[0].Embedding[i]),
				"component %d changed in storage", i)
		}
	})

	t.Run("chunks list in document and position order", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()
		require.NoError(t, docs.SaveDocument(ctx, &doc))

		for _, pos := range []int{2, 0, 1} {
			chunk := domain.Chunk{
				ID:         domain.ChunkID("doc-1", pos),
				DocumentID: "doc-1",
				Position:   pos,
				Content:    "text",
			}
			require.NoError(t, docs.SaveChunk(ctx, &chunk))
		}

		chunks, err := docs.ListAllChunks(ctx)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		for i, c := range chunks {
			assert.Equal(t, i, c.Position)
		}
	})

	t.Run("delete chunks leaves the document", func(t *testing.T) {
		docs := newTestStore(t).DocumentStore()
		require.NoError(t, docs.SaveDocument(ctx, &doc))
		chunk := domain.Chunk{ID: "doc-1#0", DocumentID: "doc-1", Content: "text"}
		require.NoError(t, docs.SaveChunk(ctx, &chunk))

		require.NoError(t, docs.DeleteChunks(ctx, "doc-1"))

		chunks, err := docs.ListAllChunks(ctx)
		require.NoError(t, err)
		assert.Empty(t, chunks)

		_, err = docs.GetDocumentByPath(ctx, doc.Path)
		assert.NoError(t, err)
	})
}

func TestChatStore(t *testing.T) {
	ctx := context.Background()

	t.Run("append assigns increasing ids", func(t *testing.T) {
		chat := newTestStore(t).ChatStore()

		first, err := chat.Append(ctx, domain.RoleUser, "hello")
		require.NoError(t, err)
		second, err := chat.Append(ctx, domain.RoleAssistant, "hi there")
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.NotZero(t, first.Timestamp)
	})

	t.Run("history preserves conversation order", func(t *testing.T) {
		chat := newTestStore(t).ChatStore()

		_, err := chat.Append(ctx, domain.RoleUser, "one")
		require.NoError(t, err)
		_, err = chat.Append(ctx, domain.RoleAssistant, "two")
		require.NoError(t, err)
		_, err = chat.Append(ctx, domain.RoleUser, "three")
		require.NoError(t, err)

		history, err := chat.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, "one", history[0].Content)
		assert.Equal(t, "two", history[1].Content)
		assert.Equal(t, "three", history[2].Content)
	})

	t.Run("clear empties the log", func(t *testing.T) {
		chat := newTestStore(t).ChatStore()

		_, err := chat.Append(ctx, domain.RoleUser, "bye")
		require.NoError(t, err)
		require.NoError(t, chat.Clear(ctx))

		history, err := chat.History(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table yields defaults", func(t *testing.T) {
		settings, err := newTestStore(t).SettingsStore().Get(ctx)
		require.NoError(t, err)

		assert.Equal(t, domain.AIProviderOllama, settings.Provider)
		assert.Equal(t, domain.DefaultEndpoint, settings.Endpoint)
		assert.Equal(t, domain.DefaultLLMModel, settings.LLMModel)
		assert.Equal(t, domain.DefaultEmbeddingModel, settings.EmbeddingModel)
		assert.Empty(t, settings.VaultPath)
	})

	t.Run("save and reload round-trips every field", func(t *testing.T) {
		store := newTestStore(t).SettingsStore()

		want := &domain.Settings{
			VaultPath:      "/home/user/notes",
			Provider:       domain.AIProviderOpenAI,
			Endpoint:       "https://api.openai.com/v1",
			LLMModel:       "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			APIKey:         "sk-test",
			OutlineBaseURL: "https://wiki.example.com",
			OutlineAPIKey:  "ol-test",
		}
		require.NoError(t, store.Save(ctx, want))

		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("saving twice overwrites", func(t *testing.T) {
		store := newTestStore(t).SettingsStore()

		settings := domain.DefaultSettings()
		settings.VaultPath = "/first"
		require.NoError(t, store.Save(ctx, settings))

		settings.VaultPath = "/second"
		require.NoError(t, store.Save(ctx, settings))

		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/second", got.VaultPath)
	})
}
