package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScanner_Scan(t *testing.T) {
	t.Run("finds markdown files recursively", func(t *testing.T) {
		root := t.TempDir()
		noteA := writeFile(t, root, "a.md", "# A")
		noteB := writeFile(t, root, "sub/nested/b.md", "# B")
		writeFile(t, root, "image.png", "binary")
		writeFile(t, root, "notes.txt", "plain")

		entries, err := NewScanner().Scan(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		paths := []string{entries[0].Path, entries[1].Path}
		assert.Contains(t, paths, noteA)
		assert.Contains(t, paths, noteB)
		for _, entry := range entries {
			assert.Positive(t, entry.LastModified)
		}
	})

	t.Run("extension match is case-insensitive", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "UPPER.MD", "# upper")
		writeFile(t, root, "mixed.Md", "# mixed")

		entries, err := NewScanner().Scan(context.Background(), root)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("skips hidden directories", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "note.md", "# note")
		writeFile(t, root, ".obsidian/workspace.md", "internal")
		writeFile(t, root, ".git/description.md", "internal")

		entries, err := NewScanner().Scan(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, filepath.Join(root, "note.md"), entries[0].Path)
	})

	t.Run("fails on missing root", func(t *testing.T) {
		_, err := NewScanner().Scan(context.Background(), filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})

	t.Run("fails when root is a file", func(t *testing.T) {
		root := t.TempDir()
		path := writeFile(t, root, "file.md", "# f")

		_, err := NewScanner().Scan(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "note.md", "# note")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewScanner().Scan(ctx, root)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestScanner_Read(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "note.md", "# content")

	data, err := NewScanner().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# content", string(data))

	_, err = NewScanner().Read(context.Background(), filepath.Join(root, "absent.md"))
	assert.Error(t, err)
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("note.md"))
	assert.True(t, IsMarkdown("NOTE.MD"))
	assert.True(t, IsMarkdown("/vault/sub/note.Md"))
	assert.False(t, IsMarkdown("note.markdown"))
	assert.False(t, IsMarkdown("note.txt"))
	assert.False(t, IsMarkdown("md"))
}
