// Package filesystem provides the local markdown vault connector: a
// recursive scanner for full syncs and an fsnotify-based watcher for
// incremental updates.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure Scanner implements the interface.
var _ driven.VaultScanner = (*Scanner)(nil)

// Scanner walks a vault directory and reads markdown files.
type Scanner struct{}

// NewScanner creates a vault scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan walks root recursively and returns every markdown file found.
// Hidden directories (".obsidian", ".git", ...) are skipped entirely.
func (s *Scanner) Scan(ctx context.Context, root string) ([]driven.VaultEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat vault root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root %s is not a directory", root)
	}

	var entries []driven.VaultEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsMarkdown(path) {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		entries = append(entries, driven.VaultEntry{
			Path:         path,
			LastModified: fileInfo.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	return entries, nil
}

// Read returns the raw bytes of a vault file.
func (s *Scanner) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vault file: %w", err)
	}
	return data, nil
}

// IsMarkdown reports whether path has a markdown extension,
// case-insensitively.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}
