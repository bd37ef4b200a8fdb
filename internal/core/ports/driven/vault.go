package driven

import "context"

// VaultEntry describes one markdown note found in the vault.
type VaultEntry struct {
	// Path is the absolute path of the note file.
	Path string

	// LastModified is the file's modification time in unix seconds.
	LastModified int64
}

// VaultScanner enumerates and reads the markdown notes of a local vault.
type VaultScanner interface {
	// Scan walks root recursively and returns every markdown note,
	// skipping hidden directories.
	Scan(ctx context.Context, root string) ([]VaultEntry, error)

	// Read returns the raw bytes of a note previously seen by Scan.
	Read(ctx context.Context, path string) ([]byte, error)
}
