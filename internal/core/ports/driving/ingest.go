// Package driving provides interfaces for application entry points (primary/inbound ports).
package driving

import "context"

// IngestStatus is a poll-able snapshot of ingestion progress.
// It is a progress report, not a work queue.
type IngestStatus struct {
	// Running is true while a batch is in flight.
	Running bool

	// Total is the number of documents in the current (or last) batch.
	Total int

	// Processed is the number of documents attended to so far.
	Processed int

	// LastSyncAt is the completion time of the last batch (Unix seconds),
	// zero if none has completed.
	LastSyncAt int64

	// LastError describes the last batch's failures, empty if none.
	LastError string
}

// Ingestor orchestrates document ingestion into the knowledge base.
type Ingestor interface {
	// SyncVault indexes every markdown file under the configured vault
	// path. Per-document failures are isolated; the batch never aborts on
	// one document. Returns domain.ErrSyncInProgress if a batch is
	// already running.
	SyncVault(ctx context.Context) (*IngestStatus, error)

	// SyncOutline indexes all non-archived documents from the configured
	// Outline wiki under synthetic "outline://<id>" paths.
	SyncOutline(ctx context.Context) (*IngestStatus, error)

	// IngestPath indexes a single document given its path and raw content.
	IngestPath(ctx context.Context, path string, content []byte, lastModified int64) error

	// RemovePath deletes the document at the given path and all its
	// chunks. Removing an unknown path is not an error.
	RemovePath(ctx context.Context, path string) error

	// Status returns the current progress snapshot.
	Status() IngestStatus
}
