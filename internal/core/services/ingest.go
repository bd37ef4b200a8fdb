package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driving"
	"github.com/4ug-aug/Metabrain/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.Ingestor = (*IngestOrchestrator)(nil)

// OutlinePathPrefix marks documents indexed from an Outline wiki.
// Their store paths are synthetic: "outline://<remote id>".
const OutlinePathPrefix = "outline://"

// IngestOrchestrator coordinates document ingestion: scanning, parsing,
// chunking, embedding and persistence. One batch runs at a time.
type IngestOrchestrator struct {
	settingsStore driven.SettingsStore
	docStore      driven.DocumentStore
	scanner       driven.VaultScanner
	normaliser    driven.Normaliser
	chunker       driven.Chunker
	embedder      driven.EmbeddingService
	notifier      driven.Notifier
	remote        driven.RemoteSource

	mu     sync.RWMutex
	status driving.IngestStatus
}

// NewIngestOrchestrator creates a new ingest orchestrator.
// The notifier is optional; nil disables progress events.
func NewIngestOrchestrator(
	settingsStore driven.SettingsStore,
	docStore driven.DocumentStore,
	scanner driven.VaultScanner,
	normaliser driven.Normaliser,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	notifier driven.Notifier,
) *IngestOrchestrator {
	if notifier == nil {
		notifier = driven.NopNotifier{}
	}
	return &IngestOrchestrator{
		settingsStore: settingsStore,
		docStore:      docStore,
		scanner:       scanner,
		normaliser:    normaliser,
		chunker:       chunker,
		embedder:      embedder,
		notifier:      notifier,
	}
}

// SetRemoteSource sets the Outline source used by SyncOutline.
func (o *IngestOrchestrator) SetRemoteSource(remote driven.RemoteSource) {
	o.remote = remote
}

// SyncVault indexes every markdown file under the configured vault path.
func (o *IngestOrchestrator) SyncVault(ctx context.Context) (*driving.IngestStatus, error) {
	settings, err := o.settingsStore.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if settings.VaultPath == "" {
		return nil, domain.ErrVaultNotConfigured
	}

	if err := o.begin(); err != nil {
		return nil, err
	}

	logger.Section("Vault Sync")
	logger.Info("Scanning vault: %s", settings.VaultPath)

	entries, err := o.scanner.Scan(ctx, settings.VaultPath)
	if err != nil {
		o.finish(0, 0, fmt.Sprintf("scan vault: %v", err))
		return nil, fmt.Errorf("scan vault: %w", err)
	}

	o.setTotal(len(entries))
	o.notifier.SyncProgress(0, len(entries), "")

	var failures []string
	processed := 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			o.finish(processed, len(entries), "cancelled")
			return nil, err
		}

		o.notifier.SyncProgress(processed, len(entries), filepath.Base(entry.Path))

		content, err := o.scanner.Read(ctx, entry.Path)
		if err == nil {
			err = o.ingestOne(ctx, entry.Path, content, entry.LastModified)
		}
		if err != nil {
			logger.Warn("Failed to process %s: %v", entry.Path, err)
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(entry.Path), err))
		}

		processed++
		o.setProcessed(processed)
	}

	status := o.finish(processed, len(entries), strings.Join(failures, "; "))
	logger.Info("Vault sync complete: %d/%d documents, %d failures", processed, len(entries), len(failures))
	return status, nil
}

// SyncOutline indexes all non-archived documents from the configured
// Outline wiki.
func (o *IngestOrchestrator) SyncOutline(ctx context.Context) (*driving.IngestStatus, error) {
	if o.remote == nil {
		return nil, fmt.Errorf("%w: outline source not configured", domain.ErrInvalidInput)
	}

	if err := o.begin(); err != nil {
		return nil, err
	}

	logger.Section("Outline Sync")
	o.notifier.SyncProgress(0, 0, "Fetching document list...")

	docs, err := o.remote.ListAll(ctx)
	if err != nil {
		o.finish(0, 0, fmt.Sprintf("list documents: %v", err))
		return nil, fmt.Errorf("list outline documents: %w", err)
	}

	logger.Info("Found %d documents in Outline", len(docs))
	o.setTotal(len(docs))

	var failures []string
	processed := 0

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			o.finish(processed, len(docs), "cancelled")
			return nil, err
		}

		o.notifier.SyncProgress(processed, len(docs), doc.Title)

		if err := o.ingestRemote(ctx, doc); err != nil {
			logger.Warn("Failed to process %q: %v", doc.Title, err)
			failures = append(failures, fmt.Sprintf("%s: %v", doc.Title, err))
		}

		processed++
		o.setProcessed(processed)
	}

	status := o.finish(processed, len(docs), strings.Join(failures, "; "))
	logger.Info("Outline sync complete: %d/%d documents, %d failures", processed, len(docs), len(failures))
	return status, nil
}

// IngestPath indexes a single document from raw bytes.
func (o *IngestOrchestrator) IngestPath(ctx context.Context, path string, content []byte, lastModified int64) error {
	return o.ingestOne(ctx, path, content, lastModified)
}

// RemovePath deletes a document and its chunks by path.
func (o *IngestOrchestrator) RemovePath(ctx context.Context, path string) error {
	if err := o.docStore.DeleteDocumentByPath(ctx, path); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Status returns the current progress snapshot.
func (o *IngestOrchestrator) Status() driving.IngestStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

// ingestRemote fetches a remote document's full text and indexes it
// under its synthetic outline path.
func (o *IngestOrchestrator) ingestRemote(ctx context.Context, doc driven.RemoteDocument) error {
	full, err := o.remote.Fetch(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}

	var lastModified int64
	if t, err := time.Parse(time.RFC3339, full.UpdatedAt); err == nil {
		lastModified = t.Unix()
	}

	path := OutlinePathPrefix + doc.ID
	return o.ingestOne(ctx, path, []byte(full.Text), lastModified)
}

// ingestOne runs the per-document pipeline: parse, change-detect, chunk,
// embed, persist. Unchanged documents are skipped without touching the
// embedding service.
func (o *IngestOrchestrator) ingestOne(ctx context.Context, path string, content []byte, lastModified int64) error {
	parsed, err := o.normaliser.Normalise(ctx, content)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}

	docID := uuid.New().String()

	existing, err := o.docStore.GetDocumentByPath(ctx, path)
	switch {
	case err == nil:
		if existing.ContentHash == parsed.Fingerprint {
			logger.Debug("Unchanged, skipping: %s", path)
			return nil
		}
		// Changed: keep the identity, replace the content.
		docID = existing.ID
	case errors.Is(err, domain.ErrNotFound):
		// New document.
	default:
		return fmt.Errorf("get document: %w", err)
	}

	chunks := o.chunker.Split(docID, parsed.PlainText)

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i := range chunks {
			texts[i] = chunks[i].Content
		}

		embeddings, err := o.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}
		if len(embeddings) != len(chunks) {
			return fmt.Errorf("embed chunks: got %d embeddings for %d chunks", len(embeddings), len(chunks))
		}
		for i := range chunks {
			chunks[i].Embedding = embeddings[i]
		}
	}

	doc := &domain.Document{
		ID:           docID,
		Path:         path,
		LastModified: lastModified,
		ContentHash:  parsed.Fingerprint,
		IndexedAt:    time.Now().Unix(),
	}

	if err := o.docStore.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if err := o.docStore.DeleteChunks(ctx, docID); err != nil {
		return fmt.Errorf("delete old chunks: %w", err)
	}
	for i := range chunks {
		if err := o.docStore.SaveChunk(ctx, &chunks[i]); err != nil {
			return fmt.Errorf("save chunk %s: %w", chunks[i].ID, err)
		}
	}

	logger.Debug("Indexed %s: %d chunks", path, len(chunks))
	return nil
}

// begin marks a batch as running. Only one batch may run at a time.
func (o *IngestOrchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status.Running {
		return domain.ErrSyncInProgress
	}
	o.status.Running = true
	o.status.Total = 0
	o.status.Processed = 0
	o.status.LastError = ""
	return nil
}

// finish records the batch outcome and emits the completion event.
func (o *IngestOrchestrator) finish(processed, total int, errMsg string) *driving.IngestStatus {
	o.mu.Lock()
	o.status.Running = false
	o.status.Total = total
	o.status.Processed = processed
	o.status.LastSyncAt = time.Now().Unix()
	o.status.LastError = errMsg
	status := o.status
	o.mu.Unlock()

	o.notifier.SyncComplete(driven.SyncSummary{
		Total:       total,
		Processed:   processed,
		CompletedAt: status.LastSyncAt,
		Err:         errMsg,
	})

	return &status
}

func (o *IngestOrchestrator) setTotal(total int) {
	o.mu.Lock()
	o.status.Total = total
	o.mu.Unlock()
}

func (o *IngestOrchestrator) setProcessed(processed int) {
	o.mu.Lock()
	o.status.Processed = processed
	o.mu.Unlock()
}
