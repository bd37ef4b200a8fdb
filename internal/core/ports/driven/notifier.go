package driven

// SyncSummary is the final status reported at the end of an ingestion batch.
type SyncSummary struct {
	// Total is the number of documents in the batch.
	Total int

	// Processed is the number of documents attended to (including skips).
	Processed int

	// CompletedAt is when the batch finished (Unix seconds).
	CompletedAt int64

	// Err describes the batch's accumulated failures, empty on full success.
	Err string
}

// Notifier receives fire-and-forget progress and stream events for the
// external shell (CLI, TUI, or GUI event transport). Implementations must
// never block and must never fail the calling operation; there is no
// acknowledgment or backpressure channel back to the core.
type Notifier interface {
	// SyncProgress reports ingestion progress after each document.
	SyncProgress(processed, total int, current string)

	// SyncComplete reports the final batch status.
	SyncComplete(summary SyncSummary)

	// StreamChunk forwards one incremental answer fragment.
	StreamChunk(content string)

	// StreamDone signals the end of an answer stream. Emitted exactly once
	// per answer, even when the stream produced zero fragments.
	StreamDone()
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// SyncProgress implements Notifier.
func (NopNotifier) SyncProgress(int, int, string) {}

// SyncComplete implements Notifier.
func (NopNotifier) SyncComplete(SyncSummary) {}

// StreamChunk implements Notifier.
func (NopNotifier) StreamChunk(string) {}

// StreamDone implements Notifier.
func (NopNotifier) StreamDone() {}
