// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

// HistoryLoaded carries the persisted conversation into the model.
type HistoryLoaded struct {
	Messages []domain.ChatMessage
	Err      error
}

// AnswerChunk is one incremental fragment of a streamed answer.
type AnswerChunk struct {
	Content string
}

// AnswerStreamDone signals that the answer stream has ended.
type AnswerStreamDone struct{}

// AnswerFinished carries the final result of an Answer call.
type AnswerFinished struct {
	Answer string
	Err    error
}

// SyncProgress reports background ingestion progress.
type SyncProgress struct {
	Processed int
	Total     int
	Current   string
}

// SyncCompleted reports the end of a background ingestion batch.
type SyncCompleted struct {
	Processed int
	Total     int
	Err       string
}
