package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/4ug-aug/Metabrain/internal/adapters/driving/tui/messages"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure Relay implements the interface.
var _ driven.Notifier = (*Relay)(nil)

// Relay forwards core notifications into the Bubbletea event loop.
// It is created before the tea.Program exists, so the program is attached
// later via SetProgram; notifications arriving before that are dropped.
type Relay struct {
	mu      sync.RWMutex
	program *tea.Program
}

// NewRelay creates an unattached relay.
func NewRelay() *Relay {
	return &Relay{}
}

// SetProgram attaches the running program.
func (r *Relay) SetProgram(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = p
}

func (r *Relay) send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// SyncProgress implements driven.Notifier.
func (r *Relay) SyncProgress(processed, total int, current string) {
	r.send(messages.SyncProgress{Processed: processed, Total: total, Current: current})
}

// SyncComplete implements driven.Notifier.
func (r *Relay) SyncComplete(summary driven.SyncSummary) {
	r.send(messages.SyncCompleted{Processed: summary.Processed, Total: summary.Total, Err: summary.Err})
}

// StreamChunk implements driven.Notifier.
func (r *Relay) StreamChunk(content string) {
	r.send(messages.AnswerChunk{Content: content})
}

// StreamDone implements driven.Notifier.
func (r *Relay) StreamDone() {
	r.send(messages.AnswerStreamDone{})
}
