// Package tui provides the interactive chat interface for Metabrain,
// built on Bubbletea following the Elm architecture.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/4ug-aug/Metabrain/internal/adapters/driving/tui/messages"
	"github.com/4ug-aug/Metabrain/internal/adapters/driving/tui/styles"
	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driving"
)

// chatLine is one rendered turn of the conversation.
type chatLine struct {
	role    string
	content string
}

// App is the chat TUI model. It implements tea.Model.
type App struct {
	rag    driving.RagService
	ctx    context.Context
	styles *styles.Styles

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	lines     []chatLine
	streaming bool
	pending   strings.Builder
	status    string

	width  int
	height int
}

// NewApp creates the chat application model.
func NewApp(ctx context.Context, rag driving.RagService) *App {
	input := textinput.New()
	input.Placeholder = "Ask your knowledge base..."
	input.Focus()
	input.CharLimit = 2000

	return &App{
		rag:    rag,
		ctx:    ctx,
		styles: styles.NewStyles(styles.DefaultTheme()),
		input:  input,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadHistory())
}

// loadHistory fetches the persisted conversation.
func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		history, err := a.rag.History(a.ctx)
		return messages.HistoryLoaded{Messages: history, Err: err}
	}
}

// ask runs the answering pipeline for one question. Fragments arrive
// separately through the relay; this command carries the final result.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.rag.Answer(a.ctx, question)
		return messages.AnswerFinished{Answer: answer, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit

		case tea.KeyEnter:
			question := strings.TrimSpace(a.input.Value())
			if question == "" || a.streaming {
				return a, nil
			}
			a.lines = append(a.lines, chatLine{role: domain.RoleUser, content: question})
			a.streaming = true
			a.pending.Reset()
			a.status = "Thinking..."
			a.input.Reset()
			a.refreshViewport()
			return a, a.ask(question)
		}

	case messages.HistoryLoaded:
		if msg.Err == nil {
			for _, m := range msg.Messages {
				a.lines = append(a.lines, chatLine{role: m.Role, content: m.Content})
			}
			a.refreshViewport()
		}
		return a, nil

	case messages.AnswerChunk:
		a.pending.WriteString(msg.Content)
		a.refreshViewport()
		return a, nil

	case messages.AnswerStreamDone:
		a.status = ""
		return a, nil

	case messages.AnswerFinished:
		a.streaming = false
		a.status = ""
		if msg.Err != nil {
			a.lines = append(a.lines, chatLine{
				role:    domain.RoleAssistant,
				content: fmt.Sprintf("Error: %v", msg.Err),
			})
		} else {
			a.lines = append(a.lines, chatLine{role: domain.RoleAssistant, content: msg.Answer})
		}
		a.pending.Reset()
		a.refreshViewport()
		return a, nil

	case messages.SyncProgress:
		a.status = fmt.Sprintf("Indexing %d/%d: %s", msg.Processed, msg.Total, msg.Current)
		return a, nil

	case messages.SyncCompleted:
		if msg.Err != "" {
			a.status = fmt.Sprintf("Sync finished with errors: %s", msg.Err)
		} else {
			a.status = fmt.Sprintf("Sync complete: %d documents", msg.Processed)
		}
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	// Header, input box with border, and status hint take fixed rows.
	const chrome = 6
	viewportHeight := height - chrome
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !a.ready {
		a.viewport = viewport.New(width, viewportHeight)
		a.ready = true
	} else {
		a.viewport.Width = width
		a.viewport.Height = viewportHeight
	}

	a.input.Width = width - 6
	a.refreshViewport()
}

// refreshViewport rerenders the conversation and scrolls to the bottom.
func (a *App) refreshViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.renderConversation())
	a.viewport.GotoBottom()
}

func (a *App) renderConversation() string {
	var b strings.Builder

	for _, line := range a.lines {
		b.WriteString(a.renderLine(line))
		b.WriteString("\n\n")
	}

	// Stream in progress: show what has arrived so far.
	if a.streaming && a.pending.Len() > 0 {
		b.WriteString(a.renderLine(chatLine{role: domain.RoleAssistant, content: a.pending.String()}))
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderLine(line chatLine) string {
	label := a.styles.UserLabel.Render("You")
	if line.role == domain.RoleAssistant {
		label = a.styles.AssistantLabel.Render("Metabrain")
	}
	return label + "\n" + line.content
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Metabrain"))
	b.WriteString("\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.styles.InputBox.Width(a.width - 2).Render(a.input.View()))
	b.WriteString("\n")

	hint := "enter: ask • esc: quit"
	if a.status != "" {
		hint = a.status
	}
	b.WriteString(a.styles.Muted.Render(hint))

	return b.String()
}
