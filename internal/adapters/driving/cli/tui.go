package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/4ug-aug/Metabrain/internal/adapters/driving/tui"
)

// tuiRelay forwards core notifications into the running TUI.
// Injected by the composition root alongside the services.
var tuiRelay *tui.Relay

// SetTUIRelay injects the notifier relay used by the TUI command.
func SetTUIRelay(relay *tui.Relay) {
	tuiRelay = relay
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive chat interface",
	Long: `Launch the interactive terminal interface for chatting with your
knowledge base. Answers stream in as they are generated.

Controls:
  Enter - Ask
  Esc   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if ragService == nil {
		return errors.New("chat service not configured")
	}

	// Panic recovery to get stack traces out of the alternate screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app := tui.NewApp(context.Background(), ragService)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if tuiRelay != nil {
		tuiRelay.SetProgram(program)
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
