// Package cli provides the command-line interface for Metabrain.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driving"
	"github.com/4ug-aug/Metabrain/internal/logger"
)

// version is the build version, set via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	ingestor      driving.Ingestor
	ragService    driving.RagService
	settingsStore driven.SettingsStore
	documentStore driven.DocumentStore
)

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "metabrain",
	Short: "Chat with your personal knowledge base",
	Long: `Metabrain indexes your local markdown vault (and optionally an
Outline wiki) into a searchable knowledge base, and answers questions
about it using retrieval-augmented generation.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

// Services bundles everything the CLI needs from the composition root.
type Services struct {
	Ingestor      driving.Ingestor
	RagService    driving.RagService
	SettingsStore driven.SettingsStore
	DocumentStore driven.DocumentStore
}

// SetServices injects the application services.
func SetServices(s Services) {
	ingestor = s.Ingestor
	ragService = s.RagService
	settingsStore = s.SettingsStore
	documentStore = s.DocumentStore
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}
