package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// watchRunner blocks watching the vault until the context is cancelled.
// Injected by the composition root.
var watchRunner func(ctx context.Context, vaultPath string) error

// SetWatchRunner injects the vault watcher.
func SetWatchRunner(run func(ctx context.Context, vaultPath string) error) {
	watchRunner = run
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and index changes as they happen",
	Long: `Watches the configured vault directory and re-indexes markdown files
as they are created, edited, or deleted. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}
	if watchRunner == nil {
		return errors.New("watcher not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings, err := settingsStore.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.VaultPath == "" {
		return errors.New("vault path not configured, run 'metabrain settings set vault_path <dir>'")
	}

	cmd.Printf("Watching %s (ctrl-c to stop)...\n", settings.VaultPath)
	return watchRunner(ctx, settings.VaultPath)
}
