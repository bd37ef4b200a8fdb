package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/4ug-aug/Metabrain/internal/core/ports/driving"
)

// syncOutline selects the Outline wiki instead of the local vault.
var syncOutline bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Index the knowledge base",
	Long: `Indexes every markdown file under the configured vault path.
Unchanged documents are skipped; changed ones are re-embedded.
With --outline, documents are pulled from the configured Outline wiki
instead.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncOutline, "outline", false, "sync from the Outline wiki instead of the vault")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if ingestor == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	if syncOutline {
		cmd.Println("Syncing Outline wiki...")
	} else {
		cmd.Println("Syncing vault...")
	}

	status, err := syncWithProgress(ctx, cmd)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Indexed %d of %d documents.\n", status.Processed, status.Total)
	if status.LastError != "" {
		cmd.Printf("Some documents failed: %s\n", status.LastError)
	}
	return nil
}

// syncWithProgress runs the sync while displaying progress updates.
func syncWithProgress(ctx context.Context, cmd *cobra.Command) (*driving.IngestStatus, error) {
	type result struct {
		status *driving.IngestStatus
		err    error
	}

	resCh := make(chan result, 1)
	go func() {
		var r result
		if syncOutline {
			r.status, r.err = ingestor.SyncOutline(ctx)
		} else {
			r.status, r.err = ingestor.SyncVault(ctx)
		}
		resCh <- r
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case r := <-resCh:
			if r.status != nil && r.status.Processed > 0 {
				cmd.Printf("\r")
			}
			return r.status, r.err
		case <-ticker.C:
			status := ingestor.Status()
			if status.Processed > lastCount {
				cmd.Printf("\rProcessing... %d/%d documents", status.Processed, status.Total)
				lastCount = status.Processed
			}
		}
	}
}
