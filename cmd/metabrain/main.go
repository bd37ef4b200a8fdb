// Command metabrain is the CLI entry point for the Metabrain knowledge
// base. It wires the storage, AI, and connector adapters into the core
// services and hands control to the command layer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/4ug-aug/Metabrain/internal/adapters/driven/ai"
	"github.com/4ug-aug/Metabrain/internal/adapters/driven/config/file"
	"github.com/4ug-aug/Metabrain/internal/adapters/driven/storage/sqlite"
	"github.com/4ug-aug/Metabrain/internal/adapters/driving/cli"
	"github.com/4ug-aug/Metabrain/internal/adapters/driving/tui"
	"github.com/4ug-aug/Metabrain/internal/connectors/filesystem"
	"github.com/4ug-aug/Metabrain/internal/connectors/outline"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driving"
	"github.com/4ug-aug/Metabrain/internal/core/services"
	"github.com/4ug-aug/Metabrain/internal/logger"
	"github.com/4ug-aug/Metabrain/internal/normalisers/markdown"
	"github.com/4ug-aug/Metabrain/internal/postprocessors/chunker"
)

// version is set via ldflags at build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Bootstrap config decides where the database lives.
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString("data_dir"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	settingsStore := store.SettingsStore()
	docStore := store.DocumentStore()
	chatStore := store.ChatStore()

	ctx := context.Background()
	settings, err := settingsStore.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// The relay feeds progress and stream events into the TUI when it is
	// running; outside the TUI it drops them.
	relay := tui.NewRelay()
	scanner := filesystem.NewScanner()

	wired := cli.Services{
		SettingsStore: settingsStore,
		DocumentStore: docStore,
	}

	// A broken AI configuration must not lock the user out of the
	// settings commands that would fix it.
	embedder, err := ai.CreateEmbeddingService(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: AI provider unavailable: %v\n", err)
	} else {
		defer embedder.Close()

		llm, err := ai.CreateLLMService(settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: AI provider unavailable: %v\n", err)
		} else {
			defer llm.Close()

			ingestor := services.NewIngestOrchestrator(
				settingsStore,
				docStore,
				scanner,
				markdown.New(),
				chunker.New(),
				embedder,
				relay,
			)

			if settings.OutlineBaseURL != "" && settings.OutlineAPIKey != "" {
				remote, err := outline.NewClient(outline.Config{
					BaseURL: settings.OutlineBaseURL,
					APIKey:  settings.OutlineAPIKey,
				})
				if err != nil {
					return fmt.Errorf("create outline client: %w", err)
				}
				ingestor.SetRemoteSource(remote)
			}

			retriever := services.NewRetriever(docStore)
			engine := services.NewRagEngine(chatStore, retriever, embedder, llm, relay)

			wired.Ingestor = ingestor
			wired.RagService = engine
			cli.SetWatchRunner(watchVault(scanner, ingestor))
		}
	}

	cli.SetVersion(version)
	cli.SetServices(wired)
	cli.SetTUIRelay(relay)
	cli.SetConnectionChecker(ai.CheckConnection)

	return cli.Execute()
}

// watchVault builds the blocking vault watch loop handed to the CLI.
func watchVault(scanner *filesystem.Scanner, ingestor driving.Ingestor) func(ctx context.Context, vaultPath string) error {
	return func(ctx context.Context, vaultPath string) error {
		handler := filesystem.WatchHandler{
			OnChange: func(ctx context.Context, path string) {
				content, err := scanner.Read(ctx, path)
				if err != nil {
					logger.Warn("read changed file %s: %v", path, err)
					return
				}
				if err := ingestor.IngestPath(ctx, path, content, fileModTime(path)); err != nil {
					logger.Warn("index %s: %v", path, err)
				}
			},
			OnRemove: func(ctx context.Context, path string) {
				if err := ingestor.RemovePath(ctx, path); err != nil {
					logger.Warn("remove %s: %v", path, err)
				}
			},
		}

		watcher, err := filesystem.NewWatcher(vaultPath, handler)
		if err != nil {
			return err
		}
		defer watcher.Close()

		return watcher.Run(ctx)
	}
}

func fileModTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}
