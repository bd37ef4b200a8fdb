package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

// connectionChecker validates AI provider connectivity for settings check.
// Injected by the composition root.
var connectionChecker func(ctx context.Context, settings *domain.Settings) error

// SetConnectionChecker injects the AI connectivity check.
func SetConnectionChecker(check func(ctx context.Context, settings *domain.Settings) error) {
	connectionChecker = check
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the vault path, AI provider, and Outline wiki
connection.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a settings value",
	Long: `Sets one settings key. Available keys:

  vault_path       - root directory of the markdown vault
  provider         - AI provider (ollama or openai)
  endpoint         - AI provider base URL
  llm_model        - generation model name
  embedding_model  - embedding model name
  api_key          - AI provider API key
  outline_base_url - Outline wiki URL
  outline_api_key  - Outline API key

API keys may omit the value to be prompted without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the AI provider connection",
	RunE:  runSettingsCheck,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Println("Current settings:")
	cmd.Println()
	cmd.Printf("  vault_path:       %s\n", orUnset(settings.VaultPath))
	cmd.Printf("  provider:         %s\n", settings.Provider)
	cmd.Printf("  endpoint:         %s\n", settings.Endpoint)
	cmd.Printf("  llm_model:        %s\n", settings.LLMModel)
	cmd.Printf("  embedding_model:  %s\n", settings.EmbeddingModel)
	cmd.Printf("  api_key:          %s\n", maskAPIKey(settings.APIKey))
	cmd.Printf("  outline_base_url: %s\n", orUnset(settings.OutlineBaseURL))
	cmd.Printf("  outline_api_key:  %s\n", maskAPIKey(settings.OutlineAPIKey))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == "api_key" || key == "outline_api_key":
		cmd.Printf("Enter %s: ", key)
		value = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("no value given for %s", key)
	}

	ctx := context.Background()
	settings, err := settingsStore.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	switch key {
	case "vault_path":
		settings.VaultPath = value
	case "provider":
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, value)
		}
		settings.Provider = provider
	case "endpoint":
		settings.Endpoint = value
	case "llm_model":
		settings.LLMModel = value
	case "embedding_model":
		settings.EmbeddingModel = value
	case "api_key":
		settings.APIKey = value
	case "outline_base_url":
		settings.OutlineBaseURL = value
	case "outline_api_key":
		settings.OutlineAPIKey = value
	default:
		return fmt.Errorf("unknown settings key: %s", key)
	}

	if err := settingsStore.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}
	if connectionChecker == nil {
		return errors.New("connection check not configured")
	}

	ctx := context.Background()
	settings, err := settingsStore.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Printf("Checking %s connection... ", settings.Provider)
	if err := connectionChecker(ctx, settings); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}
