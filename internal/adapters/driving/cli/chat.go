package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/4ug-aug/Metabrain/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask your knowledge base a question",
	Long: `Answers a question using retrieval-augmented generation over the
indexed knowledge base. With a question argument, answers once and
exits. Without arguments, starts an interactive session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversation log",
	RunE:  runChatHistory,
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the conversation log",
	RunE:  runChatClear,
}

func init() {
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if ragService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()

	if len(args) > 0 {
		return askOnce(ctx, cmd, args[0])
	}
	return chatLoop(ctx, cmd)
}

func askOnce(ctx context.Context, cmd *cobra.Command, question string) error {
	answer, err := ragService.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}
	cmd.Println(answer)
	return nil
}

// chatLoop runs an interactive read-ask-print session until EOF or "exit".
func chatLoop(ctx context.Context, cmd *cobra.Command) error {
	cmd.Println("Interactive chat. Type 'exit' or Ctrl-D to quit.")

	reader := bufio.NewReader(os.Stdin)
	for {
		cmd.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			cmd.Println()
			return nil
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		answer, err := ragService.Answer(ctx, question)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			continue
		}
		cmd.Println(answer)
		cmd.Println()
	}
}

func runChatHistory(cmd *cobra.Command, _ []string) error {
	if ragService == nil {
		return errors.New("chat service not configured")
	}

	history, err := ragService.History(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(history) == 0 {
		cmd.Println("No conversation yet.")
		return nil
	}

	for i := range history {
		prefix := "You"
		if history[i].Role == domain.RoleAssistant {
			prefix = "Metabrain"
		}
		cmd.Printf("%s: %s\n\n", prefix, history[i].Content)
	}
	return nil
}

func runChatClear(cmd *cobra.Command, _ []string) error {
	if ragService == nil {
		return errors.New("chat service not configured")
	}

	if err := ragService.ClearHistory(context.Background()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("Conversation cleared.")
	return nil
}
