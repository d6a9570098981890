package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask a question about your documents",
	Long: `Sends one question grounded in the active document selection and
prints the answer with its sources. Every processed document is active by
default; use the TUI to narrow the selection.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil || registryService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()

	// Pick up server-side documents so a fresh invocation has a selection.
	if err := registryService.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	if err := chatService.Ask(ctx, args[0]); err != nil {
		if errors.Is(err, domain.ErrNoSelection) {
			return errors.New("no documents available; upload a PDF first")
		}
		return err
	}

	messages := chatService.Messages()
	if len(messages) == 0 {
		return nil
	}

	answer := messages[len(messages)-1]
	cmd.Println(answer.Text)
	for _, src := range answer.Sources {
		if src.Page > 0 {
			cmd.Printf("  - %s, page %d\n", src.Title, src.Page)
		} else {
			cmd.Printf("  - %s\n", src.Title)
		}
	}
	return nil
}
