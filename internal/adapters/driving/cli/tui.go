package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Paperchat.

The TUI provides a visual interface for uploading PDFs, managing the
active document selection, and chatting with your documents.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Ask / Select
  Space    - Toggle document selection
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if registryService == nil || chatService == nil || settingsService == nil {
		return errors.New("services not configured")
	}

	app, err := tui.NewApp(&tui.Ports{
		Registry: registryService,
		Chat:     chatService,
		Settings: settingsService,
	})
	if err != nil {
		return fmt.Errorf("creating TUI: %w", err)
	}

	return app.WithContext(cmd.Context()).Run()
}
