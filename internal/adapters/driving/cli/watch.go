package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/paperchat/internal/adapters/driven/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Auto-upload PDFs from a folder",
	Long: `Watches a directory and uploads every PDF that appears in it.

Runs until interrupted. With no argument the configured watch.dir is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	} else if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			dir = s.WatchDir
		}
	}
	if dir == "" {
		return errors.New("no directory given and watch.dir not configured")
	}

	cmd.Printf("Watching %s for PDFs. Ctrl+C to stop.\n", dir)
	w := watch.NewWatcher(registryService, dir)
	err := w.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
