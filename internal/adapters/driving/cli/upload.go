package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

// uploadMethod is the --method flag value.
var uploadMethod string

var uploadCmd = &cobra.Command{
	Use:   "upload [file.pdf]...",
	Short: "Upload PDFs for question answering",
	Long: `Uploads one or more PDFs to the backend for processing.

The processing method defaults to the configured one; --method overrides it
for this invocation. The backend may fall back to a different method when
the requested one is unavailable, in which case the confirmed method is
reported and becomes the new default.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadMethod, "method", "m", "", "processing method (standard, semantic, layout)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	ctx := context.Background()

	if uploadMethod != "" {
		if err := registryService.SetMethod(domain.ProcessingMethod(uploadMethod)); err != nil {
			return fmt.Errorf("setting method: %w", err)
		}
	}

	var failed int
	for _, path := range args {
		cmd.Printf("Uploading %s (method %s)...\n", path, registryService.Method())
		id, err := registryService.Upload(ctx, path)
		if err != nil {
			failed++
			cmd.Printf("  failed: %v\n", err)
			continue
		}

		doc, err := registryService.Get(id)
		if err != nil {
			cmd.Printf("  uploaded as %s\n", id)
			continue
		}
		cmd.Printf("  uploaded as %s (%d pages, method %s)\n", doc.ID, doc.Pages, doc.Method)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}
	return nil
}
