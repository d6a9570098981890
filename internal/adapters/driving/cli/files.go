package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage uploaded documents",
	Long:  `List or delete documents known to the backend.`,
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents on the server",
	Args:  cobra.NoArgs,
	RunE:  runFilesList,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete [file-id]",
	Short: "Delete a document",
	Long: `Removes a document locally and on the server.

Local removal happens first; a server-side "not found" is treated as
success so client and server converge even after divergence.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilesDelete,
}

func init() {
	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesDeleteCmd)
	rootCmd.AddCommand(filesCmd)
}

func runFilesList(cmd *cobra.Command, _ []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	ctx := context.Background()
	if err := registryService.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	docs := registryService.Documents()
	if len(docs) == 0 {
		cmd.Println("No documents uploaded yet.")
		return nil
	}

	active := make(map[string]bool)
	for _, id := range registryService.ActiveIDs() {
		active[id] = true
	}

	for i := range docs {
		marker := " "
		if active[docs[i].ID] {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].Name)
		cmd.Printf("    Size: %d bytes\n", docs[i].Size)
		cmd.Printf("    Method: %s\n", docs[i].Method)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents (* = active for chat)\n", len(docs))
	return nil
}

func runFilesDelete(cmd *cobra.Command, args []string) error {
	if registryService == nil {
		return errors.New("registry service not configured")
	}

	id := args[0]
	ctx := context.Background()

	if err := registryService.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}

	if w := registryService.LastWarning(); w != "" {
		cmd.Printf("Deleted %s locally. Warning: %s\n", id, w)
		return nil
	}
	cmd.Printf("Deleted %s\n", id)
	return nil
}
