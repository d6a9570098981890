package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/paperchat/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  paperchat mcp serve

  # HTTP mode
  paperchat mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if chatService == nil || registryService == nil {
		return errors.New("services not configured")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	// Load server-side documents before serving tools.
	if err := registryService.Refresh(context.Background()); err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Chat:     chatService,
		Registry: registryService,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	if port > 0 {
		return server.RunHTTP(cmd.Context(), fmt.Sprintf(":%d", port))
	}
	return server.Run(cmd.Context())
}
