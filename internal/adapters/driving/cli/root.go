// Package cli implements the cobra command tree for paperchat.
// It is a driving adapter: commands translate flags and arguments into
// calls on the driving ports and print the results.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
	"github.com/inkwell-labs/paperchat/internal/logger"
)

// version is the CLI version, overridable at link time.
var version = "0.1.0"

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

// Injected services. The composition root calls SetServices before Execute.
var (
	registryService driving.RegistryService
	chatService     driving.ChatService
	settingsService driving.SettingsService
)

// Services aggregates everything the command tree needs.
type Services struct {
	// Registry owns documents, selection and the processing method.
	Registry driving.RegistryService

	// Chat drives the ask/response cycle.
	Chat driving.ChatService

	// Settings manages persisted configuration.
	Settings driving.SettingsService
}

// SetServices injects the core services into the command tree.
func SetServices(s *Services) {
	registryService = s.Registry
	chatService = s.Chat
	settingsService = s.Settings
}

var rootCmd = &cobra.Command{
	Use:   "paperchat",
	Short: "Chat with your PDF documents",
	Long: `paperchat is a terminal client for a PDF question-answering service.

Upload PDFs, pick a processing method, choose which documents are active,
and ask questions answered from their contents. Without a configured
backend every call is served by a built-in simulator, so the client works
as a local demo out of the box.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
