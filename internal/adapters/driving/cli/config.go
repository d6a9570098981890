package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets one of: endpoint, mode, method, watch-dir.

  endpoint   backend base URL, e.g. http://localhost:5000/api
  mode       auto, http or simulator
  method     standard, semantic or layout
  watch-dir  folder for the watch command`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	cmd.Printf("endpoint:  %s\n", s.Endpoint)
	cmd.Printf("mode:      %s\n", s.Mode)
	cmd.Printf("method:    %s\n", s.Method)
	if s.WatchDir != "" {
		cmd.Printf("watch-dir: %s\n", s.WatchDir)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "endpoint":
		s.Endpoint = value
	case "mode":
		s.Mode = driving.BackendMode(value)
	case "method":
		m := domain.ProcessingMethod(value)
		if m.IsValid() && !m.Available() {
			return fmt.Errorf("%w: %s", domain.ErrMethodUnavailable, m)
		}
		s.Method = m
	case "watch-dir":
		s.WatchDir = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}

	if err := settingsService.Save(s); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}
