// Package tui provides an interactive terminal user interface for paperchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Registry owns documents, the active selection, and the method.
	Registry driving.RegistryService

	// Chat drives the ask/response cycle and owns the transcript.
	Chat driving.ChatService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	registry driving.RegistryService,
	chat driving.ChatService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Registry: registry,
		Chat:     chat,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Registry == nil {
		return ErrMissingRegistryService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
