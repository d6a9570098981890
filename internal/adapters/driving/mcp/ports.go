package mcp

import (
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat drives the ask/response cycle.
	Chat driving.ChatService

	// Registry owns documents and the active selection.
	Registry driving.RegistryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Registry == nil {
		return ErrMissingRegistryService
	}
	return nil
}
