// Package mcp provides an MCP (Model Context Protocol) server adapter for
// paperchat. It lets AI assistant hosts ask questions against the active
// document selection and inspect the registry.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// ErrMissingRegistryService is returned when the registry service is not provided.
var ErrMissingRegistryService = errors.New("mcp: registry service is required")
