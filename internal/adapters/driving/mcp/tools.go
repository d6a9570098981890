package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the active documents"`
}

// SourceOutput represents one grounding source of an answer.
type SourceOutput struct {
	FileID string `json:"file_id,omitempty"`
	Title  string `json:"title"`
	Page   int    `json:"page,omitempty"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// DocumentOutput represents one registered document.
type DocumentOutput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Method string `json:"method"`
	Pages  int    `json:"pages,omitempty"`
	Active bool   `json:"active"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered from the active PDF documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the PDF documents known to the client",
	}, s.handleListDocuments)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if err := s.ports.Chat.Ask(ctx, input.Question); err != nil {
		return nil, AskOutput{}, err
	}

	messages := s.ports.Chat.Messages()
	if len(messages) == 0 {
		return nil, AskOutput{}, nil
	}

	answer := messages[len(messages)-1]
	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]SourceOutput, 0, len(answer.Sources)),
	}
	for _, src := range answer.Sources {
		output.Sources = append(output.Sources, SourceOutput{
			FileID: src.FileID,
			Title:  src.Title,
			Page:   src.Page,
		})
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs := s.ports.Registry.Documents()
	active := make(map[string]bool)
	for _, id := range s.ports.Registry.ActiveIDs() {
		active[id] = true
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, 0, len(docs)),
		Count:     len(docs),
	}
	for _, doc := range docs {
		output.Documents = append(output.Documents, DocumentOutput{
			ID:     doc.ID,
			Name:   doc.Name,
			Status: doc.Status.String(),
			Method: doc.Method.String(),
			Pages:  doc.Pages,
			Active: active[doc.ID] && doc.Status == domain.StatusProcessed,
		})
	}

	return nil, output, nil
}
