package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// fakeChat is a scriptable driving.ChatService.
type fakeChat struct {
	askErr   error
	asked    []string
	messages []domain.Message
}

var _ driving.ChatService = (*fakeChat)(nil)

func (f *fakeChat) Ask(_ context.Context, text string) error {
	f.asked = append(f.asked, text)
	return f.askErr
}

func (f *fakeChat) Append(msg domain.Message) { f.messages = append(f.messages, msg) }
func (f *fakeChat) Messages() []domain.Message  { return f.messages }
func (f *fakeChat) Turns() []domain.Turn        { return nil }
func (f *fakeChat) Busy() bool                  { return false }
func (f *fakeChat) Clear() { f.messages = nil }

// fakeRegistry is a static driving.RegistryService.
type fakeRegistry struct {
	docs   []domain.Document
	active []string
}

var _ driving.RegistryService = (*fakeRegistry)(nil)

func (f *fakeRegistry) Upload(context.Context, string) (string, error) { return "", nil }
func (f *fakeRegistry) Remove(context.Context, string) error           { return nil }
func (f *fakeRegistry) Refresh(context.Context) error                  { return nil }
func (f *fakeRegistry) Documents() []domain.Document                   { return f.docs }
func (f *fakeRegistry) Get(string) (*domain.Document, error) { return nil, domain.ErrNotFound }
func (f *fakeRegistry) Method() domain.ProcessingMethod                { return domain.DefaultMethod }
func (f *fakeRegistry) SetMethod(domain.ProcessingMethod) error        { return nil }
func (f *fakeRegistry) Toggle(string) {}
func (f *fakeRegistry) SelectAll() {}
func (f *fakeRegistry) ClearSelection() {}
func (f *fakeRegistry) ActiveIDs() []string                            { return f.active }
func (f *fakeRegistry) HasProcessed() bool                             { return len(f.active) > 0 }
func (f *fakeRegistry) LastWarning() string                            { return "" }

func TestPorts_Validate(t *testing.T) {
	chat := &fakeChat{}
	registry := &fakeRegistry{}

	assert.NoError(t, (&Ports{Chat: chat, Registry: registry}).Validate())
	assert.ErrorIs(t, (&Ports{Registry: registry}).Validate(), ErrMissingChatService)
	assert.ErrorIs(t, (&Ports{Chat: chat}).Validate(), ErrMissingRegistryService)
}

func TestNewServer(t *testing.T) {
	server, err := NewServer(&Ports{Chat: &fakeChat{}, Registry: &fakeRegistry{}})

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewServer_InvalidPorts(t *testing.T) {
	_, err := NewServer(&Ports{})

	assert.ErrorIs(t, err, ErrMissingChatService)
}

func TestServer_HandleAsk(t *testing.T) {
	chat := &fakeChat{
		messages: []domain.Message{
			{Sender: domain.SenderUser, Text: "what is this?"},
			{
				Sender:  domain.SenderAI,
				Text:    "An answer.",
				Sources: []domain.Source{{FileID: "f1", Title: "a.pdf", Page: 2}},
			},
		},
	}
	server, err := NewServer(&Ports{Chat: chat, Registry: &fakeRegistry{active: []string{"f1"}}})
	require.NoError(t, err)

	_, output, err := server.handleAsk(context.Background(), nil, AskInput{Question: "what is this?"})

	require.NoError(t, err)
	assert.Equal(t, []string{"what is this?"}, chat.asked)
	assert.Equal(t, "An answer.", output.Answer)
	require.Len(t, output.Sources, 1)
	assert.Equal(t, "a.pdf", output.Sources[0].Title)
	assert.Equal(t, 2, output.Sources[0].Page)
}

func TestServer_HandleAsk_Error(t *testing.T) {
	chat := &fakeChat{askErr: domain.ErrNoSelection}
	server, err := NewServer(&Ports{Chat: chat, Registry: &fakeRegistry{}})
	require.NoError(t, err)

	_, _, err = server.handleAsk(context.Background(), nil, AskInput{Question: "hi"})

	assert.ErrorIs(t, err, domain.ErrNoSelection)
}

func TestServer_HandleListDocuments(t *testing.T) {
	registry := &fakeRegistry{
		docs: []domain.Document{
			{ID: "f1", Name: "a.pdf", Status: domain.StatusProcessed, Method: domain.MethodStandard, Pages: 3},
			{ID: "f2", Name: "b.pdf", Status: domain.StatusError, Method: domain.MethodStandard},
		},
		active: []string{"f1"},
	}
	server, err := NewServer(&Ports{Chat: &fakeChat{}, Registry: registry})
	require.NoError(t, err)

	_, output, err := server.handleListDocuments(context.Background(), nil, ListDocumentsInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	require.Len(t, output.Documents, 2)
	assert.True(t, output.Documents[0].Active)
	assert.Equal(t, "processed", output.Documents[0].Status)
	assert.False(t, output.Documents[1].Active, "non-processed documents are never active")
}
