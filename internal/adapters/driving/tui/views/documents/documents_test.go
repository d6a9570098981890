package documents

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/messages"
	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// fakeRegistry records calls and serves a fixed listing.
type fakeRegistry struct {
	docs    []domain.Document
	active  []string
	method  domain.ProcessingMethod
	warning string

	uploads  []string
	removed  []string
	toggled  []string
	refreshs int
}

var _ driving.RegistryService = (*fakeRegistry)(nil)

func (f *fakeRegistry) Upload(_ context.Context, path string) (string, error) {
	f.uploads = append(f.uploads, path)
	return "f-new", nil
}

func (f *fakeRegistry) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeRegistry) Refresh(context.Context) error {
	f.refreshs++
	return nil
}

func (f *fakeRegistry) Documents() []domain.Document { return f.docs }

func (f *fakeRegistry) Get(string) (*domain.Document, error) { return nil, domain.ErrNotFound }

func (f *fakeRegistry) Method() domain.ProcessingMethod {
	if f.method == "" {
		return domain.DefaultMethod
	}
	return f.method
}

func (f *fakeRegistry) SetMethod(m domain.ProcessingMethod) error {
	f.method = m
	return nil
}

func (f *fakeRegistry) Toggle(id string) { f.toggled = append(f.toggled, id) }
func (f *fakeRegistry) SelectAll() {}
func (f *fakeRegistry) ClearSelection() { f.active = nil }
func (f *fakeRegistry) ActiveIDs() []string { return f.active }
func (f *fakeRegistry) HasProcessed() bool  { return len(f.active) > 0 }

func (f *fakeRegistry) LastWarning() string {
	w := f.warning
	f.warning = ""
	return w
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func twoDocs() []domain.Document {
	return []domain.Document{
		{ID: "f1", Name: "a.pdf", Status: domain.StatusProcessed, Pages: 3},
		{ID: "f2", Name: "b.pdf", Status: domain.StatusProcessed, Pages: 5},
	}
}

func TestView_Init_Refreshes(t *testing.T) {
	registry := &fakeRegistry{}
	view := NewView(nil, nil, registry)

	cmd := view.Init()

	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Equal(t, 1, registry.refreshs)
}

func TestView_ToggleHighlighted(t *testing.T) {
	registry := &fakeRegistry{docs: twoDocs(), active: []string{"f1", "f2"}}
	view := NewView(nil, nil, registry)
	view.SetDimensions(80, 24)

	view, _ = view.Update(keyMsg("j"))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, []string{"f2"}, registry.toggled)
	_ = view
}

func TestView_DeleteHighlighted(t *testing.T) {
	registry := &fakeRegistry{docs: twoDocs()}
	view := NewView(nil, nil, registry)
	view.SetDimensions(80, 24)

	_, cmd := view.Update(keyMsg("d"))

	require.NotNil(t, cmd)
	removed, ok := cmd().(messages.DocumentRemoved)
	require.True(t, ok)
	assert.NoError(t, removed.Err)
	assert.Equal(t, "f1", removed.ID)
	assert.Equal(t, []string{"f1"}, registry.removed)
}

func TestView_UploadFlow(t *testing.T) {
	registry := &fakeRegistry{}
	view := NewView(nil, nil, registry)
	view.SetDimensions(80, 24)

	view, _ = view.Update(keyMsg("u"))
	for _, r := range "/tmp/report.pdf" {
		view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Empty(t, registry.uploads, "the upload runs only when the command does")

	// Run the batched commands and collect the upload outcome.
	found := false
	for _, c := range collectCmds(cmd) {
		if finished, ok := c().(messages.UploadFinished); ok {
			found = true
			assert.NoError(t, finished.Err)
			assert.Equal(t, "/tmp/report.pdf", finished.Path)
		}
	}
	require.True(t, found, "expected an upload command")
	assert.Equal(t, []string{"/tmp/report.pdf"}, registry.uploads)
	_ = view
}

// collectCmds flattens a possibly batched command.
func collectCmds(cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		out := make([]tea.Cmd, 0, len(batch))
		for _, c := range batch {
			out = append(out, collectCmds(c)...)
		}
		return out
	}
	return []tea.Cmd{func() tea.Msg { return msg }}
}

func TestView_UploadPromptEscCancels(t *testing.T) {
	registry := &fakeRegistry{}
	view := NewView(nil, nil, registry)
	view.SetDimensions(80, 24)

	view, _ = view.Update(keyMsg("u"))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// Esc in list mode goes back to the menu instead.
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
	assert.Empty(t, registry.uploads)
}

func TestView_CycleMethodSkipsUnavailable(t *testing.T) {
	registry := &fakeRegistry{method: domain.MethodStandard}
	view := NewView(nil, nil, registry)
	view.SetDimensions(80, 24)

	view, _ = view.Update(keyMsg("m"))
	assert.Equal(t, domain.MethodLayout, registry.method, "semantic is skipped while unavailable")

	view, _ = view.Update(keyMsg("m"))
	assert.Equal(t, domain.MethodStandard, registry.method)
	_ = view
}

func TestView_RendersStatuses(t *testing.T) {
	registry := &fakeRegistry{
		docs: []domain.Document{
			{ID: "f1", Name: "done.pdf", Status: domain.StatusProcessed, Pages: 3},
			{ID: "t1", Name: "moving.pdf", Status: domain.StatusUploading, Progress: 42},
			{ID: "t2", Name: "broken.pdf", Status: domain.StatusError, Err: "connection refused"},
		},
		active: []string{"f1"},
	}
	view := NewView(nil, nil, registry)
	view.SetDimensions(120, 24)

	rendered := view.View()

	assert.Contains(t, rendered, "done.pdf")
	assert.Contains(t, rendered, "3 pages")
	assert.Contains(t, rendered, "uploading 42%")
	assert.Contains(t, rendered, "error: connection refused")
	assert.Contains(t, rendered, "[x]")
	assert.Contains(t, rendered, "[ ]")
}

func TestView_RendersEmptyState(t *testing.T) {
	view := NewView(nil, nil, &fakeRegistry{})
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "No documents")
}
