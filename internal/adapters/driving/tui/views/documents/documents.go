// Package documents provides the document registry view for the TUI.
// It lists uploads with live progress, drives selection toggling, and hosts
// the upload path prompt.
package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/components/input"
	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/components/status"
	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/keymap"
	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/messages"
	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/styles"
	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// tickInterval drives re-renders while uploads are in flight.
const tickInterval = 200 * time.Millisecond

// mode distinguishes list navigation from the upload path prompt.
type mode int

const (
	modeList mode = iota
	modeUpload
)

// View represents the documents view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	pathInput *input.PromptInput
	statusbar *status.Bar

	registryService driving.RegistryService
	ctx             context.Context

	mode    mode
	cursor  int
	width   int
	height  int
	ready   bool
	ticking bool
	err     error
}

// NewView creates a new documents view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	registryService driving.RegistryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	pi := input.NewPromptInput(s, "Upload: ", "/path/to/document.pdf")
	pi.Blur()

	return &View{
		styles:          s,
		keymap:          km,
		pathInput:       pi,
		statusbar:       status.NewBar(s, km),
		registryService: registryService,
		ctx:             context.Background(),
		mode:            modeList,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and reloads the registry.
func (v *View) Init() tea.Cmd {
	return v.performRefresh()
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.clampCursor()
		v.setReady()
		return v, nil

	case messages.UploadFinished:
		return v, v.handleUploadFinished(msg)

	case messages.UploadTick:
		return v, v.handleUploadTick()

	case messages.DocumentRemoved:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.clampCursor()
		v.surfaceWarning()
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.mode == modeUpload {
		var cmd tea.Cmd
		v.pathInput, cmd = v.pathInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // flat key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.mode == modeUpload {
		return v.handleUploadKey(msg)
	}

	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	docs := v.registryService.Documents()

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case keymap.Matches(msg.String(), v.keymap.Down):
		if v.cursor < len(docs)-1 {
			v.cursor++
		}

	case keymap.Matches(msg.String(), v.keymap.Toggle):
		if doc := v.highlighted(docs); doc != nil {
			v.registryService.Toggle(doc.ID)
			v.setReady()
		}

	case keymap.Matches(msg.String(), v.keymap.Delete):
		if doc := v.highlighted(docs); doc != nil {
			return v, v.performRemove(doc.ID)
		}

	case keymap.Matches(msg.String(), v.keymap.SelectAll):
		v.registryService.SelectAll()
		v.setReady()

	case keymap.Matches(msg.String(), v.keymap.ClearSelection):
		v.registryService.ClearSelection()
		v.setReady()

	case keymap.Matches(msg.String(), v.keymap.Method):
		v.cycleMethod()

	case keymap.Matches(msg.String(), v.keymap.Refresh):
		return v, v.performRefresh()

	case keymap.Matches(msg.String(), v.keymap.Upload):
		v.mode = modeUpload
		v.pathInput.SetValue("")
		return v, v.pathInput.Focus()
	}

	return v, nil
}

// handleUploadKey processes keyboard input while the path prompt is open.
func (v *View) handleUploadKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = modeList
		v.pathInput.Blur()
		return v, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(v.pathInput.Value())
		if path == "" {
			return v, nil
		}
		v.mode = modeList
		v.pathInput.Blur()
		v.statusbar.SetState(status.StateUploading)
		v.statusbar.SetMessage(path)
		// Start ticking so registry-side progress becomes visible.
		return v, tea.Batch(v.performUpload(path), v.scheduleTick())

	default:
		var cmd tea.Cmd
		v.pathInput, cmd = v.pathInput.Update(msg)
		return v, cmd
	}
}

// handleUploadFinished processes an upload outcome.
func (v *View) handleUploadFinished(msg messages.UploadFinished) tea.Cmd {
	if msg.Err != nil {
		// The record stays visible with status error; the bar names the file.
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(fmt.Sprintf("%s: %v", msg.Path, msg.Err))
		return nil
	}
	v.setReady()
	return nil
}

// handleUploadTick re-arms the tick while any upload is in flight.
func (v *View) handleUploadTick() tea.Cmd {
	v.ticking = false
	for _, doc := range v.registryService.Documents() {
		if doc.Status == domain.StatusUploading {
			return v.scheduleTick()
		}
	}
	return nil
}

// scheduleTick arms a single pending tick.
func (v *View) scheduleTick() tea.Cmd {
	if v.ticking {
		return nil
	}
	v.ticking = true
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return messages.UploadTick{At: t}
	})
}

// performRefresh reloads the registry from the server.
func (v *View) performRefresh() tea.Cmd {
	return func() tea.Msg {
		err := v.registryService.Refresh(v.ctx)
		return messages.DocumentsLoaded{Err: err}
	}
}

// performUpload registers and streams one PDF.
func (v *View) performUpload(path string) tea.Cmd {
	return func() tea.Msg {
		id, err := v.registryService.Upload(v.ctx, path)
		return messages.UploadFinished{ID: id, Path: path, Err: err}
	}
}

// performRemove deletes one document.
func (v *View) performRemove(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.registryService.Remove(v.ctx, id)
		return messages.DocumentRemoved{ID: id, Err: err}
	}
}

// cycleMethod advances the processing method to the next available one.
func (v *View) cycleMethod() {
	methods := domain.Methods()
	current := v.registryService.Method()

	idx := 0
	for i, m := range methods {
		if m == current {
			idx = i
			break
		}
	}

	for step := 1; step <= len(methods); step++ {
		candidate := methods[(idx+step)%len(methods)]
		if !candidate.Available() {
			continue
		}
		if err := v.registryService.SetMethod(candidate); err != nil {
			v.setError(err)
			return
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		return
	}
}

// highlighted returns the record under the cursor.
func (v *View) highlighted(docs []domain.Document) *domain.Document {
	if v.cursor < 0 || v.cursor >= len(docs) {
		return nil
	}
	return &docs[v.cursor]
}

// clampCursor keeps the cursor inside the current listing.
func (v *View) clampCursor() {
	n := len(v.registryService.Documents())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// surfaceWarning promotes a pending registry warning to the status bar.
func (v *View) surfaceWarning() {
	if warning := v.registryService.LastWarning(); warning != "" {
		v.statusbar.SetState(status.StateWarning)
		v.statusbar.SetMessage(warning)
		return
	}
	v.setReady()
}

// setError puts the view into an error state.
func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// setReady clears transient status and refreshes the active count.
func (v *View) setReady() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	v.statusbar.SetActiveCount(len(v.registryService.ActiveIDs()))
}

// View renders the documents view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Documents")
	sections = append(sections, header)

	method := v.styles.Muted.Render(
		fmt.Sprintf("method: %s  ·  %d active", v.registryService.Method(), len(v.registryService.ActiveIDs())),
	)
	sections = append(sections, method, "")

	sections = append(sections, v.renderListing(), "")

	if v.mode == modeUpload {
		sections = append(sections, v.pathInput.View(), "")
	}

	hints := v.styles.Help.Render(
		"[space] toggle  [u] upload  [d] delete  [a] all  [c] clear  [m] method  [r] refresh  [esc] back",
	)
	sections = append(sections, hints)
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderListing renders the document rows.
func (v *View) renderListing() string {
	docs := v.registryService.Documents()
	if len(docs) == 0 {
		return v.styles.Muted.Render("No documents. Press u to upload a PDF.")
	}

	active := make(map[string]bool)
	for _, id := range v.registryService.ActiveIDs() {
		active[id] = true
	}

	rows := make([]string, 0, len(docs))
	for i, doc := range docs {
		rows = append(rows, v.renderRow(i, doc, active[doc.ID]))
	}
	return strings.Join(rows, "\n")
}

// renderRow renders one document row.
func (v *View) renderRow(i int, doc domain.Document, isActive bool) string {
	cursor := "  "
	if i == v.cursor {
		cursor = "> "
	}

	checkbox := "[ ] "
	if isActive {
		checkbox = "[x] "
	}

	name := doc.Name
	if len(name) > 40 {
		name = name[:37] + "..."
	}
	line := fmt.Sprintf("%s%s%-40s  %s", cursor, checkbox, name, v.renderStatus(doc))

	if i == v.cursor {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// renderStatus renders the status column for one record.
func (v *View) renderStatus(doc domain.Document) string {
	switch doc.Status {
	case domain.StatusUploading:
		return v.styles.Warning.Render(fmt.Sprintf("uploading %d%%", doc.Progress))
	case domain.StatusProcessed:
		if doc.Pages > 0 {
			return v.styles.Success.Render(fmt.Sprintf("processed · %d pages", doc.Pages))
		}
		return v.styles.Success.Render("processed")
	case domain.StatusError:
		if doc.Err != "" {
			return v.styles.Error.Render("error: " + doc.Err)
		}
		return v.styles.Error.Render("error")
	}
	return v.styles.Muted.Render(string(doc.Status))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.pathInput.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Cursor returns the current cursor position.
func (v *View) Cursor() int {
	return v.cursor
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to list mode with a clean status line.
func (v *View) Reset() {
	v.mode = modeList
	v.pathInput.Blur()
	v.pathInput.SetValue("")
	v.setReady()
}
