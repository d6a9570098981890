// Package chat provides the question/answer transcript view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

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

// View represents the chat view with transcript, input, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	statusbar *status.Bar

	chatService     driving.ChatService
	registryService driving.RegistryService
	ctx             context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
	registryService driving.RegistryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.NewPromptInput(s, "Ask: ", "Ask a question about your documents..."),
		statusbar:       status.NewBar(s, km),
		chatService:     chatService,
		registryService: registryService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.syncActiveCount()
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter {
		question := strings.TrimSpace(v.input.Value())
		if question == "" {
			return v, nil
		}
		if v.chatService.Busy() {
			v.statusbar.SetState(status.StateWarning)
			v.statusbar.SetMessage("Still thinking, one question at a time")
			return v, nil
		}
		if !v.registryService.HasProcessed() {
			v.statusbar.SetState(status.StateWarning)
			v.statusbar.SetMessage("Upload a document before asking questions")
			return v, nil
		}
		v.statusbar.SetState(status.StateAsking)
		v.input.SetValue("")
		return v, v.performAsk(question)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// performAsk runs the ask cycle off the UI loop.
func (v *View) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		err := v.chatService.Ask(v.ctx, question)
		return messages.AskCompleted{Err: err}
	}
}

// handleAskCompleted processes an ask outcome. The transcript already holds
// the answer or the system error message; only the status line changes.
func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	v.syncActiveCount()
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// syncActiveCount refreshes the active document count shown in the bar.
func (v *View) syncActiveCount() {
	v.statusbar.SetActiveCount(len(v.registryService.ActiveIDs()))
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Paperchat")
	sections = append(sections, header, "")

	transcript := v.renderTranscript()
	if transcript != "" {
		sections = append(sections, transcript, "")
	}

	sections = append(sections, v.input.View(), "")
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the message history.
func (v *View) renderTranscript() string {
	msgs := v.chatService.Messages()
	if len(msgs) == 0 {
		return v.styles.Muted.Render("No messages yet. Ask something about your documents.")
	}

	lines := make([]string, 0, len(msgs)*2)
	for _, m := range msgs {
		lines = append(lines, v.renderMessage(m)...)
	}

	// Keep the tail that fits above the input and status bar.
	reserved := 8
	visible := v.height - reserved
	if visible > 0 && len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	return strings.Join(lines, "\n")
}

// renderMessage renders one message with its sources.
func (v *View) renderMessage(m domain.Message) []string {
	var prefix, body string

	switch m.Sender {
	case domain.SenderUser:
		prefix = v.styles.Subtitle.Render("You: ")
		body = v.styles.Normal.Render(m.Text)
	case domain.SenderAI:
		prefix = v.styles.Title.Render("AI:  ")
		body = v.styles.Normal.Render(m.Text)
	case domain.SenderSystem:
		prefix = ""
		if m.IsError {
			body = v.styles.Error.Render(m.Text)
		} else {
			body = v.styles.Muted.Render(m.Text)
		}
	}

	lines := []string{prefix + body}
	for _, src := range m.Sources {
		ref := src.Title
		if src.Page > 0 {
			ref = fmt.Sprintf("%s (p.%d)", src.Title, src.Page)
		}
		lines = append(lines, v.styles.Muted.Render("     ↳ "+ref))
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset refocuses the input and clears transient state.
func (v *View) Reset() {
	v.input.Focus()
	v.input.SetValue("")
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	v.syncActiveCount()
}
