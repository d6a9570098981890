// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/keymap"
	"github.com/inkwell-labs/paperchat/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateAsking    State = "asking"
	StateUploading State = "uploading"
	StateError     State = "error"
	StateWarning   State = "warning"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	activeCount int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:      s,
		keymap:      km,
		state:       StateReady,
		message:     "",
		activeCount: 0,
		width:       80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateAsking:
		return s.styles.Muted.Render("Thinking...")
	case StateUploading:
		if s.message != "" {
			return s.styles.Muted.Render("Uploading " + s.message)
		}
		return s.styles.Muted.Render("Uploading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateWarning:
		return s.styles.Warning.Render(s.message)
	case StateReady:
		if s.activeCount > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d active", s.activeCount))
		}
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", help.Key, help.Desc))
	}

	return s.styles.Help.Render(strings.Join(hints, "  "))
}

// SetState sets the display state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current display state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the status message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current status message.
func (s *Bar) Message() string {
	return s.message
}

// SetActiveCount sets the number of active documents for display.
func (s *Bar) SetActiveCount(count int) {
	s.activeCount = count
}

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
