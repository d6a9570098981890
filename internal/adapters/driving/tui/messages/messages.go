// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the question/answer transcript view.
	ViewChat
	// ViewDocuments is the document registry and selection view.
	ViewDocuments
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded signals a registry refresh completed. The registry itself
// holds the records; the message only reports the outcome.
type DocumentsLoaded struct {
	Err error
}

// UploadFinished signals an upload resolved, successfully or not.
type UploadFinished struct {
	ID   string
	Path string
	Err  error
}

// UploadTick drives re-renders while uploads are in flight so that
// registry-side progress updates become visible.
type UploadTick struct {
	At time.Time
}

// DocumentRemoved signals a document removal completed.
type DocumentRemoved struct {
	ID  string
	Err error
}

// MethodChanged signals the processing method was switched.
type MethodChanged struct {
	Method domain.ProcessingMethod
	Err    error
}

// AskCompleted signals an ask cycle resolved. The transcript lives in the
// chat service; the message only reports the outcome.
type AskCompleted struct {
	Err error
}
