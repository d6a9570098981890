package domain

import "time"

// Sender identifies who authored a chat message.
type Sender string

// Message senders.
const (
	// SenderUser is a message typed by the user.
	SenderUser Sender = "user"

	// SenderAI is an answer produced by the backend.
	SenderAI Sender = "ai"

	// SenderSystem is a client-authored message (errors, banners).
	SenderSystem Sender = "system"
)

// String returns the string representation.
func (s Sender) String() string {
	return string(s)
}

// Source points at the material an answer was grounded in.
type Source struct {
	// FileID is the backing document id, when known.
	FileID string

	// Title is the human-readable source label.
	Title string

	// Page is the 1-based page number, zero when not reported.
	Page int
}

// Message is one entry in the UI-facing chat transcript.
// The transcript is append-only; messages are never mutated or removed
// except by a full-session clear.
type Message struct {
	// ID is a time-based identifier, monotonically distinguishable so list
	// rendering stays stable.
	ID string

	// Sender identifies the author.
	Sender Sender

	// Text is the message body.
	Text string

	// Timestamp is when the message was appended.
	Timestamp time.Time

	// Sources lists the documents the answer was grounded in. Only set on
	// AI messages, and only when the backend reports them.
	Sources []Source

	// Metadata carries backend-reported extras verbatim.
	Metadata map[string]any

	// IsError marks system messages that report a failure.
	IsError bool
}

// Role tags a turn in the conversational history.
type Role string

// Turn roles.
const (
	// RoleUser is a question from the user.
	RoleUser Role = "user"

	// RoleAssistant is an answer from the backend.
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversational context sent to the backend.
// The turn history grows in lockstep with user/AI message pairs and is
// independent of system and error messages.
type Turn struct {
	// Role tags the speaker.
	Role Role

	// Content is the turn text.
	Content string
}
