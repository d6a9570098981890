package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
	"github.com/inkwell-labs/paperchat/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.ChatService = (*Session)(nil)

// noAnswerText is appended when the backend returns neither text nor message.
const noAnswerText = "Sorry, I couldn't find an answer in your documents."

// Session drives the ask/response cycle and owns the transcript and the
// conversational turn history. Turns are strictly sequential: an ask is
// rejected while another is in flight.
type Session struct {
	mu       sync.Mutex
	backend  driven.Backend
	registry driving.RegistryService

	messages []domain.Message
	turns    []domain.Turn
	busy     bool
	lastID   int64
}

// NewSession creates a chat session consuming the registry's active selection.
func NewSession(backend driven.Backend, registry driving.RegistryService) *Session {
	return &Session{
		backend:  backend,
		registry: registry,
	}
}

// Ask sends a question grounded in the active selection.
//
// The user message and user turn are appended optimistically before the
// network call. On success an AI message and an assistant turn follow; on
// failure a system error message follows and the turn history is left
// without an assistant entry, so a failed exchange does not count as
// conversation. Guard failures perform no transport call and leave state
// unchanged.
func (s *Session) Ask(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	active := s.registry.ActiveIDs()
	if len(active) == 0 {
		s.mu.Unlock()
		return domain.ErrNoSelection
	}

	s.busy = true
	s.appendLocked(domain.Message{Sender: domain.SenderUser, Text: text})
	s.turns = append(s.turns, domain.Turn{Role: domain.RoleUser, Content: text})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	result, err := s.backend.Query(ctx, text, active)
	if err != nil {
		logger.Warn("chat query failed: %v", err)
		s.mu.Lock()
		s.appendLocked(domain.Message{
			Sender:  domain.SenderSystem,
			Text:    fmt.Sprintf("Error: %v", err),
			IsError: true,
		})
		s.mu.Unlock()
		return fmt.Errorf("asking %q: %w", text, err)
	}

	answer := result.Text
	if answer == "" {
		answer = result.Message
	}
	if answer == "" {
		answer = noAnswerText
	}

	s.mu.Lock()
	s.appendLocked(domain.Message{
		Sender:   domain.SenderAI,
		Text:     answer,
		Sources:  result.Sources,
		Metadata: result.Metadata,
	})
	s.turns = append(s.turns, domain.Turn{Role: domain.RoleAssistant, Content: answer})
	s.mu.Unlock()
	return nil
}

// Append injects a message outside the ask cycle, stamping id and timestamp.
func (s *Session) Append(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(msg)
}

// Messages returns the transcript in insertion order.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Turns returns the conversational history in insertion order.
func (s *Session) Turns() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Busy reports whether an ask is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Clear discards all messages and turn history.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.turns = nil
}

// appendLocked stamps and appends a message. Caller must hold s.mu.
func (s *Session) appendLocked(msg domain.Message) {
	msg.ID = s.nextIDLocked()
	msg.Timestamp = time.Now()
	s.messages = append(s.messages, msg)
}

// nextIDLocked returns a time-based id, bumped past the previous one so ids
// stay distinguishable even within a single clock tick.
// Caller must hold s.mu.
func (s *Session) nextIDLocked() string {
	now := time.Now().UnixNano()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	return strconv.FormatInt(now, 10)
}
