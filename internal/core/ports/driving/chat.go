package driving

import (
	"context"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

// ChatService drives the ask/response cycle and owns the transcript.
// Turns are strictly sequential: a new ask is rejected while one is in
// flight, so request/response pairs never interleave.
type ChatService interface {
	// Ask sends a question grounded in the active selection. The user
	// message is appended before the network call; the answer or a system
	// error message is appended when the call resolves. Guard failures
	// (empty text, busy, empty selection) perform no transport call and
	// leave state unchanged.
	Ask(ctx context.Context, text string) error

	// Append injects a message outside the ask cycle (banners, notices).
	// ID and timestamp are stamped automatically.
	Append(msg domain.Message)

	// Messages returns the transcript in insertion order.
	Messages() []domain.Message

	// Turns returns the conversational history in insertion order.
	Turns() []domain.Turn

	// Busy reports whether an ask is in flight.
	Busy() bool

	// Clear discards all messages and turn history.
	Clear()
}
