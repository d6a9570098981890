package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
)

// newSessionWithDocs builds a session over a registry pre-loaded with
// processed documents f1 and f2.
func newSessionWithDocs(t *testing.T, backend *fakeBackend) (*Session, *Registry) {
	t.Helper()
	if backend.listFn == nil {
		backend.listFn = func(context.Context) ([]driven.FileSummary, error) {
			return []driven.FileSummary{{ID: "f1"}, {ID: "f2"}}, nil
		}
	}
	reg := NewRegistry(backend, nil, nil)
	require.NoError(t, reg.Refresh(context.Background()))
	return NewSession(backend, reg), reg
}

func TestSession_Ask_Success(t *testing.T) {
	var gotIDs []string
	backend := &fakeBackend{
		queryFn: func(_ context.Context, message string, fileIDs []string) (*driven.QueryResult, error) {
			gotIDs = fileIDs
			assert.Equal(t, "what is this about?", message)
			return &driven.QueryResult{
				Text:    "It is about tests.",
				Sources: []domain.Source{{FileID: "f1", Title: "a.pdf", Page: 2}},
			}, nil
		},
	}
	session, _ := newSessionWithDocs(t, backend)

	err := session.Ask(context.Background(), "  what is this about?  ")

	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, gotIDs, "the query carries the active selection")

	msgs := session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.SenderUser, msgs[0].Sender)
	assert.Equal(t, "what is this about?", msgs[0].Text, "the question is trimmed before use")
	assert.Equal(t, domain.SenderAI, msgs[1].Sender)
	assert.Equal(t, "It is about tests.", msgs[1].Text)
	require.Len(t, msgs[1].Sources, 1)
	assert.Equal(t, "a.pdf", msgs[1].Sources[0].Title)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.False(t, session.Busy())
}

func TestSession_Ask_MessageFieldFallback(t *testing.T) {
	backend := &fakeBackend{
		queryFn: func(context.Context, string, []string) (*driven.QueryResult, error) {
			return &driven.QueryResult{Message: "from the message field"}, nil
		},
	}
	session, _ := newSessionWithDocs(t, backend)

	require.NoError(t, session.Ask(context.Background(), "hi"))

	msgs := session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "from the message field", msgs[1].Text)
}

func TestSession_Ask_EmptyAnswerUsesCannedText(t *testing.T) {
	backend := &fakeBackend{
		queryFn: func(context.Context, string, []string) (*driven.QueryResult, error) {
			return &driven.QueryResult{}, nil
		},
	}
	session, _ := newSessionWithDocs(t, backend)

	require.NoError(t, session.Ask(context.Background(), "hi"))

	msgs := session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Sorry, I couldn't find an answer in your documents.", msgs[1].Text)
}

func TestSession_Ask_EmptyMessage(t *testing.T) {
	session, _ := newSessionWithDocs(t, &fakeBackend{})

	err := session.Ask(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, session.Messages(), "guard failures leave the transcript unchanged")
	assert.Empty(t, session.Turns())
}

func TestSession_Ask_NoSelection(t *testing.T) {
	session, reg := newSessionWithDocs(t, &fakeBackend{})
	reg.ClearSelection()

	err := session.Ask(context.Background(), "hi")

	assert.ErrorIs(t, err, domain.ErrNoSelection)
	assert.Empty(t, session.Messages())
}

func TestSession_Ask_QueryFailure(t *testing.T) {
	backend := &fakeBackend{
		queryFn: func(context.Context, string, []string) (*driven.QueryResult, error) {
			return nil, errors.New("upstream down")
		},
	}
	session, _ := newSessionWithDocs(t, backend)

	err := session.Ask(context.Background(), "hi")

	require.Error(t, err)

	msgs := session.Messages()
	require.Len(t, msgs, 2, "the user message and a system error message remain")
	assert.Equal(t, domain.SenderSystem, msgs[1].Sender)
	assert.True(t, msgs[1].IsError)
	assert.Contains(t, msgs[1].Text, "upstream down")

	turns := session.Turns()
	require.Len(t, turns, 1, "a failed exchange leaves no assistant turn")
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.False(t, session.Busy(), "the session is usable again after a failure")
}

func TestSession_Ask_RejectsConcurrentAsk(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	backend := &fakeBackend{
		queryFn: func(context.Context, string, []string) (*driven.QueryResult, error) {
			close(started)
			<-release
			return &driven.QueryResult{Text: "done"}, nil
		},
	}
	session, _ := newSessionWithDocs(t, backend)

	errc := make(chan error, 1)
	go func() {
		errc <- session.Ask(context.Background(), "first")
	}()

	<-started
	assert.True(t, session.Busy())

	err := session.Ask(context.Background(), "second")
	assert.ErrorIs(t, err, domain.ErrBusy)

	close(release)
	require.NoError(t, <-errc)
	assert.False(t, session.Busy())

	msgs := session.Messages()
	require.Len(t, msgs, 2, "the rejected ask must not touch the transcript")
	assert.Equal(t, "first", msgs[0].Text)
}

func TestSession_Append_StampsIDAndTimestamp(t *testing.T) {
	session := NewSession(&fakeBackend{}, NewRegistry(&fakeBackend{}, nil, nil))

	session.Append(domain.Message{Sender: domain.SenderSystem, Text: "welcome"})
	session.Append(domain.Message{Sender: domain.SenderSystem, Text: "notice"})

	msgs := session.Messages()
	require.Len(t, msgs, 2)
	assert.NotEmpty(t, msgs[0].ID)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID, "message ids are unique")
	assert.WithinDuration(t, time.Now(), msgs[0].Timestamp, time.Minute)
}

func TestSession_Clear(t *testing.T) {
	session, _ := newSessionWithDocs(t, &fakeBackend{})
	require.NoError(t, session.Ask(context.Background(), "hi"))
	require.NotEmpty(t, session.Messages())

	session.Clear()

	assert.Empty(t, session.Messages())
	assert.Empty(t, session.Turns())
}
