// Package simulator implements the driven.Backend port without a network.
// It produces plausible synthetic results so the client can run as a local
// demo when no backend endpoint is configured: staged upload progress,
// bounded random page counts and canned answer text.
package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
)

// DefaultTickInterval paces the staged upload progress.
const DefaultTickInterval = 100 * time.Millisecond

// maxPages bounds the synthetic page count.
const maxPages = 20

// Ensure Backend implements the interface.
var _ driven.Backend = (*Backend)(nil)

// Backend is a deterministic local simulation of the remote service.
type Backend struct {
	mu  sync.Mutex
	rng *rand.Rand

	// tick paces upload progress events.
	tick time.Duration

	// fallbackFrom, when set, makes uploads requesting that method come
	// back confirmed as standard, exercising the client's fallback path.
	fallbackFrom domain.ProcessingMethod
}

// Option configures the simulator.
type Option func(*Backend)

// WithSeed fixes the random source for reproducible runs.
func WithSeed(seed int64) Option {
	return func(b *Backend) {
		b.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTickInterval changes the pacing of upload progress events.
// Zero disables pacing entirely, which tests use.
func WithTickInterval(d time.Duration) Option {
	return func(b *Backend) {
		b.tick = d
	}
}

// WithMethodFallback makes uploads requesting the given method come back
// confirmed as standard, the way a backend with the method unavailable
// would answer.
func WithMethodFallback(m domain.ProcessingMethod) Option {
	return func(b *Backend) {
		b.fallbackFrom = m
	}
}

// New creates a simulator backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		tick: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Upload consumes the reader and emits staged progress ticks 10..100,
// then returns a synthetic result.
func (b *Backend) Upload(ctx context.Context, name string, size int64, r io.Reader, method domain.ProcessingMethod, onProgress driven.ProgressFunc) (*driven.UploadResult, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrUploadFailed, name, err)
	}

	for progress := 10; progress <= 100; progress += 10 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, ctx.Err())
		case <-time.After(b.tick):
		}
		if onProgress != nil {
			onProgress(progress)
		}
	}

	confirmed := method
	if b.fallbackFrom != "" && method == b.fallbackFrom {
		confirmed = domain.MethodStandard
	}

	b.mu.Lock()
	pages := b.rng.Intn(maxPages) + 1
	b.mu.Unlock()

	return &driven.UploadResult{
		FileID:   "sim-" + uuid.NewString(),
		Filename: name,
		Size:     size,
		Data: driven.UploadData{
			Pages:     pages,
			Processed: true,
			Method:    confirmed,
		},
	}, nil
}

// ListFiles returns the empty set; the simulator persists nothing.
func (b *Backend) ListFiles(_ context.Context) ([]driven.FileSummary, error) {
	return []driven.FileSummary{}, nil
}

// Delete always succeeds.
func (b *Backend) Delete(_ context.Context, id string) (*driven.DeleteResult, error) {
	return &driven.DeleteResult{
		Success: true,
		FileID:  id,
		Message: "file successfully deleted",
	}, nil
}

// Query returns canned answer text referencing the question, with one
// synthetic source per active document.
func (b *Backend) Query(_ context.Context, message string, fileIDs []string) (*driven.QueryResult, error) {
	if len(fileIDs) == 0 {
		return nil, fmt.Errorf("%w: no documents selected", domain.ErrQueryFailed)
	}

	sources := make([]domain.Source, 0, len(fileIDs))
	b.mu.Lock()
	for _, id := range fileIDs {
		title := id
		if len(title) > 6 {
			title = title[:6]
		}
		sources = append(sources, domain.Source{
			FileID: id,
			Title:  "Document " + title,
			Page:   b.rng.Intn(10) + 1,
		})
	}
	b.mu.Unlock()

	text := fmt.Sprintf(
		"This is a simulated response to: %q. I've analyzed the contents of %d document(s) and found relevant information that might help answer your question.",
		message, len(fileIDs),
	)

	return &driven.QueryResult{
		Text:    text,
		Sources: sources,
	}, nil
}
