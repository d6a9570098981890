package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
)

// recordingRegistry captures upload paths; everything else is inert.
type recordingRegistry struct {
	uploads chan string
}

var _ driving.RegistryService = (*recordingRegistry)(nil)

func newRecordingRegistry() *recordingRegistry {
	return &recordingRegistry{uploads: make(chan string, 8)}
}

func (r *recordingRegistry) Upload(_ context.Context, path string) (string, error) {
	r.uploads <- path
	return "f1", nil
}

func (r *recordingRegistry) Remove(context.Context, string) error        { return nil }
func (r *recordingRegistry) Refresh(context.Context) error               { return nil }
func (r *recordingRegistry) Documents() []domain.Document                { return nil }
func (r *recordingRegistry) Get(string) (*domain.Document, error) { return nil, domain.ErrNotFound }
func (r *recordingRegistry) Method() domain.ProcessingMethod             { return domain.DefaultMethod }
func (r *recordingRegistry) SetMethod(domain.ProcessingMethod) error     { return nil }
func (r *recordingRegistry) Toggle(string) {}
func (r *recordingRegistry) SelectAll() {}
func (r *recordingRegistry) ClearSelection() {}
func (r *recordingRegistry) ActiveIDs() []string                         { return nil }
func (r *recordingRegistry) HasProcessed() bool                          { return false }
func (r *recordingRegistry) LastWarning() string                         { return "" }

func TestWatcher_UploadsNewPDFs(t *testing.T) {
	dir := t.TempDir()
	registry := newRecordingRegistry()
	watcher := NewWatcher(registry, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	pdfPath := filepath.Join(dir, "dropped.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0600))

	select {
	case got := <-registry.uploads:
		assert.Equal(t, pdfPath, got)
	case <-time.After(5 * time.Second):
		t.Fatal("expected an upload for the dropped PDF")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_IgnoresNonPDFs(t *testing.T) {
	dir := t.TempDir()
	registry := newRecordingRegistry()
	watcher := NewWatcher(registry, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watcher.Run(ctx) //nolint:errcheck

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0600))

	select {
	case path := <-registry.uploads:
		t.Fatalf("unexpected upload of %s", path)
	case <-time.After(time.Second):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	registry := newRecordingRegistry()
	watcher := NewWatcher(registry, filepath.Join(t.TempDir(), "absent"))

	err := watcher.Run(context.Background())

	assert.Error(t, err)
}
