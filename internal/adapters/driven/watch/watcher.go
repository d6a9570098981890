// Package watch auto-uploads PDFs dropped into a watched directory.
// It is the terminal analogue of a browser drop zone: point it at a folder
// and every PDF that lands there is registered and uploaded.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
	"github.com/inkwell-labs/paperchat/internal/logger"
)

// settleDelay gives the writing process time to finish before the upload
// starts; editors and downloaders create files and fill them afterwards.
const settleDelay = 500 * time.Millisecond

// Watcher uploads PDFs that appear in a directory.
type Watcher struct {
	registry driving.RegistryService
	dir      string
}

// NewWatcher creates a watcher feeding the given registry.
func NewWatcher(registry driving.RegistryService, dir string) *Watcher {
	return &Watcher{registry: registry, dir: dir}
}

// Run watches the directory until the context is cancelled.
// Upload failures are logged and reflected on the registry record; they do
// not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s for PDFs", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			w.handle(ctx, event.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handle uploads one newly arrived file.
func (w *Watcher) handle(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(settleDelay):
	}

	logger.Debug("auto-uploading %s", path)
	if _, err := w.registry.Upload(ctx, path); err != nil {
		logger.Warn("auto-upload of %s failed: %v", path, err)
	}
}
