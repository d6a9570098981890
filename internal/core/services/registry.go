package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
	"github.com/inkwell-labs/paperchat/internal/logger"
)

// Ensure Registry implements the interface.
var _ driving.RegistryService = (*Registry)(nil)

// Registry owns the documents known to the client, the active selection,
// and the global processing method.
//
// Multiple uploads may be in flight at once; each completion and progress
// callback is keyed by the temporary id assigned at upload start and only
// ever touches its own record. Completion handlers check that the record
// still exists before mutating state, so a document deleted mid-flight
// stays deleted.
type Registry struct {
	mu        sync.Mutex
	backend   driven.Backend
	inspector driven.Inspector
	settings  driving.SettingsService

	docs          []domain.Document
	selection     []string
	lastProcessed []string
	method        domain.ProcessingMethod
	warning       string
}

// NewRegistry creates a registry backed by the given transport.
// inspector and settings may be nil; without an inspector files are
// uploaded without a local pre-flight, and without settings the method
// fallback is not persisted.
func NewRegistry(backend driven.Backend, inspector driven.Inspector, settings driving.SettingsService) *Registry {
	method := domain.DefaultMethod
	if settings != nil {
		if s, err := settings.Get(); err == nil && s.Method.IsValid() {
			method = s.Method
		}
	}
	return &Registry{
		backend:   backend,
		inspector: inspector,
		settings:  settings,
		method:    method,
	}
}

// Upload registers a local PDF and streams it to the backend.
func (r *Registry) Upload(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)
	size := int64(0)
	pages := 0

	if r.inspector != nil {
		info, err := r.inspector.Inspect(ctx, path)
		if err != nil {
			return "", fmt.Errorf("inspecting %s: %w", name, err)
		}
		name = info.Name
		size = info.Size
		pages = info.Pages
	} else if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	tempID := "tmp-" + uuid.NewString()

	r.mu.Lock()
	requested := r.method
	r.docs = append(r.docs, domain.Document{
		ID:         tempID,
		Name:       name,
		Size:       size,
		Status:     domain.StatusUploading,
		Progress:   0,
		Method:     requested,
		Pages:      pages,
		UploadedAt: time.Now(),
	})
	r.reconcileLocked()
	r.mu.Unlock()

	result, err := r.backend.Upload(ctx, name, size, f, requested, func(percent int) {
		r.setProgress(tempID, percent)
	})
	if err != nil {
		r.failUpload(tempID, err)
		return tempID, fmt.Errorf("uploading %s: %w", name, err)
	}

	return r.completeUpload(tempID, requested, result), nil
}

// setProgress updates one in-flight record, keyed by its temporary id.
// Deleted records are left alone.
func (r *Registry) setProgress(tempID string, percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexLocked(tempID); i >= 0 && r.docs[i].Status == domain.StatusUploading {
		if percent > r.docs[i].Progress {
			r.docs[i].Progress = percent
		}
	}
}

// completeUpload applies a successful transport result. The temporary id is
// swapped for the server id, progress forced to 100 and the method replaced
// with the server-confirmed value, which may differ when the backend fell
// back. Returns the record's final id.
func (r *Registry) completeUpload(tempID string, requested domain.ProcessingMethod, result *driven.UploadResult) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(tempID)
	if i < 0 {
		// Deleted while in flight; drop the result rather than resurrect.
		logger.Debug("upload %s completed after removal, dropping result", tempID)
		return tempID
	}

	id := tempID
	if result.FileID != "" {
		id = result.FileID
		// The same server id on another record means the server considers
		// them one document; the older record gives way.
		if j := r.indexLocked(id); j >= 0 && j != i {
			r.docs = append(r.docs[:j], r.docs[j+1:]...)
			if j < i {
				i--
			}
		}
	}

	confirmed := result.Data.Method
	if !confirmed.IsValid() {
		confirmed = requested
	}

	r.docs[i].ID = id
	r.docs[i].Status = domain.StatusProcessed
	r.docs[i].Progress = 100
	r.docs[i].Method = confirmed
	if result.Data.Pages > 0 {
		r.docs[i].Pages = result.Data.Pages
	}

	if confirmed != requested {
		// Best-effort UI guidance: the backend fell back, reflect that in
		// the selector for subsequent uploads.
		logger.Warn("processing method fell back from %s to %s", requested, confirmed)
		r.method = confirmed
		r.persistMethodLocked(confirmed)
	}

	r.reconcileLocked()
	return id
}

// failUpload marks one in-flight record as failed. The record is retained
// for the user to acknowledge.
func (r *Registry) failUpload(tempID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexLocked(tempID); i >= 0 {
		r.docs[i].Status = domain.StatusError
		r.docs[i].Err = err.Error()
		r.reconcileLocked()
	}
}

// Remove deletes a document optimistically: local state first, then the
// server call, whose failure never re-inserts the record.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	r.docs = append(r.docs[:i], r.docs[i+1:]...)
	r.reconcileLocked()
	r.mu.Unlock()

	result, err := r.backend.Delete(ctx, id)
	if err != nil {
		logger.Warn("server delete of %s failed: %v", id, err)
		r.setWarning(fmt.Sprintf("server delete of %s failed: %v", id, err))
		return nil
	}
	if result.NotFoundOnServer {
		logger.Debug("file %s not found on server, removed locally only", id)
	}
	return nil
}

// Refresh replaces the registry with the server's persisted listing.
func (r *Registry) Refresh(ctx context.Context) error {
	files, err := r.backend.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("refreshing files: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		method := f.Method
		if !method.IsValid() {
			method = domain.MethodStandard
		}
		uploaded := time.Time{}
		if t, err := time.Parse(time.RFC3339, f.DateUploaded); err == nil {
			uploaded = t
		}
		docs = append(docs, domain.Document{
			ID:         f.ID,
			Name:       f.Name,
			Size:       f.Size,
			Status:     domain.StatusProcessed,
			Progress:   100,
			Method:     method,
			UploadedAt: uploaded,
		})
	}
	r.docs = docs
	r.reconcileLocked()
	return nil
}

// Documents returns all records in insertion order.
func (r *Registry) Documents() []domain.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Document, len(r.docs))
	copy(out, r.docs)
	return out
}

// Get returns a record by id.
func (r *Registry) Get(id string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexLocked(id); i >= 0 {
		doc := r.docs[i]
		return &doc, nil
	}
	return nil, domain.ErrNotFound
}

// Method returns the processing method for the next upload.
func (r *Registry) Method() domain.ProcessingMethod {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.method
}

// SetMethod changes the method used for the next upload. Existing records
// keep whatever method they were processed with.
func (r *Registry) SetMethod(m domain.ProcessingMethod) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, m)
	}
	if !m.Available() {
		return fmt.Errorf("%w: %s", domain.ErrMethodUnavailable, m)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.method = m
	r.persistMethodLocked(m)
	return nil
}

// Toggle flips selection membership for one document id. Non-processed ids
// are stripped straight back out by reconciliation, so toggling one is a
// no-op in effect.
func (r *Registry) Toggle(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sel := range r.selection {
		if sel == id {
			r.selection = append(r.selection[:i], r.selection[i+1:]...)
			r.reconcileLocked()
			return
		}
	}
	r.selection = append(r.selection, id)
	r.reconcileLocked()
}

// SelectAll sets the selection to exactly the processed ids.
func (r *Registry) SelectAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selection = r.processedLocked()
	r.reconcileLocked()
}

// ClearSelection empties the selection.
func (r *Registry) ClearSelection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selection = nil
	r.reconcileLocked()
}

// ActiveIDs returns the ids selected for querying, in registry order.
func (r *Registry) ActiveIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.selection))
	copy(out, r.selection)
	return out
}

// HasProcessed reports whether any document is ready for querying.
func (r *Registry) HasProcessed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.processedLocked()) > 0
}

// LastWarning returns and clears the most recent registry-level warning.
func (r *Registry) LastWarning() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.warning
	r.warning = ""
	return w
}

// reconcileLocked recomputes the selection from the current processed set.
// Caller must hold r.mu.
func (r *Registry) reconcileLocked() {
	processed := r.processedLocked()
	r.selection = Reconcile(r.selection, r.lastProcessed, processed)
	r.lastProcessed = processed
}

// processedLocked returns processed ids in insertion order.
// Caller must hold r.mu.
func (r *Registry) processedLocked() []string {
	var ids []string
	for i := range r.docs {
		if r.docs[i].Processed() {
			ids = append(ids, r.docs[i].ID)
		}
	}
	return ids
}

// indexLocked returns the position of a record, -1 when absent.
// Caller must hold r.mu.
func (r *Registry) indexLocked(id string) int {
	for i := range r.docs {
		if r.docs[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) setWarning(w string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warning = w
}

// persistMethodLocked saves the current method, best-effort.
// Caller must hold r.mu.
func (r *Registry) persistMethodLocked(m domain.ProcessingMethod) {
	if r.settings == nil {
		return
	}
	s, err := r.settings.Get()
	if err != nil {
		return
	}
	s.Method = m
	if err := r.settings.Save(s); err != nil {
		logger.Warn("persisting processing method: %v", err)
	}
}
