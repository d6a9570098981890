package driving

import (
	"context"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

// RegistryService owns the documents known to the client, their lifecycle,
// the active selection, and the global processing method.
//
// All mutation goes through this interface; state is reported as copies so
// callers cannot mutate the registry from outside.
type RegistryService interface {
	// Upload registers a local PDF and streams it to the backend.
	// The record appears immediately with status uploading; the call blocks
	// until the upload resolves. Upload failures are reflected on the record
	// (status error) and also returned. Returns the record's current id.
	Upload(ctx context.Context, path string) (string, error)

	// Remove deletes a document. Local removal is immediate and final; the
	// server delete runs after and its failure (other than not-found) is
	// surfaced as a warning, never by re-inserting the record.
	Remove(ctx context.Context, id string) error

	// Refresh replaces the registry with the server's persisted listing.
	Refresh(ctx context.Context) error

	// Documents returns all records in insertion order.
	Documents() []domain.Document

	// Get returns a record by id.
	Get(id string) (*domain.Document, error)

	// Method returns the processing method for the next upload.
	Method() domain.ProcessingMethod

	// SetMethod changes the method used for the next upload. It never
	// retroactively affects existing records. Selecting an unavailable
	// method is rejected with domain.ErrMethodUnavailable.
	SetMethod(m domain.ProcessingMethod) error

	// Toggle flips selection membership for one document id.
	Toggle(id string)

	// SelectAll sets the selection to exactly the processed ids.
	SelectAll()

	// ClearSelection empties the selection.
	ClearSelection()

	// ActiveIDs returns the ids selected for querying, in registry order.
	// Every returned id backs a processed record.
	ActiveIDs() []string

	// HasProcessed reports whether any document is ready for querying.
	HasProcessed() bool

	// LastWarning returns and clears the most recent registry-level
	// warning, e.g. a failed server delete after optimistic removal.
	LastWarning() string
}
