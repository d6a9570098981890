package driven

import (
	"context"
	"io"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

// ProgressFunc receives upload progress as a percentage in [0,100].
// It is invoked zero or more times with non-decreasing values, culminating
// in 100 on success. It must be cheap; it runs on the upload path.
type ProgressFunc func(percent int)

// UploadData is the backend's processing summary for an uploaded PDF.
type UploadData struct {
	// Pages is the page count the backend extracted.
	Pages int

	// Processed reports whether processing completed.
	Processed bool

	// Method is the processing method actually used. The backend may fall
	// back from the requested method, e.g. when a method is unavailable.
	Method domain.ProcessingMethod
}

// UploadResult is the backend response to a successful upload.
type UploadResult struct {
	// FileID is the durable server-assigned id.
	FileID string

	// Filename echoes the uploaded file name.
	Filename string

	// Size echoes the uploaded size in bytes.
	Size int64

	// Data is the processing summary.
	Data UploadData
}

// FileSummary describes one persisted document on the server.
type FileSummary struct {
	// ID is the server-assigned document id.
	ID string

	// Name is the file name.
	Name string

	// Size is the file size in bytes.
	Size int64

	// DateUploaded is the server-reported upload time, RFC 3339.
	DateUploaded string

	// Method is the processing method used, empty when unreported.
	Method domain.ProcessingMethod
}

// DeleteResult is the backend response to a delete.
type DeleteResult struct {
	// Success reports whether the server considers the file gone.
	Success bool

	// FileID echoes the requested id.
	FileID string

	// Message is a human-readable status.
	Message string

	// NotFoundOnServer is true when the server answered 404 and the delete
	// was treated as a soft success.
	NotFoundOnServer bool
}

// QueryResult is the backend response to a chat query.
type QueryResult struct {
	// Text is the answer body. Some backends use Message instead.
	Text string

	// Message is an alternative answer field, used when Text is empty.
	Message string

	// Sources lists the documents the answer was grounded in.
	Sources []domain.Source

	// Metadata carries backend extras verbatim.
	Metadata map[string]any
}

// Backend is the transport to the document question-answering service.
// All calls are a single attempt: there is no retry policy and no
// client-side timeout beyond what the underlying HTTP stack applies.
type Backend interface {
	// Upload streams a PDF and a method tag to the backend.
	// onProgress may be nil. Failures wrap domain.ErrUploadFailed, or
	// domain.ErrInvalidResponse for an unparseable success payload.
	Upload(ctx context.Context, name string, size int64, r io.Reader, method domain.ProcessingMethod, onProgress ProgressFunc) (*UploadResult, error)

	// ListFiles returns the documents persisted on the server.
	// Failures wrap domain.ErrFetchFailed.
	ListFiles(ctx context.Context) ([]FileSummary, error)

	// Delete removes a document on the server. A not-found response is a
	// soft success so client and server converge after divergence. Other
	// failures wrap domain.ErrDeleteFailed.
	Delete(ctx context.Context, id string) (*DeleteResult, error)

	// Query asks a question against the given document ids.
	// Failures wrap domain.ErrQueryFailed.
	Query(ctx context.Context, message string, fileIDs []string) (*QueryResult, error)
}
