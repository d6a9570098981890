package domain

import "time"

// DocumentStatus tracks a document through its upload lifecycle.
type DocumentStatus string

// Document lifecycle states.
const (
	// StatusUploading means the upload is in flight; Progress is meaningful.
	StatusUploading DocumentStatus = "uploading"

	// StatusProcessed means the backend confirmed the upload and processed
	// the document. Only processed documents can back a chat query.
	StatusProcessed DocumentStatus = "processed"

	// StatusError means the upload failed; Err carries the reason.
	// The record is retained for the user to acknowledge.
	StatusError DocumentStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusUploading, StatusProcessed, StatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// Document represents one PDF known to the client.
// Records are created when the user picks a file for upload and live until
// explicitly removed.
type Document struct {
	// ID is the unique identifier. It is a client-generated temporary value
	// until the backend assigns a durable one on upload success.
	ID string

	// Name is the file name, captured at selection time.
	Name string

	// Size is the file size in bytes, captured at selection time.
	Size int64

	// Status is the lifecycle state.
	Status DocumentStatus

	// Progress is the upload percentage in [0,100].
	// Only meaningful while Status is StatusUploading.
	Progress int

	// Method is the processing method. Set to the requested method at upload
	// start and overwritten with the server-confirmed method on success,
	// which may differ when the backend falls back.
	Method ProcessingMethod

	// Pages is the page count, from the local pre-flight inspection or the
	// backend response. Zero when unknown.
	Pages int

	// UploadedAt is when the record was created or, for server-listed
	// documents, the server-reported upload time.
	UploadedAt time.Time

	// Err is the failure reason. Only set when Status is StatusError.
	Err string
}

// Processed returns true if the document can back a chat query.
func (d Document) Processed() bool {
	return d.Status == StatusProcessed
}
