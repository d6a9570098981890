package driven

import "context"

// FileInfo is the result of a local pre-flight inspection.
type FileInfo struct {
	// Name is the base file name.
	Name string

	// Size is the file size in bytes.
	Size int64

	// Pages is the page count, zero when the inspector cannot tell.
	Pages int
}

// Inspector probes a local file before upload.
// It rejects files the backend would reject anyway, saving the round trip.
type Inspector interface {
	// Inspect validates that path is a readable PDF and returns its
	// metadata. Returns an error wrapping domain.ErrNotPDF for anything
	// that is not a valid PDF.
	Inspect(ctx context.Context, path string) (*FileInfo, error)
}
