package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadFailed indicates an upload could not be completed.
	ErrUploadFailed = errors.New("upload failed")

	// ErrFetchFailed indicates the server file listing could not be fetched.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrDeleteFailed indicates a server-side delete failed.
	// A not-found response is a soft success, not a delete failure.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrQueryFailed indicates a chat query could not be completed.
	ErrQueryFailed = errors.New("query failed")

	// ErrInvalidResponse indicates the backend returned a success status
	// with an unparseable payload.
	ErrInvalidResponse = errors.New("invalid response format")

	// ErrEmptyMessage indicates a chat send with empty or whitespace text.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy indicates a chat send while a request is already in flight.
	// Chat turns are strictly sequential; there is no pipelining.
	ErrBusy = errors.New("a request is already in flight")

	// ErrNoSelection indicates a chat send with no active documents.
	ErrNoSelection = errors.New("no documents selected")

	// ErrMethodUnavailable indicates a processing method that cannot
	// currently be selected.
	ErrMethodUnavailable = errors.New("processing method unavailable")

	// ErrNotPDF indicates a file that failed the local PDF pre-flight check.
	ErrNotPDF = errors.New("not a valid PDF")
)
