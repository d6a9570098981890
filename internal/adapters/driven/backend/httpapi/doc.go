// Package httpapi implements the driven.Backend port against the real
// document question-answering service over HTTP.
//
// The wire contract is four endpoints under a configured base URL:
//
//	POST   {base}/upload      multipart "pdf" file + "method" field
//	GET    {base}/files
//	DELETE {base}/files/{id}
//	POST   {base}/chat        JSON {message, fileIds}
//
// Upload progress is reported from a counting reader wrapping the request
// body, so percentages are non-decreasing and reach 100 exactly when the
// body has been fully streamed.
package httpapi
