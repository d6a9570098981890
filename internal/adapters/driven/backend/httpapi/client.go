package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
	"github.com/inkwell-labs/paperchat/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	// Uploads get no client timeout; large PDFs on slow links take as long
	// as they take, matching the underlying-stack-only policy.
	DefaultTimeout = 30 * time.Second

	// requestsPerSecond is the sustained client-side rate limit.
	requestsPerSecond = 5.0

	// burstSize is the rate limiter burst.
	burstSize = 10
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// Client is an HTTP implementation of driven.Backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	uploader   *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a backend client for the given base URL,
// e.g. "http://localhost:5000/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		uploader:   &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// uploadResponse is the wire shape of a successful upload.
type uploadResponse struct {
	FileID   string `json:"fileId"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Data     struct {
		Pages     int    `json:"pages"`
		Processed bool   `json:"processed"`
		Method    string `json:"method"`
	} `json:"data"`
}

// fileResponse is the wire shape of one listed file.
type fileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	DateUploaded string `json:"dateUploaded"`
	Method       string `json:"method"`
}

// deleteResponse is the wire shape of a delete confirmation.
type deleteResponse struct {
	Success bool   `json:"success"`
	FileID  string `json:"fileId"`
	Message string `json:"message"`
}

// chatResponse is the wire shape of a chat answer.
type chatResponse struct {
	Text    string `json:"text"`
	Message string `json:"message"`
	Sources []struct {
		FileID string `json:"fileId"`
		Title  string `json:"title"`
		Page   int    `json:"page"`
	} `json:"sources"`
	Metadata map[string]any `json:"metadata"`
}

// Upload streams a PDF and a method tag to the backend.
func (c *Client) Upload(ctx context.Context, name string, size int64, r io.Reader, method domain.ProcessingMethod, onProgress driven.ProgressFunc) (*driven.UploadResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("pdf", name)
	if err != nil {
		return nil, fmt.Errorf("%w: building form: %v", domain.ErrUploadFailed, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrUploadFailed, name, err)
	}
	if err := mw.WriteField("method", method.String()); err != nil {
		return nil, fmt.Errorf("%w: building form: %v", domain.ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: building form: %v", domain.ErrUploadFailed, err)
	}

	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", newProgressReader(&body, total, onProgress))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = total

	resp, err := c.uploader.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: network error during upload: %v", domain.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: upload failed with status %d", domain.ErrUploadFailed, resp.StatusCode)
	}

	var wire uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	if onProgress != nil {
		onProgress(100)
	}
	logger.Debug("uploaded %s as %s (method %s)", name, wire.FileID, wire.Data.Method)

	return &driven.UploadResult{
		FileID:   wire.FileID,
		Filename: wire.Filename,
		Size:     wire.Size,
		Data: driven.UploadData{
			Pages:     wire.Data.Pages,
			Processed: wire.Data.Processed,
			Method:    domain.ProcessingMethod(wire.Data.Method),
		},
	}, nil
}

// ListFiles returns the documents persisted on the server.
func (c *Client) ListFiles(ctx context.Context) ([]driven.FileSummary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	var wire []fileResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	files := make([]driven.FileSummary, 0, len(wire))
	for _, f := range wire {
		files = append(files, driven.FileSummary{
			ID:           f.ID,
			Name:         f.Name,
			Size:         f.Size,
			DateUploaded: f.DateUploaded,
			Method:       domain.ProcessingMethod(f.Method),
		})
	}
	return files, nil
}

// Delete removes a document on the server. A 404 is a soft success so the
// client can clean up even when backend state has diverged.
func (c *Client) Delete(ctx context.Context, id string) (*driven.DeleteResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty file id", domain.ErrInvalidInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeleteFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/files/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeleteFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeleteFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.Warn("file %s not found on server, treating delete as success", id)
		return &driven.DeleteResult{
			Success:          true,
			FileID:           id,
			Message:          "file removed locally (not found on server)",
			NotFoundOnServer: true,
		}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrDeleteFailed, resp.StatusCode)
	}

	var wire deleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	return &driven.DeleteResult{
		Success: wire.Success,
		FileID:  wire.FileID,
		Message: wire.Message,
	}, nil
}

// Query asks a question against the given document ids.
func (c *Client) Query(ctx context.Context, message string, fileIDs []string) (*driven.QueryResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}

	payload, err := json.Marshal(map[string]any{
		"message": message,
		"fileIds": fileIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrQueryFailed, resp.StatusCode)
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	sources := make([]domain.Source, 0, len(wire.Sources))
	for _, s := range wire.Sources {
		sources = append(sources, domain.Source{
			FileID: s.FileID,
			Title:  s.Title,
			Page:   s.Page,
		})
	}

	return &driven.QueryResult{
		Text:     wire.Text,
		Message:  wire.Message,
		Sources:  sources,
		Metadata: wire.Metadata,
	}, nil
}
