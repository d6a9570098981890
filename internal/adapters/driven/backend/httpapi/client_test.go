package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/paperchat/internal/core/domain"
)

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://localhost:5000/api/")

	assert.Equal(t, "http://localhost:5000/api", client.baseURL)
}

func TestClient_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "layout", r.FormValue("method"))

		file, header, err := r.FormFile("pdf")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"fileId":   "f1",
			"filename": "report.pdf",
			"size":     13,
			"data": map[string]any{
				"pages":     7,
				"processed": true,
				"method":    "standard",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")

	var progress []int
	result, err := client.Upload(
		context.Background(), "report.pdf", 13, strings.NewReader("%PDF-1.4 test"),
		domain.MethodLayout,
		func(percent int) { progress = append(progress, percent) },
	)

	require.NoError(t, err)
	assert.Equal(t, "f1", result.FileID)
	assert.Equal(t, "report.pdf", result.Filename)
	assert.Equal(t, int64(13), result.Size)
	assert.Equal(t, 7, result.Data.Pages)
	assert.True(t, result.Data.Processed)
	assert.Equal(t, domain.MethodStandard, result.Data.Method, "the server-confirmed method is reported as-is")

	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1], "progress must not decrease")
	}
}

func TestClient_Upload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Upload(
		context.Background(), "report.pdf", 4, strings.NewReader("test"),
		domain.MethodStandard, nil,
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestClient_Upload_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Upload(
		context.Background(), "report.pdf", 4, strings.NewReader("test"),
		domain.MethodStandard, nil,
	)

	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestClient_ListFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/files", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"f1","name":"a.pdf","size":10,"dateUploaded":"2026-08-01T10:00:00Z","method":"standard"},
			{"id":"f2","name":"b.pdf","size":20,"dateUploaded":"2026-08-02T10:00:00Z","method":"layout"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")

	files, err := client.ListFiles(context.Background())

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f1", files[0].ID)
	assert.Equal(t, "a.pdf", files[0].Name)
	assert.Equal(t, int64(10), files[0].Size)
	assert.Equal(t, "2026-08-01T10:00:00Z", files[0].DateUploaded)
	assert.Equal(t, domain.MethodLayout, files[1].Method)
}

func TestClient_ListFiles_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.ListFiles(context.Background())

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/files/f1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"fileId":"f1","message":"file successfully deleted"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")

	result, err := client.Delete(context.Background(), "f1")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "f1", result.FileID)
	assert.False(t, result.NotFoundOnServer)
}

func TestClient_Delete_NotFoundIsSoftSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.Delete(context.Background(), "f1")

	require.NoError(t, err, "a 404 delete must not be an error")
	assert.True(t, result.Success)
	assert.True(t, result.NotFoundOnServer)
}

func TestClient_Delete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Delete(context.Background(), "f1")

	assert.ErrorIs(t, err, domain.ErrDeleteFailed)
}

func TestClient_Delete_EmptyID(t *testing.T) {
	client := NewClient("http://localhost:5000/api")

	_, err := client.Delete(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)

		var payload struct {
			Message string   `json:"message"`
			FileIDs []string `json:"fileIds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "what is this?", payload.Message)
		assert.Equal(t, []string{"f1", "f2"}, payload.FileIDs)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text":"An answer.",
			"sources":[{"fileId":"f1","title":"a.pdf","page":3}],
			"metadata":{"model":"test"}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")

	result, err := client.Query(context.Background(), "what is this?", []string{"f1", "f2"})

	require.NoError(t, err)
	assert.Equal(t, "An answer.", result.Text)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "a.pdf", result.Sources[0].Title)
	assert.Equal(t, 3, result.Sources[0].Page)
	assert.Equal(t, "test", result.Metadata["model"])
}

func TestClient_Query_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Query(context.Background(), "hi", []string{"f1"})

	assert.ErrorIs(t, err, domain.ErrQueryFailed)
}
