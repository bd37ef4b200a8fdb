package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, pageSize int) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:  baseURL,
		APIKey:   "ol_api_test",
		PageSize: pageSize,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: "key"})
		assert.Error(t, err)
	})

	t.Run("requires API key", func(t *testing.T) {
		_, err := NewClient(Config{BaseURL: "https://wiki.example.com"})
		assert.Error(t, err)
	})

	t.Run("strips trailing slash", func(t *testing.T) {
		client, err := NewClient(Config{BaseURL: "https://wiki.example.com/", APIKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, "https://wiki.example.com", client.baseURL)
	})
}

func TestClient_List(t *testing.T) {
	t.Run("returns page and filters archived", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/documents.list", r.URL.Path)
			assert.Equal(t, "Bearer ol_api_test", r.Header.Get("Authorization"))

			var req listRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 0, req.Offset)
			assert.Equal(t, 25, req.Limit)

			archived := "2026-01-01T00:00:00.000Z"
			json.NewEncoder(w).Encode(listResponse{Data: []apiDocument{
				{ID: "doc-1", Title: "Runbook", UpdatedAt: "2026-05-01T12:00:00.000Z"},
				{ID: "doc-2", Title: "Old Notes", ArchivedAt: &archived},
				{ID: "doc-3", Title: "Onboarding", UpdatedAt: "2026-06-10T09:30:00.000Z"},
			}})
		}))
		defer server.Close()

		page, err := newTestClient(t, server.URL, 0).List(context.Background(), 0, 25)
		require.NoError(t, err)
		require.Len(t, page.Documents, 2)
		assert.Equal(t, "doc-1", page.Documents[0].ID)
		assert.Equal(t, "doc-3", page.Documents[1].ID)
		assert.Equal(t, 25, page.Limit)
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication_required"}`))
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 0).List(context.Background(), 0, 25)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})
}

func TestClient_ListAll(t *testing.T) {
	t.Run("walks pagination until a short page", func(t *testing.T) {
		const pageSize = 2
		var offsets []int

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req listRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			offsets = append(offsets, req.Offset)
			assert.Equal(t, pageSize, req.Limit)

			docs := []apiDocument{
				{ID: "doc-1"}, {ID: "doc-2"},
				{ID: "doc-3"}, {ID: "doc-4"},
				{ID: "doc-5"},
			}
			end := req.Offset + req.Limit
			if end > len(docs) {
				end = len(docs)
			}
			start := req.Offset
			if start > len(docs) {
				start = len(docs)
			}
			json.NewEncoder(w).Encode(listResponse{Data: docs[start:end]})
		}))
		defer server.Close()

		all, err := newTestClient(t, server.URL, pageSize).ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 5)
		assert.Equal(t, []int{0, 2, 4}, offsets)
		assert.Equal(t, "doc-5", all[4].ID)
	})

	t.Run("exact multiple needs one extra empty page", func(t *testing.T) {
		const pageSize = 2
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			var req listRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Offset >= 2 {
				json.NewEncoder(w).Encode(listResponse{})
				return
			}
			json.NewEncoder(w).Encode(listResponse{Data: []apiDocument{{ID: "doc-1"}, {ID: "doc-2"}}})
		}))
		defer server.Close()

		all, err := newTestClient(t, server.URL, pageSize).ListAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, 2, calls)
	})

	t.Run("archived documents are excluded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			archived := "2026-01-01T00:00:00.000Z"
			json.NewEncoder(w).Encode(listResponse{Data: []apiDocument{
				{ID: "doc-1", ArchivedAt: &archived},
			}})
		}))
		defer server.Close()

		all, err := newTestClient(t, server.URL, 100).ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestClient_Fetch(t *testing.T) {
	t.Run("returns full document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/documents.info", r.URL.Path)

			var req infoRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "doc-1", req.ID)

			json.NewEncoder(w).Encode(infoResponse{Data: apiDocument{
				ID:        "doc-1",
				Title:     "Runbook",
				Text:      "# Runbook\n\nSteps...",
				UpdatedAt: "2026-05-01T12:00:00.000Z",
			}})
		}))
		defer server.Close()

		doc, err := newTestClient(t, server.URL, 0).Fetch(context.Background(), "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "Runbook", doc.Title)
		assert.Equal(t, "# Runbook\n\nSteps...", doc.Text)
		assert.Equal(t, "2026-05-01T12:00:00.000Z", doc.UpdatedAt)
	})

	t.Run("propagates not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"not_found"}`)
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL, 0).Fetch(context.Background(), "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})
}
