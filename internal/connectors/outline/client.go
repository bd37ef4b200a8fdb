// Package outline provides a connector for the Outline wiki API.
//
// Outline exposes an RPC-style API where every call is a POST with a JSON
// body, authenticated with a bearer token. Listings are paginated by
// offset/limit and include archived documents, which this connector
// filters out.
package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.RemoteSource = (*Client)(nil)

// Default configuration values.
const (
	// DefaultPageSize is the listing page size.
	DefaultPageSize = 100

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProactiveRate throttles requests to stay under Outline's rate limit
	// (self-hosted defaults allow far more, but cloud instances do not).
	ProactiveRate = 10
)

// Config holds configuration for the Outline connector.
type Config struct {
	// BaseURL is the Outline instance URL, e.g. https://wiki.example.com
	// (required).
	BaseURL string

	// APIKey is the Outline API token (required).
	APIKey string

	// PageSize overrides the listing page size (default: 100).
	PageSize int

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client calls the Outline API.
type Client struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	pageSize int
	limiter  *rate.Limiter
}

// listRequest is the documents.list request body.
type listRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// infoRequest is the documents.info request body.
type infoRequest struct {
	ID string `json:"id"`
}

// apiDocument is the Outline document representation.
type apiDocument struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	UpdatedAt  string  `json:"updatedAt"`
	ArchivedAt *string `json:"archivedAt"`
}

// listResponse is the documents.list response body.
type listResponse struct {
	Data []apiDocument `json:"data"`
}

// infoResponse is the documents.info response body.
type infoResponse struct {
	Data apiDocument `json:"data"`
}

// NewClient creates an Outline API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("outline: base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("outline: API key is required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		pageSize: cfg.PageSize,
		limiter:  rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}, nil
}

// List returns one page of document summaries. Archived documents are
// filtered out, so a page may hold fewer documents than the limit even
// when more pages remain.
func (c *Client) List(ctx context.Context, offset, limit int) (*driven.RemotePage, error) {
	var resp listResponse
	err := c.post(ctx, "/api/documents.list", listRequest{Offset: offset, Limit: limit}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	page := &driven.RemotePage{
		Offset: offset,
		Limit:  limit,
	}
	for _, doc := range resp.Data {
		if doc.ArchivedAt != nil {
			continue
		}
		page.Documents = append(page.Documents, toRemoteDocument(doc))
	}
	return page, nil
}

// ListAll walks the pagination and returns every non-archived document.
func (c *Client) ListAll(ctx context.Context) ([]driven.RemoteDocument, error) {
	var all []driven.RemoteDocument

	for offset := 0; ; offset += c.pageSize {
		var resp listResponse
		err := c.post(ctx, "/api/documents.list", listRequest{Offset: offset, Limit: c.pageSize}, &resp)
		if err != nil {
			return nil, fmt.Errorf("list documents at offset %d: %w", offset, err)
		}

		for _, doc := range resp.Data {
			if doc.ArchivedAt != nil {
				continue
			}
			all = append(all, toRemoteDocument(doc))
		}

		// A short page means the listing is exhausted.
		if len(resp.Data) < c.pageSize {
			break
		}
	}

	return all, nil
}

// Fetch returns a single document with its full text.
func (c *Client) Fetch(ctx context.Context, id string) (*driven.RemoteDocument, error) {
	var resp infoResponse
	if err := c.post(ctx, "/api/documents.info", infoRequest{ID: id}, &resp); err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", id, err)
	}

	doc := toRemoteDocument(resp.Data)
	return &doc, nil
}

// post sends an RPC call and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("outline error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("outline error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toRemoteDocument(doc apiDocument) driven.RemoteDocument {
	return driven.RemoteDocument{
		ID:        doc.ID,
		Title:     doc.Title,
		Text:      doc.Text,
		UpdatedAt: doc.UpdatedAt,
	}
}
