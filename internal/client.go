package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the query service over JSON/HTTP. All methods take a
// context and return typed responses; success=false bodies come back as
// values, not errors, so callers always see the first-class flag.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query submits a natural-language question to POST /query.
func (c *Client) Query(ctx context.Context, query string) (*QueryResponse, error) {
	body, err := json.Marshal(QueryRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query request: %w", err)
	}

	var resp QueryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/query", "query", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckDatabase probes the service's database connectivity via GET /db-check.
func (c *Client) CheckDatabase(ctx context.Context) (*DBCheckResponse, error) {
	var resp DBCheckResponse
	if err := c.doJSON(ctx, http.MethodGet, "/db-check", "db-check", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LatestSession asks GET /latest-session for the most recent session
// id. An empty string with a nil error means no session exists yet.
func (c *Client) LatestSession(ctx context.Context) (string, error) {
	var resp LatestSessionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/latest-session", "latest-session", nil, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// FetchSession retrieves the full snapshot for a session id.
func (c *Client) FetchSession(ctx context.Context, sessionID string) (*Session, error) {
	var resp Session
	path := "/session/" + url.PathEscape(sessionID)
	if err := c.doJSON(ctx, http.MethodGet, path, "session", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, op string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
