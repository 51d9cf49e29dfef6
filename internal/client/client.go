// Package client is the JSON-over-HTTP transport for the recall API.
//
// One network call per method invocation; no caching, no retries, no
// timeouts beyond the injected http.Client's own. Callers decide retry
// policy. Errors come in three kinds: *HTTPError (non-2xx status),
// *ParseError (malformed JSON body), and wrapped network errors from the
// underlying transport.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nordvik/glance/internal/recall"
)

// DefaultSearchLimit is applied when a search is requested with limit <= 0.
const DefaultSearchLimit = 20

// Client issues requests against a recall backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets a Bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client for the backend at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one GET request and decodes the JSON body into out.
// Absent query params must simply not be present in q; empty values are
// never sent.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// EntriesQuery holds the optional filters of GET /api/entries.
// Zero values are omitted from the request.
type EntriesQuery struct {
	Page      int
	Limit     int
	StartDate *int64
	EndDate   *int64
	App       string
}

// Entries fetches one page of observation records, newest first.
func (c *Client) Entries(ctx context.Context, q EntriesQuery) (*recall.PaginatedResponse, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.StartDate != nil {
		params.Set("start_date", strconv.FormatInt(*q.StartDate, 10))
	}
	if q.EndDate != nil {
		params.Set("end_date", strconv.FormatInt(*q.EndDate, 10))
	}
	if q.App != "" {
		params.Set("app", q.App)
	}

	var resp recall.PaginatedResponse
	if err := c.get(ctx, "/api/entries", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Entry fetches a single record by id.
func (c *Client) Entry(ctx context.Context, id int64) (*recall.Entry, error) {
	var e recall.Entry
	if err := c.get(ctx, "/api/entries/"+strconv.FormatInt(id, 10), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Search runs a relevance-ranked search. The query must be non-empty; the
// backend rejects empty queries, so callers are expected to guard first.
func (c *Client) Search(ctx context.Context, query string, limit int) (*recall.SearchResponse, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var resp recall.SearchResponse
	if err := c.get(ctx, "/api/search", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Timeline fetches all capture timestamps with their date range.
func (c *Client) Timeline(ctx context.Context) (*recall.TimelineResponse, error) {
	var resp recall.TimelineResponse
	if err := c.get(ctx, "/api/timeline", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats fetches the aggregate statistics.
func (c *Client) Stats(ctx context.Context) (*recall.SystemStats, error) {
	var resp recall.SystemStats
	if err := c.get(ctx, "/api/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Apps fetches the per-application capture counts.
func (c *Client) Apps(ctx context.Context) ([]recall.AppStats, error) {
	var resp recall.AppsResponse
	if err := c.get(ctx, "/api/apps", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Apps, nil
}

// Status fetches the recorder status.
func (c *Client) Status(ctx context.Context) (*recall.StatusResponse, error) {
	var resp recall.StatusResponse
	if err := c.get(ctx, "/api/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
