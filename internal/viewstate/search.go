package viewstate

import (
	"strings"

	"github.com/nordvik/glance/internal/recall"
)

// SearchRequest describes a search the host must perform. Seq is a
// monotonic sequence number; only the completion matching the latest issued
// sequence is applied, so overlapping searches resolve last-issued-wins
// rather than last-response-wins.
type SearchRequest struct {
	Seq   uint64
	Query string
	Limit int
}

// SearchController owns a single active query and its result set. Results
// are replaced wholesale per query, never accumulated.
type SearchController struct {
	Results []recall.SearchResult
	Query   string // empty means no active search
	Loading bool
	Err     error

	limit int
	seq   uint64
}

// NewSearch creates a search controller. limit <= 0 falls back to 20.
func NewSearch(limit int) *SearchController {
	if limit <= 0 {
		limit = 20
	}
	return &SearchController{limit: limit}
}

// Start begins a search for q. A query that trims to empty clears all
// search state instead and issues no request (ok=false). Starting a new
// search supersedes any in-flight one: its completion will be discarded.
func (c *SearchController) Start(q string) (SearchRequest, bool) {
	q = strings.TrimSpace(q)
	if q == "" {
		c.Clear()
		return SearchRequest{}, false
	}
	c.seq++
	c.Query = q
	c.Loading = true
	c.Err = nil
	return SearchRequest{Seq: c.seq, Query: q, Limit: c.limit}, true
}

// Apply applies a search completion and reports whether it was current.
// On failure the results are cleared but Query stays set, so the view can
// still render "search failed for <query>".
func (c *SearchController) Apply(req SearchRequest, resp *recall.SearchResponse, err error) bool {
	if req.Seq != c.seq {
		return false
	}
	c.Loading = false
	if err != nil {
		c.Results = nil
		c.Err = err
		return true
	}
	c.Results = resp.Results
	c.Err = nil
	return true
}

// Clear resets the controller to the no-active-search state. Any in-flight
// completion becomes stale and will be discarded.
func (c *SearchController) Clear() {
	c.seq++
	c.Results = nil
	c.Query = ""
	c.Loading = false
	c.Err = nil
}
