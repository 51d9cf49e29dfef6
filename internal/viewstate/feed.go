// Package viewstate holds the dashboard's view-state controllers: paginated
// feed, search, status poll, stats, and modal selection. Controllers are
// plain state machines with explicit begin/apply transitions so a host event
// loop (Bubble Tea, or any other single-threaded driver) can run the actual
// fetch asynchronously and deliver the completion back as a message. Each
// view instance owns its own controller instances; none of them are safe for
// concurrent use from multiple goroutines.
package viewstate

import "github.com/nordvik/glance/internal/recall"

// DefaultFeedThreshold is the near-bottom distance (in scroll units) at
// which the feed advances automatically.
const DefaultFeedThreshold = 200

// LoadRequest describes a page fetch the host must perform. Gen correlates
// the completion with the feed state that issued it; completions from a
// superseded generation are discarded.
type LoadRequest struct {
	Gen   uint64
	Page  int
	Limit int
}

// FeedController owns the reverse-chronological paginated entry list.
//
// Entries accumulate across LoadMore completions and are replaced wholesale
// by a Load completion. Duplicates are a caller contract violation and are
// not deduplicated here.
type FeedController struct {
	Entries     []recall.Entry
	Page        int // last successfully loaded page; 0 before the first load
	HasMore     bool
	Loading     bool // first-page fetch in flight
	LoadingMore bool // continuation fetch in flight
	Err         error

	pageSize  int
	threshold int
	gen       uint64
}

// NewFeed creates a feed controller. pageSize <= 0 falls back to the
// backend default of 50; threshold <= 0 falls back to DefaultFeedThreshold.
func NewFeed(pageSize, threshold int) *FeedController {
	if pageSize <= 0 {
		pageSize = 50
	}
	if threshold <= 0 {
		threshold = DefaultFeedThreshold
	}
	return &FeedController{pageSize: pageSize, threshold: threshold}
}

// StartLoad begins a fresh first-page fetch (mount or explicit refresh).
// Prior entries stay visible until the fetch succeeds. Starting a load
// supersedes any in-flight fetch: its completion will be discarded.
func (c *FeedController) StartLoad() LoadRequest {
	c.gen++
	c.Loading = true
	c.LoadingMore = false
	c.Err = nil
	return LoadRequest{Gen: c.gen, Page: 1, Limit: c.pageSize}
}

// ApplyLoad applies a first-page completion. It reports whether the
// completion was current; stale generations leave state untouched.
func (c *FeedController) ApplyLoad(req LoadRequest, resp *recall.PaginatedResponse, err error) bool {
	if req.Gen != c.gen {
		return false
	}
	c.Loading = false
	if err != nil {
		c.Err = err
		return true
	}
	c.Entries = resp.Entries
	c.Page = resp.Page
	c.HasMore = resp.HasMore
	c.Err = nil
	return true
}

// StartLoadMore begins a continuation fetch for the next page. It is a
// no-op (ok=false, no request issued) while a fetch is already in flight or
// when the backend reported no further pages.
func (c *FeedController) StartLoadMore() (LoadRequest, bool) {
	if c.Loading || c.LoadingMore || !c.HasMore || c.Page == 0 {
		return LoadRequest{}, false
	}
	c.LoadingMore = true
	return LoadRequest{Gen: c.gen, Page: c.Page + 1, Limit: c.pageSize}, true
}

// ApplyLoadMore applies a continuation completion. A failure leaves the
// accumulated entries untouched and only surfaces Err.
func (c *FeedController) ApplyLoadMore(req LoadRequest, resp *recall.PaginatedResponse, err error) bool {
	if req.Gen != c.gen {
		return false
	}
	c.LoadingMore = false
	if err != nil {
		c.Err = err
		return true
	}
	c.Entries = append(c.Entries, resp.Entries...)
	c.Page = resp.Page
	c.HasMore = resp.HasMore
	c.Err = nil
	return true
}

// MaybeLoadMore is the scroll trigger: the host reports its current
// distance from the bottom of the scrollable view, and the feed advances
// when that distance is inside the threshold. Re-invoking while a fetch is
// in flight is an idempotent no-op via the StartLoadMore guard.
func (c *FeedController) MaybeLoadMore(distanceFromBottom int) (LoadRequest, bool) {
	if distanceFromBottom > c.threshold {
		return LoadRequest{}, false
	}
	return c.StartLoadMore()
}
