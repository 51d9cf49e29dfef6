package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nordvik/glance/internal/client"
	"github.com/nordvik/glance/internal/recall"
	"github.com/nordvik/glance/internal/viewstate"
)

// Completion messages delivered back into the event loop. Each carries the
// request that started it so the controllers can discard stale completions.

// FeedLoaded is a first-page fetch completion.
type FeedLoaded struct {
	Req  viewstate.LoadRequest
	Resp *recall.PaginatedResponse
	Err  error
}

// FeedMoreLoaded is a continuation fetch completion.
type FeedMoreLoaded struct {
	Req  viewstate.LoadRequest
	Resp *recall.PaginatedResponse
	Err  error
}

// SearchDone is a search completion.
type SearchDone struct {
	Req  viewstate.SearchRequest
	Resp *recall.SearchResponse
	Err  error
}

// StatsLoaded is a stats fetch completion.
type StatsLoaded struct {
	Req   viewstate.StatsRequest
	Stats *recall.SystemStats
	Err   error
}

// StatusFetched is a recorder status poll completion.
type StatusFetched struct {
	Status *recall.StatusResponse
	Err    error
}

// StatusTick schedules the next recorder status poll.
type StatusTick struct{}

// Loads groups the data-access capabilities injected into the App. The App
// never holds the client directly; it receives data via messages.
type Loads struct {
	Entries     func(req viewstate.LoadRequest) tea.Cmd
	EntriesMore func(req viewstate.LoadRequest) tea.Cmd
	Search      func(req viewstate.SearchRequest) tea.Cmd
	Stats       func(req viewstate.StatsRequest) tea.Cmd
	Status      func() tea.Cmd
}

const fetchTimeout = 10 * time.Second

// NewLoads builds the capability set over an API client.
func NewLoads(c *client.Client) Loads {
	fetchPage := func(req viewstate.LoadRequest) (*recall.PaginatedResponse, error) {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return c.Entries(ctx, client.EntriesQuery{Page: req.Page, Limit: req.Limit})
	}

	return Loads{
		Entries: func(req viewstate.LoadRequest) tea.Cmd {
			return func() tea.Msg {
				resp, err := fetchPage(req)
				return FeedLoaded{Req: req, Resp: resp, Err: err}
			}
		},
		EntriesMore: func(req viewstate.LoadRequest) tea.Cmd {
			return func() tea.Msg {
				resp, err := fetchPage(req)
				return FeedMoreLoaded{Req: req, Resp: resp, Err: err}
			}
		},
		Search: func(req viewstate.SearchRequest) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
				defer cancel()
				resp, err := c.Search(ctx, req.Query, req.Limit)
				return SearchDone{Req: req, Resp: resp, Err: err}
			}
		},
		Stats: func(req viewstate.StatsRequest) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
				defer cancel()
				stats, err := c.Stats(ctx)
				return StatsLoaded{Req: req, Stats: stats, Err: err}
			}
		},
		Status: func() tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
				defer cancel()
				st, err := c.Status(ctx)
				return StatusFetched{Status: st, Err: err}
			}
		},
	}
}
