// Package ui implements the terminal dashboard: a tabbed Bubble Tea app over
// the recall API with an infinite-scrolling entry feed, full-text search,
// aggregate statistics, and a polled recorder status indicator.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nordvik/glance/internal/viewstate"
)

// Tab identifies one of the dashboard views.
type Tab int

// Dashboard tabs.
const (
	TabTimeline Tab = iota
	TabSearch
	TabStats
)

// scrollHold is the ScrollLock implementation backing the detail modal:
// while held, feed navigation keys are ignored.
type scrollHold struct {
	held bool
}

func (l *scrollHold) Acquire() { l.held = true }
func (l *scrollHold) Release() { l.held = false }

// Config holds the knobs for creating an App.
type Config struct {
	Loads          Loads
	PageSize       int
	StatusInterval time.Duration
	ThresholdRows  int // cursor distance from feed bottom that triggers load-more
}

// App is the root Bubble Tea model. It holds no client; all data arrives via
// messages produced by the injected Loads capabilities.
type App struct {
	loads Loads

	feed   *viewstate.FeedController
	search *viewstate.SearchController
	stats  *viewstate.StatsModel
	status *viewstate.StatusPoller
	sel    *viewstate.Selection
	lock   *scrollHold

	tab    Tab
	cursor int // feed cursor (also used for search results)

	searchInput textinput.Model
	spinner     spinner.Model

	width  int
	height int
	ready  bool
}

// NewApp creates the dashboard model.
func NewApp(cfg Config) App {
	ti := textinput.New()
	ti.Placeholder = "search captures..."
	ti.CharLimit = 200
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	threshold := cfg.ThresholdRows
	if threshold <= 0 {
		threshold = 10
	}

	lock := &scrollHold{}
	return App{
		loads:       cfg.Loads,
		feed:        viewstate.NewFeed(cfg.PageSize, threshold),
		search:      viewstate.NewSearch(0),
		stats:       &viewstate.StatsModel{},
		status:      viewstate.NewStatusPoller(cfg.StatusInterval),
		sel:         viewstate.NewSelection(lock),
		lock:        lock,
		searchInput: ti,
		spinner:     s,
	}
}

// Init fires the initial feed load, the stats fetch, and the first status
// poll with its tick schedule.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.loads.Entries != nil {
		cmds = append(cmds, a.loads.Entries(a.feed.StartLoad()))
	}
	if a.loads.Stats != nil {
		cmds = append(cmds, a.loads.Stats(a.stats.Start()))
	}
	if a.loads.Status != nil {
		a.status.Begin()
		cmds = append(cmds, a.loads.Status(), a.scheduleStatusTick())
	}
	return tea.Batch(cmds...)
}

func (a App) scheduleStatusTick() tea.Cmd {
	return tea.Tick(a.status.Interval(), func(time.Time) tea.Msg {
		return StatusTick{}
	})
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		if a.anyLoading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case FeedLoaded:
		if a.feed.ApplyLoad(msg.Req, msg.Resp, msg.Err) && msg.Err == nil {
			a.cursor = 0
		}
		return a, nil

	case FeedMoreLoaded:
		a.feed.ApplyLoadMore(msg.Req, msg.Resp, msg.Err)
		return a, nil

	case SearchDone:
		if a.search.Apply(msg.Req, msg.Resp, msg.Err) && msg.Err == nil {
			a.cursor = 0
		}
		return a, nil

	case StatsLoaded:
		a.stats.Apply(msg.Req, msg.Stats, msg.Err)
		return a, nil

	case StatusFetched:
		a.status.Apply(msg.Status, msg.Err)
		return a, nil

	case StatusTick:
		cmds := []tea.Cmd{a.scheduleStatusTick()}
		if a.loads.Status != nil {
			a.status.Begin()
			cmds = append(cmds, a.loads.Status())
		}
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

func (a App) anyLoading() bool {
	return a.feed.Loading || a.feed.LoadingMore || a.search.Loading || a.stats.Loading
}

// handleKey processes keyboard input.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input mode routes everything to the text input.
	if a.searchInput.Focused() {
		return a.handleSearchInput(msg)
	}

	// While the detail modal is open, only dismissal and quit are live.
	if a.sel.Visible() {
		switch msg.String() {
		case "esc", "q", "enter":
			a.sel.Dismiss()
			return a, nil
		case "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "tab":
		a.tab = (a.tab + 1) % 3
		a.cursor = 0
		return a, nil
	case "1":
		a.tab = TabTimeline
		return a, nil
	case "2":
		a.tab = TabSearch
		return a, nil
	case "3":
		a.tab = TabStats
		return a, nil

	case "/":
		a.tab = TabSearch
		a.searchInput.SetValue("")
		a.searchInput.Focus()
		return a, textinput.Blink

	case "esc":
		if a.tab == TabSearch && a.search.Query != "" {
			a.search.Clear()
			a.cursor = 0
		}
		return a, nil

	case "r":
		return a.refresh()

	case "j", "down":
		return a.moveCursor(1)
	case "k", "up":
		return a.moveCursor(-1)
	case "g", "home":
		a.cursor = 0
		return a, nil
	case "G", "end":
		if n := a.listLen(); n > 0 {
			a.cursor = n - 1
		}
		return a.afterCursorMove()

	case "m":
		// Manual continuation for the timeline feed.
		if a.tab == TabTimeline && a.loads.EntriesMore != nil {
			if req, ok := a.feed.StartLoadMore(); ok {
				return a, tea.Batch(a.spinner.Tick, a.loads.EntriesMore(req))
			}
		}
		return a, nil

	case "enter":
		return a.openSelected()
	}

	return a, nil
}

// handleSearchInput routes keys while the search field is focused.
func (a App) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.searchInput.Blur()
		if req, ok := a.search.Start(a.searchInput.Value()); ok && a.loads.Search != nil {
			a.cursor = 0
			return a, tea.Batch(a.spinner.Tick, a.loads.Search(req))
		}
		a.cursor = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

// refresh reloads the data behind the current tab.
func (a App) refresh() (tea.Model, tea.Cmd) {
	switch a.tab {
	case TabTimeline:
		if a.loads.Entries != nil {
			return a, tea.Batch(a.spinner.Tick, a.loads.Entries(a.feed.StartLoad()))
		}
	case TabStats:
		if a.loads.Stats != nil {
			return a, tea.Batch(a.spinner.Tick, a.loads.Stats(a.stats.Start()))
		}
	case TabSearch:
		if a.search.Query != "" && a.loads.Search != nil {
			if req, ok := a.search.Start(a.search.Query); ok {
				return a, tea.Batch(a.spinner.Tick, a.loads.Search(req))
			}
		}
	}
	return a, nil
}

func (a App) listLen() int {
	switch a.tab {
	case TabTimeline:
		return len(a.feed.Entries)
	case TabSearch:
		return len(a.search.Results)
	}
	return 0
}

func (a App) moveCursor(delta int) (tea.Model, tea.Cmd) {
	n := a.listLen()
	if n == 0 {
		return a, nil
	}
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}
	return a.afterCursorMove()
}

// afterCursorMove feeds the scroll position into the infinite-scroll
// trigger: the cursor's distance from the bottom of the loaded feed is the
// distance signal the controller thresholds on.
func (a App) afterCursorMove() (tea.Model, tea.Cmd) {
	if a.tab != TabTimeline || a.loads.EntriesMore == nil {
		return a, nil
	}
	distance := len(a.feed.Entries) - 1 - a.cursor
	if req, ok := a.feed.MaybeLoadMore(distance); ok {
		return a, tea.Batch(a.spinner.Tick, a.loads.EntriesMore(req))
	}
	return a, nil
}

// openSelected opens the detail modal for the entry under the cursor.
func (a App) openSelected() (tea.Model, tea.Cmd) {
	switch a.tab {
	case TabTimeline:
		if a.cursor < len(a.feed.Entries) {
			a.sel.Select(a.feed.Entries[a.cursor])
		}
	case TabSearch:
		if a.cursor < len(a.search.Results) {
			a.sel.Select(a.search.Results[a.cursor].Entry)
		}
	}
	return a, nil
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int { return a.cursor }

// ActiveTab returns the current tab (for testing).
func (a App) ActiveTab() Tab { return a.tab }

// ModalVisible reports whether the detail modal is open (for testing).
func (a App) ModalVisible() bool { return a.sel.Visible() }
