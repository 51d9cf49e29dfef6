package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nordvik/glance/internal/recall"
)

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	contentHeight := a.height - 5 // tabs, blank line, status bar
	if contentHeight < 1 {
		contentHeight = 1
	}

	switch a.tab {
	case TabTimeline:
		b.WriteString(a.renderTimeline(contentHeight))
	case TabSearch:
		b.WriteString(a.renderSearch(contentHeight))
	case TabStats:
		b.WriteString(a.renderStats())
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())

	if a.sel.Visible() {
		return a.renderModalOver(b.String())
	}
	return b.String()
}

func (a App) renderTabs() string {
	names := []string{"Timeline", "Search", "Stats"}
	parts := make([]string, len(names))
	for i, name := range names {
		if Tab(i) == a.tab {
			parts[i] = tabActiveStyle.Render(name)
		} else {
			parts[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderTimeline(height int) string {
	f := a.feed
	if f.Loading && len(f.Entries) == 0 {
		return "  " + a.spinner.View() + " loading entries..."
	}
	if f.Err != nil && len(f.Entries) == 0 {
		return errStyle.Render("  failed to load entries: " + f.Err.Error())
	}
	if len(f.Entries) == 0 {
		return dimStyle.Render("  no captures yet")
	}

	var b strings.Builder
	start, end := windowBounds(a.cursor, len(f.Entries), height)
	for i := start; i < end; i++ {
		b.WriteString(a.renderEntryLine(f.Entries[i], i == a.cursor, ""))
		b.WriteString("\n")
	}
	if f.LoadingMore {
		b.WriteString("  " + a.spinner.View() + " loading more...\n")
	} else if !f.HasMore {
		b.WriteString(dimStyle.Render("  — end of history —") + "\n")
	}
	if f.Err != nil {
		b.WriteString(errStyle.Render("  load failed: "+f.Err.Error()) + "\n")
	}
	return b.String()
}

func (a App) renderSearch(height int) string {
	var b strings.Builder
	b.WriteString("  / " + a.searchInput.View() + "\n\n")

	s := a.search
	switch {
	case s.Loading:
		b.WriteString("  " + a.spinner.View() + " searching for \"" + s.Query + "\"...\n")
	case s.Err != nil:
		b.WriteString(errStyle.Render("  search failed for \""+s.Query+"\": "+s.Err.Error()) + "\n")
	case s.Query == "":
		b.WriteString(dimStyle.Render("  press / and type to search") + "\n")
	case len(s.Results) == 0:
		b.WriteString(dimStyle.Render("  no results for \""+s.Query+"\"") + "\n")
	default:
		start, end := windowBounds(a.cursor, len(s.Results), height-2)
		for i := start; i < end; i++ {
			r := s.Results[i]
			score := fmt.Sprintf("%.4f", r.SimilarityScore)
			b.WriteString(a.renderEntryLine(r.Entry, i == a.cursor, dimStyle.Render(" ("+score+")")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderEntryLine(e recall.Entry, selected bool, suffix string) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("> ")
	}
	title := e.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s%s  %s · %s", marker, dimStyle.Render(e.RelativeTime), e.App, title)
	if len(e.Tags) > 0 {
		line += "  " + tagStyle.Render("["+strings.Join(e.Tags, " ")+"]")
	}
	return line + suffix
}

const histogramWidth = 30

func (a App) renderStats() string {
	m := a.stats
	if m.Loading && m.Stats == nil {
		return "  " + a.spinner.View() + " loading stats..."
	}
	if m.Err != nil && m.Stats == nil {
		return errStyle.Render("  failed to load stats: " + m.Err.Error())
	}
	if m.Stats == nil {
		return dimStyle.Render("  no stats yet")
	}

	st := m.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "  entries: %d   storage: %.2f MB   version: %s\n",
		st.TotalEntries, st.StorageUsedMB, st.Version)
	if st.DateRange.FirstEntry != nil && st.DateRange.LastEntry != nil {
		fmt.Fprintf(&b, "  range: %s — %s\n",
			recall.FormatTimestamp(*st.DateRange.FirstEntry),
			recall.FormatTimestamp(*st.DateRange.LastEntry))
	}

	b.WriteString("\n  top apps\n")
	maxApp := st.MaxAppCount()
	for _, app := range st.Apps {
		bar := barStyle.Render(strings.Repeat("█", scaleBar(app.Count, maxApp, histogramWidth)))
		fmt.Fprintf(&b, "  %-18s %s %d\n", truncate(app.Name, 18), bar, app.Count)
	}

	b.WriteString("\n  activity by hour\n")
	byHour := make(map[int]int, len(st.ActivityByHour))
	for _, h := range st.ActivityByHour {
		byHour[h.Hour] = h.Count
	}
	maxHour := st.MaxHourlyCount()
	for h := 0; h < 24; h++ {
		bar := strings.Repeat("▇", scaleBar(byHour[h], maxHour, histogramWidth))
		style := barStyle
		if recall.IsWorkHour(h) {
			style = workHourBarStyle
		}
		fmt.Fprintf(&b, "  %02d %s %d\n", h, style.Render(bar), byHour[h])
	}
	return b.String()
}

func (a App) renderStatusBar() string {
	bucket, known := a.status.Bucket()
	parts := []string{bucketDot(string(bucket), known)}

	if st := a.status.Status; st != nil && st.LastCapture != nil {
		parts = append(parts, "last capture "+recall.RelativeTime(*st.LastCapture, time.Now()))
	}
	if a.tab == TabTimeline && len(a.feed.Entries) > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d loaded", a.cursor+1, len(a.feed.Entries)))
	}
	parts = append(parts, "q quit · / search · tab views · enter detail · r refresh")
	return statusBarStyle.Render("  " + strings.Join(parts, "   "))
}

// renderModalOver draws the detail modal centered over the background view.
func (a App) renderModalOver(background string) string {
	e := a.sel.Selected()
	if e == nil {
		return background
	}

	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n\n%s",
		cursorStyle.Render(e.App+" · "+e.Title),
		dimStyle.Render(e.FormattedTime+" ("+e.RelativeTime+")"),
		truncate(e.Text, 800),
		tagStyle.Render(strings.Join(e.Tags, " ")),
		dimStyle.Render("screenshot: "+e.ScreenshotURL+"   esc to close"))

	modal := modalStyle.Width(min(a.width-8, 76)).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// windowBounds returns the visible [start, end) slice of a list of n rows
// so the cursor stays inside a window of the given height.
func windowBounds(cursor, n, height int) (int, int) {
	if height <= 0 {
		height = 1
	}
	if n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func scaleBar(count, max, width int) int {
	if max < 1 {
		max = 1
	}
	w := count * width / max
	if count > 0 && w == 0 {
		w = 1
	}
	return w
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
