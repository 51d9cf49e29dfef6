// Package recall defines the wire types of the recall API, shared by the
// HTTP client and the fixture server.
package recall

import (
	"fmt"
	"time"
)

// Entry is one captured observation record. Entries are immutable once
// fetched; timestamps are unix seconds.
type Entry struct {
	ID            int64    `json:"id"`
	App           string   `json:"app"`
	Title         string   `json:"title"`
	Text          string   `json:"text"`
	Timestamp     int64    `json:"timestamp"`
	ScreenshotURL string   `json:"screenshot_url"`
	FormattedTime string   `json:"formatted_time"`
	RelativeTime  string   `json:"relative_time"`
	Tags          []string `json:"tags"`
}

// SearchResult is an Entry plus a backend-assigned relevance score.
// Ordering is determined entirely by the backend; clients must not re-sort.
type SearchResult struct {
	Entry
	SimilarityScore float64 `json:"similarity_score"`
}

// PaginatedResponse is the payload of GET /api/entries.
//
// HasMore is the authoritative continuation signal; clients must not infer it
// from len(Entries) == Limit.
type PaginatedResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
	HasMore bool    `json:"has_more"`
}

// SearchResponse is the payload of GET /api/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// DateRange bounds a set of timestamps. Nil means no entries exist.
type DateRange struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
}

// TimelineResponse is the payload of GET /api/timeline.
type TimelineResponse struct {
	Timestamps []int64   `json:"timestamps"`
	DateRange  DateRange `json:"date_range"`
	TotalCount int       `json:"total_count"`
}

// AppStats is one row of the per-app histogram.
type AppStats struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Category *string `json:"category"`
}

// AppsResponse is the payload of GET /api/apps.
type AppsResponse struct {
	Apps []AppStats `json:"apps"`
}

// HourCount is one bucket of the hourly activity histogram. Hours absent
// from the sequence imply a count of zero.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// StatsDateRange bounds the captured entries. Nil fields mean no entries.
type StatsDateRange struct {
	FirstEntry *int64 `json:"first_entry"`
	LastEntry  *int64 `json:"last_entry"`
}

// SystemStats is the payload of GET /api/stats.
type SystemStats struct {
	TotalEntries   int            `json:"total_entries"`
	StorageUsedMB  float64        `json:"storage_used_mb"`
	DateRange      StatsDateRange `json:"date_range"`
	Apps           []AppStats     `json:"apps"`
	ActivityByHour []HourCount    `json:"activity_by_hour"`
	MemoryStatus   string         `json:"memory_status"`
	Version        string         `json:"version"`
}

// MaxAppCount returns the largest per-app count, floored at 1 so it can be
// used as a bar-width denominator.
func (s *SystemStats) MaxAppCount() int {
	max := 1
	for _, a := range s.Apps {
		if a.Count > max {
			max = a.Count
		}
	}
	return max
}

// MaxHourlyCount returns the largest hourly count, floored at 1.
func (s *SystemStats) MaxHourlyCount() int {
	max := 1
	for _, h := range s.ActivityByHour {
		if h.Count > max {
			max = h.Count
		}
	}
	return max
}

// IsWorkHour reports whether h falls in the 9–17 (inclusive) highlight band.
func IsWorkHour(h int) bool {
	return h >= 9 && h <= 17
}

// Bucket is the single derived recorder state shown to the user.
type Bucket string

// Recorder state buckets, in precedence order.
const (
	BucketActive   Bucket = "active"
	BucketPaused   Bucket = "paused"
	BucketInactive Bucket = "inactive"
)

// StatusResponse is the payload of GET /api/status.
type StatusResponse struct {
	Status      string `json:"status"`
	Recording   bool   `json:"recording"`
	Paused      bool   `json:"paused"`
	LastCapture *int64 `json:"last_capture"`
	Version     string `json:"version"`
}

// Bucket collapses the status flags into exactly one bucket.
// Precedence: recording, then paused, else inactive.
func (s *StatusResponse) Bucket() Bucket {
	switch {
	case s.Recording:
		return BucketActive
	case s.Paused:
		return BucketPaused
	default:
		return BucketInactive
	}
}

// FormatTimestamp renders a unix-seconds timestamp for display.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}

// RelativeTime renders a unix-seconds timestamp relative to now
// ("just now", "5m ago", "3h ago", "2d ago").
func RelativeTime(ts int64, now time.Time) string {
	d := now.Sub(time.Unix(ts, 0))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
