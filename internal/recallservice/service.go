// Package recallservice assembles recall API payloads from the capture index
// and storage, and owns the recorder run state.
package recallservice

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nordvik/glance/internal/index"
	"github.com/nordvik/glance/internal/recall"
	"github.com/nordvik/glance/internal/storage"
)

const (
	// DefaultPageLimit applies when the caller omits or zeroes the limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps any requested page size.
	MaxPageLimit = 200

	// statsTopApps bounds the per-app histogram in the stats payload.
	statsTopApps = 10
)

// Service coordinates the capture index and storage into API responses.
type Service struct {
	store   storage.Provider
	db      index.CaptureIndex
	version string

	mu     sync.Mutex
	active bool
	paused bool
}

// NewService creates a recall service. The recorder starts active.
func NewService(store storage.Provider, db index.CaptureIndex, version string) *Service {
	return &Service{store: store, db: db, version: version, active: true}
}

// EntriesQuery holds the optional filters for Entries.
type EntriesQuery struct {
	Page      int
	Limit     int
	StartDate *int64
	EndDate   *int64
	App       string
}

// Entries returns one page of entries, newest first. Page defaults to 1,
// limit to DefaultPageLimit, capped at MaxPageLimit.
func (s *Service) Entries(_ context.Context, q EntriesQuery) (*recall.PaginatedResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	rows, total, err := s.db.ListPage(page, limit, index.ListFilter{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		App:       q.App,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]recall.Entry, len(rows))
	for i, r := range rows {
		entries[i] = buildEntry(r, now)
	}

	return &recall.PaginatedResponse{
		Entries: entries,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: page*limit < total,
	}, nil
}

// Entry returns a single entry by id, or apperr.ErrNotFound.
func (s *Service) Entry(_ context.Context, id int64) (*recall.Entry, error) {
	row, err := s.db.GetByID(id)
	if err != nil {
		return nil, err
	}
	e := buildEntry(*row, time.Now())
	return &e, nil
}

// Search runs a full-text query and maps hits to scored results.
func (s *Service) Search(_ context.Context, query string, limit int) (*recall.SearchResponse, error) {
	hits, err := s.db.Search(query, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]recall.SearchResult, len(hits))
	for i, h := range hits {
		results[i] = recall.SearchResult{
			Entry:           buildEntry(h.CaptureRow, now),
			SimilarityScore: math.Round(h.Score*10000) / 10000,
		}
	}

	return &recall.SearchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	}, nil
}

// Timeline returns every capture timestamp, newest first, with bounds.
func (s *Service) Timeline(_ context.Context) (*recall.TimelineResponse, error) {
	timestamps, err := s.db.Timestamps()
	if err != nil {
		return nil, err
	}

	resp := &recall.TimelineResponse{
		Timestamps: timestamps,
		TotalCount: len(timestamps),
	}
	if len(timestamps) > 0 {
		// Newest first: end is the head, start the tail.
		start, end := timestamps[len(timestamps)-1], timestamps[0]
		resp.DateRange = recall.DateRange{Start: &start, End: &end}
	}
	return resp, nil
}

// Stats returns system statistics: counts, storage footprint, date bounds,
// top apps and the hourly activity histogram.
func (s *Service) Stats(_ context.Context) (*recall.SystemStats, error) {
	total, err := s.db.TotalCount()
	if err != nil {
		return nil, err
	}
	first, last, err := s.db.Bounds()
	if err != nil {
		return nil, err
	}
	appCounts, err := s.db.AppCounts()
	if err != nil {
		return nil, err
	}
	hourCounts, err := s.db.HourCounts()
	if err != nil {
		return nil, err
	}
	usage, err := s.store.Usage()
	if err != nil {
		return nil, err
	}

	if len(appCounts) > statsTopApps {
		appCounts = appCounts[:statsTopApps]
	}
	apps := make([]recall.AppStats, len(appCounts))
	for i, a := range appCounts {
		apps[i] = recall.AppStats{Name: a.App, Count: a.Count}
	}

	hours := make([]recall.HourCount, len(hourCounts))
	for i, h := range hourCounts {
		hours[i] = recall.HourCount{Hour: h.Hour, Count: h.Count}
	}

	return &recall.SystemStats{
		TotalEntries:   total,
		StorageUsedMB:  math.Round(float64(usage)/(1024*1024)*100) / 100,
		DateRange:      recall.StatsDateRange{FirstEntry: first, LastEntry: last},
		Apps:           apps,
		ActivityByHour: hours,
		MemoryStatus:   s.memoryStatus(),
		Version:        s.version,
	}, nil
}

// Apps returns the unique applications with counts and derived categories.
func (s *Service) Apps(_ context.Context) (*recall.AppsResponse, error) {
	counts, err := s.db.AppCounts()
	if err != nil {
		return nil, err
	}
	apps := make([]recall.AppStats, len(counts))
	for i, c := range counts {
		name := c.App
		if name == "" {
			name = "Unknown"
		}
		apps[i] = recall.AppStats{
			Name:     name,
			Count:    c.Count,
			Category: recall.CategoryFor(name),
		}
	}
	return &recall.AppsResponse{Apps: apps}, nil
}

// Status returns the current recorder status with the newest capture time.
func (s *Service) Status(_ context.Context) (*recall.StatusResponse, error) {
	_, last, err := s.db.Bounds()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	active, paused := s.active, s.paused
	s.mu.Unlock()

	status := "inactive"
	if active {
		status = "active"
	}
	return &recall.StatusResponse{
		Status:      status,
		Recording:   active && !paused,
		Paused:      paused,
		LastCapture: last,
		Version:     s.version,
	}, nil
}

// Pause suspends recording. Idempotent.
func (s *Service) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume restarts recording. Idempotent.
func (s *Service) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

func (s *Service) memoryStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.active && !s.paused:
		return "active"
	case s.paused:
		return "paused"
	default:
		return "inactive"
	}
}

// buildEntry maps an index row to the API entry shape: screenshot URL from
// the sidecar stem, tags derived from app and title, display times rendered
// against now.
func buildEntry(r index.CaptureRow, now time.Time) recall.Entry {
	app := r.App
	if app == "" {
		app = "Unknown"
	}
	return recall.Entry{
		ID:            r.ID,
		App:           app,
		Title:         r.Title,
		Text:          r.Body,
		Timestamp:     r.Timestamp,
		ScreenshotURL: "/static/" + pathStem(r.Path) + ".webp",
		FormattedTime: recall.FormatTimestamp(r.Timestamp),
		RelativeTime:  recall.RelativeTime(r.Timestamp, now),
		Tags:          recall.DeriveTags(app, r.Title),
	}
}

func pathStem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
