package api

import (
	"github.com/nordvik/glance/internal/recall"
)

// Response payload types (aliased from the domain layer so swag picks them up).
type (
	// Entry is a single capture record.
	Entry = recall.Entry
	// PaginatedResponse wraps a page of entries.
	PaginatedResponse = recall.PaginatedResponse
	// SearchResponse wraps scored search results.
	SearchResponse = recall.SearchResponse
	// TimelineResponse wraps the full timestamp timeline.
	TimelineResponse = recall.TimelineResponse
	// SystemStats is the system statistics payload.
	SystemStats = recall.SystemStats
	// AppsResponse wraps the per-app histogram.
	AppsResponse = recall.AppsResponse
	// StatusResponse is the recorder status payload.
	StatusResponse = recall.StatusResponse
)

// RecorderStateResponse is returned by the recorder control endpoints.
type RecorderStateResponse struct {
	Status string `json:"status" example:"paused" validate:"required"`
}
