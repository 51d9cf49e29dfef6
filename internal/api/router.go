package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nordvik/glance/internal/recallservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *recallservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Entry feed.
	r.Get("/entries", h.ListEntries)
	r.Get("/entries/{id}", h.GetEntry)

	// Search.
	r.Get("/search", h.Search)

	// Timeline and statistics.
	r.Get("/timeline", h.Timeline)
	r.Get("/stats", h.Stats)
	r.Get("/apps", h.Apps)

	// Recorder status and control.
	r.Get("/status", h.Status)
	r.Post("/recorder/pause", h.PauseRecorder)
	r.Post("/recorder/resume", h.ResumeRecorder)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
