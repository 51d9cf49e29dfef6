package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nordvik/glance/internal/apperr"
	"github.com/nordvik/glance/internal/recallservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *recallservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *recallservice.Service) *Handler {
	return &Handler{svc: svc}
}

// parseDateParam parses an optional unix-seconds query parameter.
// Absent or malformed values are treated as unset.
func parseDateParam(v string) *int64 {
	if v == "" {
		return nil
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &ts
}

// ListEntries handles GET /api/entries.
//
//	@Summary		List entries with pagination and optional filters
//	@Tags			entries
//	@Produce		json
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			limit		query		int		false	"Page size (max 200)"
//	@Param			start_date	query		int		false	"Unix seconds lower bound"
//	@Param			end_date	query		int		false	"Unix seconds upper bound"
//	@Param			app			query		string	false	"Filter by application name"
//	@Success		200			{object}	PaginatedResponse
//	@Security		BearerAuth
//	@Router			/entries [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	resp, err := h.svc.Entries(r.Context(), recallservice.EntriesQuery{
		Page:      page,
		Limit:     limit,
		StartDate: parseDateParam(q.Get("start_date")),
		EndDate:   parseDateParam(q.Get("end_date")),
		App:       q.Get("app"),
	})
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetEntry handles GET /api/entries/{id}.
//
//	@Summary		Get a single entry by id
//	@Tags			entries
//	@Produce		json
//	@Param			id	path		int	true	"Entry id"
//	@Success		200	{object}	Entry
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{id} [get]
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid entry id"))
		return
	}
	entry, err := h.svc.Entry(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get entry failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across entries
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results (default 20)"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	resp, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Timeline handles GET /api/timeline.
//
//	@Summary		Get all capture timestamps, newest first
//	@Tags			timeline
//	@Produce		json
//	@Success		200	{object}	TimelineResponse
//	@Security		BearerAuth
//	@Router			/timeline [get]
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Timeline(r.Context())
	if err != nil {
		slog.Error("timeline failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/stats.
//
//	@Summary		Get system statistics
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	SystemStats
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Apps handles GET /api/apps.
//
//	@Summary		List unique applications with counts and categories
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	AppsResponse
//	@Security		BearerAuth
//	@Router			/apps [get]
func (h *Handler) Apps(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Apps(r.Context())
	if err != nil {
		slog.Error("apps failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Status handles GET /api/status.
//
//	@Summary		Get current recorder status
//	@Tags			recorder
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Security		BearerAuth
//	@Router			/status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Status(r.Context())
	if err != nil {
		slog.Error("status failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PauseRecorder handles POST /api/recorder/pause.
//
//	@Summary		Pause capture recording
//	@Tags			recorder
//	@Produce		json
//	@Success		200	{object}	RecorderStateResponse
//	@Security		BearerAuth
//	@Router			/recorder/pause [post]
func (h *Handler) PauseRecorder(w http.ResponseWriter, _ *http.Request) {
	h.svc.Pause()
	writeJSON(w, http.StatusOK, RecorderStateResponse{Status: "paused"})
}

// ResumeRecorder handles POST /api/recorder/resume.
//
//	@Summary		Resume capture recording
//	@Tags			recorder
//	@Produce		json
//	@Success		200	{object}	RecorderStateResponse
//	@Security		BearerAuth
//	@Router			/recorder/resume [post]
func (h *Handler) ResumeRecorder(w http.ResponseWriter, _ *http.Request) {
	h.svc.Resume()
	writeJSON(w, http.StatusOK, RecorderStateResponse{Status: "active"})
}
