// Package handlers exposes the tracker as a JSON API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"taskboard/internal/notify"
	"taskboard/internal/tracker"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	tracker *tracker.Tracker
	feed    *notify.Feed
	logger  *slog.Logger
}

// New creates a new Handlers instance. feed may be nil, in which case
// GET /api/alerts returns an empty list.
func New(t *tracker.Tracker, feed *notify.Feed, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		tracker: t,
		feed:    feed,
		logger:  logger,
	}
}

// Router builds the chi router with every API route mounted.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Get("/board", h.Board)

		// Project routes
		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.CreateProject)
		r.Get("/projects/{id}", h.GetProject)
		r.Put("/projects/{id}", h.UpdateProject)
		r.Delete("/projects/{id}", h.DeleteProject)
		r.Get("/projects/{id}/tasks", h.ListProjectTasks)
		r.Post("/projects/{id}/tasks", h.CreateTask)

		// Task routes
		r.Get("/tasks", h.ListTasks)
		r.Get("/tasks/{id}", h.GetTask)
		r.Patch("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
		r.Post("/tasks/{id}/toggle", h.ToggleTask)

		// Filters and alerts
		r.Get("/filters", h.GetFilters)
		r.Put("/filters", h.SetFilters)
		r.Post("/sweep", h.Sweep)
		r.Get("/alerts", h.ListAlerts)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// respondError sends an error response.
func (h *Handlers) respondError(w http.ResponseWriter, code int, message string) {
	h.respondJSON(w, code, errorResponse{Error: message})
}

// respondTrackerError maps tracker errors to status codes.
func (h *Handlers) respondTrackerError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, tracker.ErrInvalidInput) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("internal server error",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err)
	h.respondError(w, http.StatusInternalServerError, "internal server error")
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
