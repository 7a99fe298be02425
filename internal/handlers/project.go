package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type projectRequest struct {
	Name string `json:"name"`
}

// ListProjects returns every project in insertion order.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.tracker.Projects())
}

// GetProject returns a single project.
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.tracker.ProjectByID(chi.URLParam(r, "id"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "project not found")
		return
	}
	h.respondJSON(w, http.StatusOK, project)
}

// CreateProject creates a new project.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	project, err := h.tracker.AddProject(r.Context(), req.Name)
	if err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, project)
}

// UpdateProject renames a project.
func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.tracker.ProjectByID(id); !ok {
		h.respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.tracker.UpdateProject(r.Context(), id, req.Name); err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	project, _ := h.tracker.ProjectByID(id)
	h.respondJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project and all of its tasks.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.tracker.ProjectByID(id); !ok {
		h.respondError(w, http.StatusNotFound, "project not found")
		return
	}

	if err := h.tracker.DeleteProject(r.Context(), id); err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProjectTasks returns the project's tasks under the current filters.
func (h *Handlers) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.tracker.ProjectByID(id); !ok {
		h.respondError(w, http.StatusNotFound, "project not found")
		return
	}
	h.respondJSON(w, http.StatusOK, h.tracker.TasksByProject(id))
}
