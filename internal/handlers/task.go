package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
)

type createTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *models.Date    `json:"dueDate"`
	Priority    models.Priority `json:"priority"`
	Status      *models.Status  `json:"status"`
}

// updateTaskRequest keeps dueDate raw so that an explicit null clears the
// date while an absent key leaves it alone.
type updateTaskRequest struct {
	ProjectID   *string          `json:"projectId"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     json.RawMessage  `json:"dueDate"`
	Priority    *models.Priority `json:"priority"`
	Status      *models.Status   `json:"status"`
}

func (req updateTaskRequest) patch() (models.TaskPatch, error) {
	p := models.TaskPatch{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	switch {
	case req.DueDate == nil:
	case bytes.Equal(req.DueDate, []byte("null")):
		p.ClearDueDate = true
	default:
		var due models.Date
		if err := json.Unmarshal(req.DueDate, &due); err != nil {
			return p, err
		}
		p.DueDate = &due
	}
	return p, nil
}

// ListTasks returns every task under the current filters.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.tracker.AllTasks())
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.tracker.TaskByID(chi.URLParam(r, "id"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "task not found")
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// CreateTask creates a new task for a project.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if _, ok := h.tracker.ProjectByID(projectID); !ok {
		h.respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var req createTaskRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.tracker.AddTask(r.Context(), models.NewTask{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.tracker.TaskByID(id); !ok {
		h.respondError(w, http.StatusNotFound, "task not found")
		return
	}

	var req updateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	patch, err := req.patch()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid dueDate")
		return
	}

	if err := h.tracker.UpdateTask(r.Context(), id, patch); err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	task, _ := h.tracker.TaskByID(id)
	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.tracker.TaskByID(id); !ok {
		h.respondError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.tracker.DeleteTask(r.Context(), id); err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleTask flips a task between pending and completed.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.tracker.TaskByID(id); !ok {
		h.respondError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.tracker.ToggleTaskStatus(r.Context(), id); err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	task, _ := h.tracker.TaskByID(id)
	h.respondJSON(w, http.StatusOK, task)
}
