package handlers

import (
	"net/http"

	"taskboard/internal/models"
	"taskboard/internal/notify"
)

// GetFilters returns the active filter configuration.
func (h *Handlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.tracker.Filters())
}

// SetFilters merges a partial filter configuration.
func (h *Handlers) SetFilters(w http.ResponseWriter, r *http.Request) {
	var patch models.FilterPatch
	if err := decodeBody(r, &patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.tracker.SetFilters(r.Context(), patch); err != nil {
		h.respondTrackerError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.tracker.Filters())
}

type sweepResponse struct {
	Today  models.Date    `json:"today"`
	Alerts []notify.Alert `json:"alerts"`
}

// Sweep runs the due-date check and returns the alerts it produced.
func (h *Handlers) Sweep(w http.ResponseWriter, r *http.Request) {
	sweep := h.tracker.SweepDue(r.Context())

	alerts := notify.DueAlerts(sweep.Tasks, sweep.Today)
	if alerts == nil {
		alerts = []notify.Alert{}
	}
	h.respondJSON(w, http.StatusOK, sweepResponse{Today: sweep.Today, Alerts: alerts})
}

// ListAlerts returns the recent alerts, oldest first.
func (h *Handlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		h.respondJSON(w, http.StatusOK, []notify.Alert{})
		return
	}
	h.respondJSON(w, http.StatusOK, h.feed.Recent())
}
