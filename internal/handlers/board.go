package handlers

import (
	"net/http"

	"taskboard/internal/models"
)

// BoardProject is one project with its visible tasks.
type BoardProject struct {
	models.Project
	Tasks        []models.Task `json:"tasks"`
	PendingCount int           `json:"pendingCount"`
	OverdueCount int           `json:"overdueCount"`
}

// BoardData is the overview returned by GET /api/board.
type BoardData struct {
	Today    models.Date         `json:"today"`
	Filters  models.FilterConfig `json:"filters"`
	Projects []BoardProject      `json:"projects"`
}

// Board returns every project with its tasks under the current filters.
// Pending and overdue counts ignore the filters.
func (h *Handlers) Board(w http.ResponseWriter, r *http.Request) {
	today := h.tracker.Today()
	snapshot := h.tracker.Snapshot()

	data := BoardData{
		Today:    today,
		Filters:  snapshot.Filters,
		Projects: make([]BoardProject, 0, len(snapshot.Projects)),
	}
	for _, p := range snapshot.Projects {
		bp := BoardProject{Project: p, Tasks: h.tracker.TasksByProject(p.ID)}
		for i := range snapshot.Tasks {
			task := &snapshot.Tasks[i]
			if task.ProjectID != p.ID || !task.IsPending() {
				continue
			}
			bp.PendingCount++
			if task.IsOverdue(today) {
				bp.OverdueCount++
			}
		}
		data.Projects = append(data.Projects, bp)
	}

	h.respondJSON(w, http.StatusOK, data)
}
