package tracker

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskboard/internal/models"
)

// SetFilters merges patch into the active filter configuration.
func (t *Tracker) SetFilters(ctx context.Context, patch models.FilterPatch) error {
	return t.mutate(ctx, "set_filters", func(next *models.Snapshot) (bool, []Event, error) {
		merged := patch.Apply(next.Filters)
		if err := merged.Validate(); err != nil {
			return false, nil, invalid(err)
		}
		if merged == next.Filters {
			return false, nil, nil
		}
		next.Filters = merged
		return true, nil, nil
	})
}

// Filters returns the active filter configuration.
func (t *Tracker) Filters() models.FilterConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Filters
}

// AllTasks returns every task that passes the active filters, sorted by
// the active sort key.
func (t *Tracker) AllTasks() []models.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return view(t.state.Tasks, t.state.Filters, t.locale, func(*models.Task) bool { return true })
}

// TasksByProject is AllTasks scoped to one project.
func (t *Tracker) TasksByProject(projectID string) []models.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return view(t.state.Tasks, t.state.Filters, t.locale, func(task *models.Task) bool {
		return task.ProjectID == projectID
	})
}

// view filters then sorts copies of tasks. The input slice is not modified.
func view(tasks []models.Task, filters models.FilterConfig, locale language.Tag, scope func(*models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if scope(&tasks[i]) && filters.Matches(&tasks[i]) {
			out = append(out, tasks[i].Clone())
		}
	}

	if less := lessFunc(filters.SortBy, out, locale); less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

func lessFunc(key models.SortKey, tasks []models.Task, locale language.Tag) func(i, j int) bool {
	switch key {
	case models.SortByDueDate:
		// Undated tasks go last.
		return func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return a.Before(*b)
		}
	case models.SortByPriority:
		return func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		}
	case models.SortByTitle:
		// A Collator keeps internal buffers, so each view gets its own.
		c := collate.New(locale)
		return func(i, j int) bool {
			return c.CompareString(tasks[i].Title, tasks[j].Title) < 0
		}
	default:
		return nil
	}
}
