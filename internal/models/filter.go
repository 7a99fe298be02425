package models

import "errors"

// StatusFilter selects tasks by status. "all" disables the filter.
type StatusFilter string

const (
	StatusAll             StatusFilter = "all"
	StatusFilterPending   StatusFilter = StatusFilter(StatusPending)
	StatusFilterCompleted StatusFilter = StatusFilter(StatusCompleted)
)

// PriorityFilter selects tasks by priority. "all" disables the filter.
type PriorityFilter string

const PriorityAll PriorityFilter = "all"

// SortKey names the ordering applied to task views.
type SortKey string

const (
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
)

// FilterConfig is the active status/priority/sort criteria for task queries.
type FilterConfig struct {
	Status   StatusFilter   `json:"status" yaml:"status"`
	Priority PriorityFilter `json:"priority" yaml:"priority"`
	SortBy   SortKey        `json:"sortBy" yaml:"sortBy"`
}

// DefaultFilters returns the configuration used before any change.
func DefaultFilters() FilterConfig {
	return FilterConfig{
		Status:   StatusAll,
		Priority: PriorityAll,
		SortBy:   SortByDueDate,
	}
}

// WithDefaults returns f with every empty criterion taken from
// DefaultFilters.
func (f FilterConfig) WithDefaults() FilterConfig {
	def := DefaultFilters()
	if f.Status == "" {
		f.Status = def.Status
	}
	if f.Priority == "" {
		f.Priority = def.Priority
	}
	if f.SortBy == "" {
		f.SortBy = def.SortBy
	}
	return f
}

// Validate checks that every criterion holds a known value.
func (f *FilterConfig) Validate() error {
	switch f.Status {
	case StatusAll, StatusFilterPending, StatusFilterCompleted:
	default:
		return errors.New("status filter must be 'all', 'pending', or 'completed'")
	}

	if f.Priority != PriorityAll && !Priority(f.Priority).Valid() {
		return errors.New("priority filter must be 'all', 'low', 'medium', or 'high'")
	}

	switch f.SortBy {
	case SortByDueDate, SortByPriority, SortByTitle:
	default:
		return errors.New("sortBy must be 'dueDate', 'priority', or 'title'")
	}

	return nil
}

// Matches reports whether t passes the status and priority criteria.
func (f *FilterConfig) Matches(t *Task) bool {
	if f.Status != StatusAll && Status(f.Status) != t.Status {
		return false
	}
	if f.Priority != PriorityAll && Priority(f.Priority) != t.Priority {
		return false
	}
	return true
}

// FilterPatch changes only the criteria it sets.
type FilterPatch struct {
	Status   *StatusFilter   `json:"status,omitempty"`
	Priority *PriorityFilter `json:"priority,omitempty"`
	SortBy   *SortKey        `json:"sortBy,omitempty"`
}

// Apply returns f with the patch merged over it.
func (p FilterPatch) Apply(f FilterConfig) FilterConfig {
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	return f
}
