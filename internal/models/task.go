package models

import (
	"errors"
	"strings"
	"time"
)

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Rank returns the severity of p used for sorting: low=1, medium=2, high=3.
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// Task represents a single task within a project.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	ProjectID   string    `json:"projectId" yaml:"projectId"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	DueDate     *Date     `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}

	if t.ProjectID == "" {
		return errors.New("projectId is required")
	}

	if !t.Priority.Valid() {
		return errors.New("priority must be 'high', 'medium', or 'low'")
	}

	if !t.Status.Valid() {
		return errors.New("status must be 'pending' or 'completed'")
	}

	return nil
}

// IsPending returns true if the task has not been completed.
func (t *Task) IsPending() bool {
	return t.Status == StatusPending
}

// IsOverdue returns true if the task is pending and its due date is before today.
func (t *Task) IsOverdue(today Date) bool {
	if !t.IsPending() || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(today)
}

// Clone returns a copy of t that shares no pointers with it.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// NewTask is the caller-supplied input for creating a task.
// Status is optional; when nil the task starts pending.
type NewTask struct {
	ProjectID   string
	Title       string
	Description string
	DueDate     *Date
	Priority    Priority
	Status      *Status
}

// TaskPatch lists the task fields an update may replace.
// Nil fields are left untouched.
type TaskPatch struct {
	ProjectID    *string
	Title        *string
	Description  *string
	DueDate      *Date
	ClearDueDate bool
	Priority     *Priority
	Status       *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.ProjectID == nil && p.Title == nil && p.Description == nil &&
		p.DueDate == nil && !p.ClearDueDate && p.Priority == nil && p.Status == nil
}

// Apply returns t with the patch merged over it.
func (p TaskPatch) Apply(t Task) Task {
	t = t.Clone()
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}
