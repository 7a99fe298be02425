package models

import (
	"testing"
	"time"
)

func TestTaskValidation_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty title should fail",
			task:    Task{Title: "", ProjectID: "1", Priority: PriorityMedium, Status: StatusPending},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "whitespace title should fail",
			task:    Task{Title: "   ", ProjectID: "1", Priority: PriorityMedium, Status: StatusPending},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "empty project ID should fail",
			task:    Task{Title: "Test task", Priority: PriorityMedium, Status: StatusPending},
			wantErr: true,
			errMsg:  "projectId is required",
		},
		{
			name:    "unknown status should fail",
			task:    Task{Title: "Test task", ProjectID: "1", Priority: PriorityMedium, Status: "archived"},
			wantErr: true,
			errMsg:  "status must be 'pending' or 'completed'",
		},
		{
			name:    "valid task should pass",
			task:    Task{Title: "Test task", ProjectID: "1", Priority: PriorityMedium, Status: StatusPending},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				} else if err.Error() != tt.errMsg {
					t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestTaskValidation_PriorityValues(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		wantErr  bool
	}{
		{name: "high priority is valid", priority: PriorityHigh},
		{name: "medium priority is valid", priority: PriorityMedium},
		{name: "low priority is valid", priority: PriorityLow},
		{name: "empty priority should fail", priority: "", wantErr: true},
		{name: "invalid priority should fail", priority: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Title: "Test", ProjectID: "1", Priority: tt.priority, Status: StatusPending}
			err := task.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	tests := []struct {
		priority Priority
		expected int
	}{
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			if got := tt.priority.Rank(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStatus_Toggled(t *testing.T) {
	if got := StatusPending.Toggled(); got != StatusCompleted {
		t.Errorf("expected %q, got %q", StatusCompleted, got)
	}
	if got := StatusCompleted.Toggled(); got != StatusPending {
		t.Errorf("expected %q, got %q", StatusPending, got)
	}
}

func TestTask_IsOverdue(t *testing.T) {
	today := DateOf(time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC))
	yesterday := today.AddDays(-1)
	tomorrow := today.AddDays(1)

	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{
			name:     "past due date and pending is overdue",
			task:     Task{DueDate: &yesterday, Status: StatusPending},
			expected: true,
		},
		{
			name:     "past due date but completed is not overdue",
			task:     Task{DueDate: &yesterday, Status: StatusCompleted},
			expected: false,
		},
		{
			name:     "due today is not overdue",
			task:     Task{DueDate: &today, Status: StatusPending},
			expected: false,
		},
		{
			name:     "future due date is not overdue",
			task:     Task{DueDate: &tomorrow, Status: StatusPending},
			expected: false,
		},
		{
			name:     "no due date is not overdue",
			task:     Task{Status: StatusPending},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(today); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTaskPatch_Apply(t *testing.T) {
	due := Date{Year: 2026, Month: time.May, Day: 1}
	created := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	original := Task{
		ID:          "t1",
		ProjectID:   "1",
		Title:       "Original",
		Description: "keep me",
		DueDate:     &due,
		Priority:    PriorityLow,
		Status:      StatusPending,
		CreatedAt:   created,
	}

	title := "Renamed"
	high := PriorityHigh
	got := TaskPatch{Title: &title, Priority: &high}.Apply(original)

	if got.Title != "Renamed" || got.Priority != PriorityHigh {
		t.Errorf("patched fields not applied: %+v", got)
	}
	if got.Description != "keep me" || got.ID != "t1" || !got.CreatedAt.Equal(created) {
		t.Errorf("absent fields not preserved: %+v", got)
	}
	if got.DueDate == original.DueDate {
		t.Error("expected due date to be copied, not shared")
	}

	cleared := TaskPatch{ClearDueDate: true}.Apply(original)
	if cleared.DueDate != nil {
		t.Errorf("expected due date to be cleared, got %v", cleared.DueDate)
	}
	if original.DueDate == nil {
		t.Error("apply must not modify the original task")
	}
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	if !(TaskPatch{}).IsEmpty() {
		t.Error("expected zero patch to be empty")
	}
	if (TaskPatch{ClearDueDate: true}).IsEmpty() {
		t.Error("expected clear-due-date patch to be non-empty")
	}
}
