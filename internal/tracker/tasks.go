package tracker

import (
	"context"
	"errors"

	"taskboard/internal/models"
)

// AddTask creates a task from in. The id and createdAt are always assigned
// here; priority defaults to medium and status to pending unless in sets it.
// The project must exist at creation time.
func (t *Tracker) AddTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	task := models.Task{
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      models.StatusPending,
	}
	if in.DueDate != nil {
		due := *in.DueDate
		task.DueDate = &due
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, invalid(err)
	}

	err := t.mutate(ctx, "add_task", func(next *models.Snapshot) (bool, []Event, error) {
		if indexProject(next, task.ProjectID) < 0 {
			return false, nil, invalid(errors.New("project does not exist"))
		}

		id, err := t.uniqueID(func(id string) bool { return indexTask(next, id) >= 0 })
		if err != nil {
			return false, nil, err
		}
		task.ID = id
		task.CreatedAt = t.now()

		next.Tasks = append(next.Tasks, task)
		return true, []Event{TaskCreated{Task: task.Clone()}}, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask merges patch onto the task with id. Unknown ids are ignored.
// The project reference is not re-validated.
func (t *Tracker) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	return t.mutate(ctx, "update_task", func(next *models.Snapshot) (bool, []Event, error) {
		i := indexTask(next, id)
		if i < 0 {
			return false, nil, nil
		}

		updated := patch.Apply(next.Tasks[i])
		if err := updated.Validate(); err != nil {
			return false, nil, invalid(err)
		}
		next.Tasks[i] = updated
		return true, nil, nil
	})
}

// DeleteTask removes the task with id. Unknown ids are ignored.
func (t *Tracker) DeleteTask(ctx context.Context, id string) error {
	return t.mutate(ctx, "delete_task", func(next *models.Snapshot) (bool, []Event, error) {
		i := indexTask(next, id)
		if i < 0 {
			return false, nil, nil
		}
		next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
		return true, nil, nil
	})
}

// ToggleTaskStatus flips the task between pending and completed, touching
// no other field. Only the pending to completed direction emits
// TaskCompleted. Unknown ids are ignored.
func (t *Tracker) ToggleTaskStatus(ctx context.Context, id string) error {
	return t.mutate(ctx, "toggle_task", func(next *models.Snapshot) (bool, []Event, error) {
		i := indexTask(next, id)
		if i < 0 {
			return false, nil, nil
		}

		before := next.Tasks[i].Clone()
		next.Tasks[i].Status = before.Status.Toggled()

		var events []Event
		if before.Status == models.StatusPending {
			events = append(events, TaskCompleted{Task: before})
		}
		return true, events, nil
	})
}

// TaskByID looks up a task.
func (t *Tracker) TaskByID(id string) (models.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := indexTask(t.state, id); i >= 0 {
		return t.state.Tasks[i].Clone(), true
	}
	return models.Task{}, false
}

func indexTask(s *models.Snapshot, id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
