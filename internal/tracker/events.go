package tracker

import (
	"context"

	"taskboard/internal/models"
)

// Event is a domain event emitted after a mutation has been persisted.
type Event interface {
	eventName() string
}

// TaskCreated is emitted by AddTask with the stored record.
type TaskCreated struct {
	Task models.Task
}

// TaskCompleted is emitted when a toggle moves a task from pending to
// completed. Task holds the record as it was before the toggle.
type TaskCompleted struct {
	Task models.Task
}

// DueSweep is emitted by SweepDue. Tasks holds every pending task that has
// a due date, in stored order.
type DueSweep struct {
	Today models.Date
	Tasks []models.Task
}

func (TaskCreated) eventName() string   { return "task_created" }
func (TaskCompleted) eventName() string { return "task_completed" }
func (DueSweep) eventName() string      { return "due_sweep" }

// EventName returns a stable name for logging.
func EventName(e Event) string {
	return e.eventName()
}

// EventHandler consumes domain events.
type EventHandler interface {
	HandleEvent(ctx context.Context, e Event)
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, e Event)

// HandleEvent calls f(ctx, e).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, e Event) {
	f(ctx, e)
}
