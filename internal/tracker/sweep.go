package tracker

import (
	"context"

	"taskboard/internal/models"
)

// SweepDue collects the pending tasks that have a due date and emits them
// as a DueSweep event stamped with today's date. It keeps no record of
// earlier sweeps, so calling it again re-emits the same tasks.
func (t *Tracker) SweepDue(ctx context.Context) DueSweep {
	t.mu.Lock()
	sweep := DueSweep{Today: models.DateOf(t.now())}
	for _, task := range t.state.Tasks {
		if task.IsPending() && task.DueDate != nil {
			sweep.Tasks = append(sweep.Tasks, task.Clone())
		}
	}
	t.mu.Unlock()

	t.logger.Debug("due sweep", "today", sweep.Today, "candidates", len(sweep.Tasks))
	t.emit(ctx, []Event{sweep})
	return sweep
}
