package notify

import (
	"context"
	"log/slog"

	"taskboard/internal/models"
	"taskboard/internal/tracker"
)

// Notifier applies the alert policy to tracker events and forwards the
// resulting alerts to a Presenter. It never touches tracker state.
type Notifier struct {
	presenter Presenter
	logger    *slog.Logger
}

// New creates a Notifier that delivers to p.
func New(p Presenter, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{presenter: p, logger: logger}
}

// HandleEvent implements tracker.EventHandler.
func (n *Notifier) HandleEvent(ctx context.Context, e tracker.Event) {
	switch ev := e.(type) {
	case tracker.TaskCreated:
		n.OnTaskCreated(ev.Task)
	case tracker.TaskCompleted:
		n.OnTaskCompleted(ev.Task)
	case tracker.DueSweep:
		n.OnDueSweep(ev.Tasks, ev.Today)
	default:
		n.logger.Debug("ignoring event", "event", tracker.EventName(e))
	}
}

// OnTaskCreated alerts about a new task.
func (n *Notifier) OnTaskCreated(task models.Task) Alert {
	a := CreatedAlert(task)
	n.send(a)
	return a
}

// OnTaskCompleted alerts about a task that moved from pending to completed.
func (n *Notifier) OnTaskCompleted(task models.Task) Alert {
	a := CompletedAlert(task)
	n.send(a)
	return a
}

// OnDueSweep alerts about every task that matches a due-date rule.
func (n *Notifier) OnDueSweep(tasks []models.Task, today models.Date) []Alert {
	alerts := DueAlerts(tasks, today)
	for _, a := range alerts {
		n.send(a)
	}
	return alerts
}

func (n *Notifier) send(a Alert) {
	n.logger.Debug("alert", "kind", a.Kind, "task_id", a.TaskID, "level", a.Level)
	deliver(n.presenter, a)
}
