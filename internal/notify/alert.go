// Package notify turns tracker events into user-facing alerts and hands
// them to a Presenter. It keeps no state between events.
package notify

import "time"

// Level is the coarse emphasis of an alert.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Kind says which rule produced an alert.
type Kind string

const (
	KindCreated     Kind = "created"
	KindCompleted   Kind = "completed"
	KindDueToday    Kind = "due_today"
	KindDueTomorrow Kind = "due_tomorrow"
)

// Style classes, one per priority/kind combination.
const (
	ClassHighPriority   = "toast-high-priority"
	ClassMediumPriority = "toast-medium-priority"
	ClassLowPriority    = "toast-low-priority"
	ClassCompletedHigh  = "toast-completed-high"
	ClassCompleted      = "toast-completed"
	ClassDueUrgent      = "toast-due-urgent"
	ClassDueSoon        = "toast-due-soon"
	ClassDueToday       = "toast-due-today"
)

// Options carries presentation hints alongside the message.
type Options struct {
	Icon       string `json:"icon"`
	StyleClass string `json:"styleClass"`
}

// Alert is one notification.
type Alert struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Options Options   `json:"options"`
	Kind    Kind      `json:"kind"`
	TaskID  string    `json:"taskId"`
	At      time.Time `json:"at"`
}

// Presenter delivers alerts to the user.
type Presenter interface {
	Alert(level Level, message string, opts Options)
}

// Recorder is implemented by presenters that keep the full alert,
// including the rule and task that produced it.
type Recorder interface {
	Record(a Alert)
}

func deliver(p Presenter, a Alert) {
	if r, ok := p.(Recorder); ok {
		r.Record(a)
		return
	}
	p.Alert(a.Level, a.Message, a.Options)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(level Level, message string, opts Options)

// Alert calls f(level, message, opts).
func (f PresenterFunc) Alert(level Level, message string, opts Options) {
	f(level, message, opts)
}
