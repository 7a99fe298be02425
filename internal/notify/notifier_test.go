package notify

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/store"
	"taskboard/internal/tracker"
)

type recorded struct {
	level   Level
	message string
	opts    Options
}

type recorder struct {
	alerts []recorded
}

func (r *recorder) Alert(level Level, message string, opts Options) {
	r.alerts = append(r.alerts, recorded{level, message, opts})
}

var today = models.Date{Year: 2026, Month: time.October, Day: 18}

func dueIn(days int) *models.Date {
	d := today.AddDays(days)
	return &d
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreatedAlert(t *testing.T) {
	tests := []struct {
		priority models.Priority
		level    Level
		prefix   string
		icon     string
		class    string
	}{
		{models.PriorityHigh, LevelWarning, "Important task created: ", "⭐", ClassHighPriority},
		{models.PriorityMedium, LevelInfo, "New task created: ", "📝", ClassMediumPriority},
		{models.PriorityLow, LevelInfo, "New task created: ", "📋", ClassLowPriority},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			a := CreatedAlert(models.Task{ID: "t", Title: "X", Priority: tt.priority})
			if a.Level != tt.level {
				t.Errorf("expected level %q, got %q", tt.level, a.Level)
			}
			if a.Message != tt.prefix+"X" {
				t.Errorf("expected message %q, got %q", tt.prefix+"X", a.Message)
			}
			if a.Options.Icon != tt.icon || a.Options.StyleClass != tt.class {
				t.Errorf("expected %s/%s, got %+v", tt.icon, tt.class, a.Options)
			}
		})
	}
}

func TestCompletedAlert(t *testing.T) {
	high := CompletedAlert(models.Task{Title: "Ship", Priority: models.PriorityHigh})
	low := CompletedAlert(models.Task{Title: "Ship", Priority: models.PriorityLow})
	medium := CompletedAlert(models.Task{Title: "Ship", Priority: models.PriorityMedium})

	if high.Level != LevelSuccess || high.Message != "Task completed: Ship" {
		t.Errorf("unexpected high alert: %+v", high)
	}
	if high.Options.StyleClass == low.Options.StyleClass {
		t.Error("expected high priority to have a distinct style class")
	}
	if low.Options != medium.Options {
		t.Errorf("expected medium and low to share styling, got %+v and %+v", medium.Options, low.Options)
	}
}

func TestDueAlerts(t *testing.T) {
	tests := []struct {
		name  string
		task  models.Task
		want  int
		level Level
		class string
	}{
		{"high due today", models.Task{Title: "A", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: dueIn(0)}, 1, LevelWarning, ClassDueUrgent},
		{"high due tomorrow", models.Task{Title: "A", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: dueIn(1)}, 1, LevelInfo, ClassDueSoon},
		{"medium due today", models.Task{Title: "A", Priority: models.PriorityMedium, Status: models.StatusPending, DueDate: dueIn(0)}, 1, LevelInfo, ClassDueToday},
		{"medium due tomorrow", models.Task{Title: "A", Priority: models.PriorityMedium, Status: models.StatusPending, DueDate: dueIn(1)}, 0, "", ""},
		{"low due today", models.Task{Title: "A", Priority: models.PriorityLow, Status: models.StatusPending, DueDate: dueIn(0)}, 0, "", ""},
		{"high due in two days", models.Task{Title: "A", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: dueIn(2)}, 0, "", ""},
		{"high overdue", models.Task{Title: "A", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: dueIn(-1)}, 0, "", ""},
		{"high completed due today", models.Task{Title: "A", Priority: models.PriorityHigh, Status: models.StatusCompleted, DueDate: dueIn(0)}, 0, "", ""},
		{"high without date", models.Task{Title: "A", Priority: models.PriorityHigh, Status: models.StatusPending}, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := DueAlerts([]models.Task{tt.task}, today)
			if len(alerts) != tt.want {
				t.Fatalf("expected %d alerts, got %d: %+v", tt.want, len(alerts), alerts)
			}
			if tt.want == 1 && (alerts[0].Level != tt.level || alerts[0].Options.StyleClass != tt.class) {
				t.Errorf("expected %s/%s, got %+v", tt.level, tt.class, alerts[0])
			}
		})
	}
}

func TestNotifier_SweepScenario(t *testing.T) {
	rec := &recorder{}
	n := New(rec, quietLogger())

	tasks := []models.Task{
		{ID: "A", Title: "Task A", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: dueIn(0)},
		{ID: "B", Title: "Task B", Priority: models.PriorityLow, Status: models.StatusPending, DueDate: dueIn(1)},
	}
	n.HandleEvent(context.Background(), tracker.DueSweep{Today: today, Tasks: tasks})

	if len(rec.alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %+v", rec.alerts)
	}
	got := rec.alerts[0]
	if got.level != LevelWarning || got.message != "Due today: Task A" {
		t.Errorf("unexpected alert: %+v", got)
	}

	// No suppression between sweeps.
	n.HandleEvent(context.Background(), tracker.DueSweep{Today: today, Tasks: tasks})
	if len(rec.alerts) != 2 {
		t.Errorf("expected repeated sweep to alert again, got %d alerts", len(rec.alerts))
	}
}

func TestNotifier_WiredToTracker(t *testing.T) {
	rec := &recorder{}
	n := New(rec, quietLogger())
	now := time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC)

	tr, err := tracker.Open(context.Background(), store.NewMemoryRepository(),
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithEventHandler(n),
		tracker.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("failed to open tracker: %v", err)
	}
	defer tr.Close()
	ctx := context.Background()

	high, err := tr.AddTask(ctx, models.NewTask{ProjectID: "1", Title: "X", Priority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := tr.AddTask(ctx, models.NewTask{ProjectID: "1", Title: "Y", Priority: models.PriorityLow}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if len(rec.alerts) != 2 {
		t.Fatalf("expected 2 creation alerts, got %+v", rec.alerts)
	}
	if rec.alerts[0].message != "Important task created: X" || rec.alerts[0].level != LevelWarning {
		t.Errorf("unexpected high alert: %+v", rec.alerts[0])
	}
	if rec.alerts[1].level != LevelInfo || rec.alerts[1].opts.StyleClass != ClassLowPriority {
		t.Errorf("unexpected low alert: %+v", rec.alerts[1])
	}

	// Complete, then reopen: only the first toggle alerts.
	if err := tr.ToggleTaskStatus(ctx, high.ID); err != nil {
		t.Fatalf("ToggleTaskStatus failed: %v", err)
	}
	if err := tr.ToggleTaskStatus(ctx, high.ID); err != nil {
		t.Fatalf("ToggleTaskStatus failed: %v", err)
	}
	if len(rec.alerts) != 3 {
		t.Fatalf("expected one completion alert, got %+v", rec.alerts[2:])
	}
	if rec.alerts[2].message != "Task completed: X" || rec.alerts[2].opts.StyleClass != ClassCompletedHigh {
		t.Errorf("unexpected completion alert: %+v", rec.alerts[2])
	}

	// Seed: "Go shopping" (medium, tomorrow) and "Prepare presentation"
	// (high, day after). Neither matches a rule today.
	tr.SweepDue(ctx)
	if len(rec.alerts) != 3 {
		t.Errorf("expected no sweep alerts for seed data, got %+v", rec.alerts[3:])
	}
}

func TestFeed_KeepsMostRecent(t *testing.T) {
	f := NewFeed(2)
	f.Alert(LevelInfo, "one", Options{})
	f.Alert(LevelInfo, "two", Options{})
	f.Alert(LevelWarning, "three", Options{Icon: "⏰"})

	got := f.Recent()
	if len(got) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(got))
	}
	if got[0].Message != "two" || got[1].Message != "three" {
		t.Errorf("expected [two three], got [%s %s]", got[0].Message, got[1].Message)
	}
	if got[1].At.IsZero() {
		t.Error("expected alerts to be timestamped")
	}
}

func TestFeed_KeepsAlertOrigin(t *testing.T) {
	feed := NewFeed(10)
	var plain int
	counter := PresenterFunc(func(Level, string, Options) { plain++ })
	n := New(Multi{feed, counter}, quietLogger())

	n.OnTaskCreated(models.Task{ID: "t-1", Title: "X", Priority: models.PriorityHigh})
	n.OnDueSweep([]models.Task{
		{ID: "t-2", Title: "Y", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: dueIn(1)},
	}, today)

	got := feed.Recent()
	if len(got) != 2 {
		t.Fatalf("expected 2 alerts, got %+v", got)
	}
	if got[0].Kind != KindCreated || got[0].TaskID != "t-1" {
		t.Errorf("expected created alert for t-1, got %+v", got[0])
	}
	if got[1].Kind != KindDueTomorrow || got[1].TaskID != "t-2" {
		t.Errorf("expected due-tomorrow alert for t-2, got %+v", got[1])
	}
	if plain != 2 {
		t.Errorf("expected plain presenters to still receive every alert, got %d", plain)
	}
}

func TestTerminalPresenter(t *testing.T) {
	var buf bytes.Buffer
	p := NewTerminalPresenter(&buf)

	p.Alert(LevelWarning, "Due today: Task A", Options{Icon: "⏰", StyleClass: ClassDueUrgent})
	p.Alert(LevelInfo, "plain", Options{})

	out := buf.String()
	if !strings.Contains(out, "⏰ Due today: Task A") {
		t.Errorf("expected icon and message in output, got %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected one line per alert, got %q", out)
	}
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Multi{a, b}.Alert(LevelSuccess, "done", Options{})

	if len(a.alerts) != 1 || len(b.alerts) != 1 {
		t.Errorf("expected both presenters to receive the alert")
	}
}

func TestLogPresenter(t *testing.T) {
	var buf bytes.Buffer
	p := LogPresenter{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	p.Alert(LevelWarning, "Due today: Task A", Options{Icon: "⏰", StyleClass: ClassDueUrgent})

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "style="+ClassDueUrgent) {
		t.Errorf("unexpected log output: %q", out)
	}
}
