package notify

import (
	"fmt"

	"taskboard/internal/models"
)

// CreatedAlert is the alert for a newly created task. Every priority gets
// one; only the wording and styling differ.
func CreatedAlert(task models.Task) Alert {
	a := Alert{
		Level:   LevelInfo,
		Message: fmt.Sprintf("New task created: %s", task.Title),
		Kind:    KindCreated,
		TaskID:  task.ID,
	}

	switch task.Priority {
	case models.PriorityHigh:
		a.Level = LevelWarning
		a.Message = fmt.Sprintf("Important task created: %s", task.Title)
		a.Options = Options{Icon: "⭐", StyleClass: ClassHighPriority}
	case models.PriorityLow:
		a.Options = Options{Icon: "📋", StyleClass: ClassLowPriority}
	default:
		a.Options = Options{Icon: "📝", StyleClass: ClassMediumPriority}
	}
	return a
}

// CompletedAlert is the alert for a task that just moved to completed.
func CompletedAlert(task models.Task) Alert {
	a := Alert{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("Task completed: %s", task.Title),
		Kind:    KindCompleted,
		TaskID:  task.ID,
		Options: Options{Icon: "✅", StyleClass: ClassCompleted},
	}
	if task.Priority == models.PriorityHigh {
		a.Options = Options{Icon: "🏆", StyleClass: ClassCompletedHigh}
	}
	return a
}

// DueAlerts evaluates the due-date rules for each task against today:
//
//	high,   due today    -> warning "Due today"
//	high,   due tomorrow -> info    "Due tomorrow"
//	medium, due today    -> info    "Due today"
//
// Completed and undated tasks are skipped. Nothing is remembered between
// calls.
func DueAlerts(tasks []models.Task, today models.Date) []Alert {
	tomorrow := today.AddDays(1)

	var alerts []Alert
	for _, task := range tasks {
		if !task.IsPending() || task.DueDate == nil {
			continue
		}
		due := *task.DueDate

		switch {
		case task.Priority == models.PriorityHigh && due == today:
			alerts = append(alerts, Alert{
				Level:   LevelWarning,
				Message: fmt.Sprintf("Due today: %s", task.Title),
				Kind:    KindDueToday,
				TaskID:  task.ID,
				Options: Options{Icon: "⏰", StyleClass: ClassDueUrgent},
			})
		case task.Priority == models.PriorityHigh && due == tomorrow:
			alerts = append(alerts, Alert{
				Level:   LevelInfo,
				Message: fmt.Sprintf("Due tomorrow: %s", task.Title),
				Kind:    KindDueTomorrow,
				TaskID:  task.ID,
				Options: Options{Icon: "📅", StyleClass: ClassDueSoon},
			})
		case task.Priority == models.PriorityMedium && due == today:
			alerts = append(alerts, Alert{
				Level:   LevelInfo,
				Message: fmt.Sprintf("Due today: %s", task.Title),
				Kind:    KindDueToday,
				TaskID:  task.ID,
				Options: Options{Icon: "📅", StyleClass: ClassDueToday},
			})
		}
	}
	return alerts
}
