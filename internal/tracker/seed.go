package tracker

import (
	"time"

	"taskboard/internal/models"
)

// DefaultSeed is the data a fresh install starts with: two projects and one
// task in each, due tomorrow and the day after.
func DefaultSeed(now time.Time) *models.Snapshot {
	today := models.DateOf(now)
	tomorrow := today.AddDays(1)
	dayAfter := today.AddDays(2)

	return &models.Snapshot{
		Projects: []models.Project{
			{ID: "1", Name: "Personal"},
			{ID: "2", Name: "Work"},
		},
		Tasks: []models.Task{
			{
				ID:          "1",
				ProjectID:   "1",
				Title:       "Go shopping",
				Description: "Buy groceries for the week",
				DueDate:     &tomorrow,
				Priority:    models.PriorityMedium,
				Status:      models.StatusPending,
				CreatedAt:   now,
			},
			{
				ID:          "2",
				ProjectID:   "2",
				Title:       "Prepare presentation",
				Description: "Finish the slides for Monday's meeting",
				DueDate:     &dayAfter,
				Priority:    models.PriorityHigh,
				Status:      models.StatusPending,
				CreatedAt:   now,
			},
		},
		Filters: models.DefaultFilters(),
	}
}

// EmptySeed starts with no projects or tasks.
func EmptySeed(time.Time) *models.Snapshot {
	return &models.Snapshot{
		Projects: []models.Project{},
		Tasks:    []models.Task{},
		Filters:  models.DefaultFilters(),
	}
}
