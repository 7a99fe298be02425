package tracker

import (
	"context"
	"strings"

	"taskboard/internal/models"
)

// AddProject creates a project with a generated id.
func (t *Tracker) AddProject(ctx context.Context, name string) (models.Project, error) {
	project := models.Project{Name: strings.TrimSpace(name)}
	if err := project.Validate(); err != nil {
		return models.Project{}, invalid(err)
	}

	err := t.mutate(ctx, "add_project", func(next *models.Snapshot) (bool, []Event, error) {
		id, err := t.uniqueID(func(id string) bool { return indexProject(next, id) >= 0 })
		if err != nil {
			return false, nil, err
		}
		project.ID = id
		next.Projects = append(next.Projects, project)
		return true, nil, nil
	})
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// UpdateProject renames the project with id. Unknown ids are ignored.
func (t *Tracker) UpdateProject(ctx context.Context, id, name string) error {
	renamed := models.Project{ID: id, Name: strings.TrimSpace(name)}
	if err := renamed.Validate(); err != nil {
		return invalid(err)
	}

	return t.mutate(ctx, "update_project", func(next *models.Snapshot) (bool, []Event, error) {
		i := indexProject(next, id)
		if i < 0 || next.Projects[i].Name == renamed.Name {
			return false, nil, nil
		}
		next.Projects[i] = renamed
		return true, nil, nil
	})
}

// DeleteProject removes the project with id together with every task that
// belongs to it, in one persisted transition. Unknown ids are ignored.
func (t *Tracker) DeleteProject(ctx context.Context, id string) error {
	return t.mutate(ctx, "delete_project", func(next *models.Snapshot) (bool, []Event, error) {
		i := indexProject(next, id)
		if i < 0 {
			return false, nil, nil
		}
		next.Projects = append(next.Projects[:i], next.Projects[i+1:]...)

		kept := next.Tasks[:0]
		for _, task := range next.Tasks {
			if task.ProjectID != id {
				kept = append(kept, task)
			}
		}
		next.Tasks = kept
		return true, nil, nil
	})
}

// Projects returns all projects in insertion order.
func (t *Tracker) Projects() []models.Project {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Project, len(t.state.Projects))
	copy(out, t.state.Projects)
	return out
}

// ProjectByID looks up a project.
func (t *Tracker) ProjectByID(id string) (models.Project, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := indexProject(t.state, id); i >= 0 {
		return t.state.Projects[i], true
	}
	return models.Project{}, false
}

func indexProject(s *models.Snapshot, id string) int {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return i
		}
	}
	return -1
}
