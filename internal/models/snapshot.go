package models

import "fmt"

// Snapshot is the complete persisted state of the tracker.
type Snapshot struct {
	Projects []Project    `json:"projects" yaml:"projects"`
	Tasks    []Task       `json:"tasks" yaml:"tasks"`
	Filters  FilterConfig `json:"filters" yaml:"filters"`
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Projects: make([]Project, len(s.Projects)),
		Tasks:    make([]Task, len(s.Tasks)),
		Filters:  s.Filters,
	}
	copy(out.Projects, s.Projects)
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Validate checks every record and that ids are present and unique within
// their collection.
func (s *Snapshot) Validate() error {
	projectIDs := make(map[string]bool, len(s.Projects))
	for i := range s.Projects {
		p := &s.Projects[i]
		if p.ID == "" {
			return fmt.Errorf("project %d: id is required", i)
		}
		if projectIDs[p.ID] {
			return fmt.Errorf("project %s: duplicate id", p.ID)
		}
		projectIDs[p.ID] = true
		if err := p.Validate(); err != nil {
			return fmt.Errorf("project %s: %w", p.ID, err)
		}
	}

	taskIDs := make(map[string]bool, len(s.Tasks))
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.ID == "" {
			return fmt.Errorf("task %d: id is required", i)
		}
		if taskIDs[t.ID] {
			return fmt.Errorf("task %s: duplicate id", t.ID)
		}
		taskIDs[t.ID] = true
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
	}

	if err := s.Filters.Validate(); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	return nil
}
