package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"taskboard/internal/models"
)

// DefaultKey is the storage identifier the snapshot is saved under.
const DefaultKey = "task-storage"

// snapshotVersion is written into every envelope.
const snapshotVersion = 1

// ErrNotFound is returned by Load when no snapshot has been saved yet.
var ErrNotFound = errors.New("snapshot not found")

// Repository defines the interface for snapshot persistence.
type Repository interface {
	// Load returns the saved snapshot, or ErrNotFound on first run.
	Load(ctx context.Context) (*models.Snapshot, error)
	// Save replaces the saved snapshot. It returns only once the write is durable.
	Save(ctx context.Context, snapshot *models.Snapshot) error
	// Delete drops the saved snapshot so the next Load reports ErrNotFound.
	Delete(ctx context.Context) error

	// Lifecycle
	Close() error
}

// envelope is the on-disk layout shared by every backend.
type envelope struct {
	State   models.Snapshot `json:"state" yaml:"state"`
	Version int             `json:"version" yaml:"version"`
}

func encodeJSON(snapshot *models.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(envelope{State: *snapshot, Version: snapshotVersion}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

func decodeJSON(data []byte) (*models.Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return normalize(&env)
}

func normalize(env *envelope) (*models.Snapshot, error) {
	if env.Version > snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", env.Version)
	}

	s := env.State
	if s.Projects == nil {
		s.Projects = []models.Project{}
	}
	if s.Tasks == nil {
		s.Tasks = []models.Task{}
	}
	s.Filters = s.Filters.WithDefaults()
	return &s, nil
}
