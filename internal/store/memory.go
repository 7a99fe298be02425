package store

import (
	"context"
	"sync"

	"taskboard/internal/models"
)

// MemoryRepository keeps the snapshot in process memory.
// The snapshot is stored encoded so callers never share slices with it.
type MemoryRepository struct {
	mu    sync.Mutex
	data  []byte
	saves int

	// FailSave, when non-nil, is returned by Save instead of writing.
	FailSave error
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load returns the last saved snapshot.
func (r *MemoryRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data == nil {
		return nil, ErrNotFound
	}
	return decodeJSON(r.data)
}

// Save replaces the stored snapshot.
func (r *MemoryRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailSave != nil {
		return r.FailSave
	}

	data, err := encodeJSON(snapshot)
	if err != nil {
		return err
	}
	r.data = data
	r.saves++
	return nil
}

// Delete forgets the stored snapshot.
func (r *MemoryRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = nil
	return nil
}

// Saves returns how many times Save has succeeded.
func (r *MemoryRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// Close is a no-op.
func (r *MemoryRepository) Close() error {
	return nil
}
