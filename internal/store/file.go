package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"taskboard/internal/models"
)

const lockTimeout = 3 * time.Second

// FileRepository keeps the snapshot in a single JSON or YAML file, chosen
// by extension. A sibling ".lock" file guards it against other processes.
type FileRepository struct {
	path     string
	yaml     bool
	fileLock *flock.Flock
}

// NewFileRepository creates a repository for the file at path.
// The parent directory is created if needed.
func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, errors.New("snapshot path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	return &FileRepository{
		path:     path,
		yaml:     ext == ".yaml" || ext == ".yml",
		fileLock: flock.New(path + ".lock"),
	}, nil
}

// Load reads the snapshot file.
func (r *FileRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	unlock, err := r.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}

	if r.yaml {
		return DecodeYAML(data)
	}
	return decodeJSON(data)
}

// Save writes the snapshot atomically through a temp file and rename.
func (r *FileRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	var (
		data []byte
		err  error
	)
	if r.yaml {
		data, err = EncodeYAML(snapshot)
	} else {
		data, err = encodeJSON(snapshot)
	}
	if err != nil {
		return err
	}

	unlock, err := r.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	tmpFile := r.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, r.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Delete removes the snapshot file.
func (r *FileRepository) Delete(ctx context.Context) error {
	unlock, err := r.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Close removes the lock file.
func (r *FileRepository) Close() error {
	_ = os.Remove(r.path + ".lock")
	return nil
}

func (r *FileRepository) lock(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := r.fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, errors.New("could not acquire file lock")
	}
	return func() { _ = r.fileLock.Unlock() }, nil
}

// DecodeJSON parses the persisted JSON layout.
func DecodeJSON(data []byte) (*models.Snapshot, error) {
	return decodeJSON(data)
}

// EncodeJSON renders a snapshot in the persisted JSON layout.
func EncodeJSON(snapshot *models.Snapshot) ([]byte, error) {
	return encodeJSON(snapshot)
}

// EncodeYAML renders a snapshot in the persisted layout as YAML.
func EncodeYAML(snapshot *models.Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(envelope{State: *snapshot, Version: snapshotVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// DecodeYAML parses a YAML snapshot file.
func DecodeYAML(data []byte) (*models.Snapshot, error) {
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return normalize(&env)
}
