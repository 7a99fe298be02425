// Package tracker holds the in-memory task/project state, applies
// mutations with write-through persistence, answers filtered and sorted
// views, and emits domain events for the notifier.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"taskboard/internal/models"
	"taskboard/internal/store"
)

var (
	// ErrInvalidInput wraps validation failures on mutation input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPersist wraps a failed snapshot write. The mutation is not applied.
	ErrPersist = errors.New("failed to persist snapshot")
)

// Tracker is the single source of truth for projects, tasks and filters.
// It is safe for concurrent use; events are dispatched synchronously on the
// calling goroutine after the mutation is persisted.
type Tracker struct {
	mu    sync.Mutex
	repo  store.Repository
	state *models.Snapshot

	now      func() time.Time
	newID    func() string
	locale   language.Tag
	seed     func(now time.Time) *models.Snapshot
	handlers []EventHandler
	logger   *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source used for createdAt and "today".
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// WithLocale sets the collation locale used when sorting by title.
func WithLocale(tag language.Tag) Option {
	return func(t *Tracker) { t.locale = tag }
}

// WithSeed replaces the data written on first run.
func WithSeed(seed func(now time.Time) *models.Snapshot) Option {
	return func(t *Tracker) { t.seed = seed }
}

// WithEventHandler registers a consumer of domain events.
func WithEventHandler(h EventHandler) Option {
	return func(t *Tracker) { t.handlers = append(t.handlers, h) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// Open hydrates a Tracker from repo. When the repository holds no snapshot
// the seed data is written and used instead.
func Open(ctx context.Context, repo store.Repository, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
		locale: language.English,
		seed:   DefaultSeed,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	snapshot, err := repo.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		snapshot = t.seed(t.now())
		if err := repo.Save(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("%w: seed: %w", ErrPersist, err)
		}
		t.logger.Info("seeded default data",
			"projects", len(snapshot.Projects),
			"tasks", len(snapshot.Tasks))
	case err != nil:
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	t.state = snapshot
	return t, nil
}

// Close releases the repository.
func (t *Tracker) Close() error {
	return t.repo.Close()
}

// mutateFunc edits next in place. It reports whether anything changed and
// which events to emit once the change is durable.
type mutateFunc func(next *models.Snapshot) (changed bool, events []Event, err error)

// mutate runs fn against a copy of the state, saves the copy and only then
// makes it current. A failed save leaves the current state untouched.
func (t *Tracker) mutate(ctx context.Context, op string, fn mutateFunc) error {
	t.mu.Lock()

	next := t.state.Clone()
	changed, events, err := fn(next)
	if err != nil || !changed {
		t.mu.Unlock()
		return err
	}

	if err := t.repo.Save(ctx, next); err != nil {
		t.mu.Unlock()
		t.logger.Error("snapshot write failed", "op", op, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrPersist, op, err)
	}
	t.state = next
	t.mu.Unlock()

	t.logger.Debug("state updated", "op", op)
	t.emit(ctx, events)
	return nil
}

func (t *Tracker) emit(ctx context.Context, events []Event) {
	for _, e := range events {
		for _, h := range t.handlers {
			h.HandleEvent(ctx, e)
		}
	}
}

// uniqueID draws ids until one is not taken.
func (t *Tracker) uniqueID(taken func(id string) bool) (string, error) {
	for i := 0; i < 5; i++ {
		if id := t.newID(); id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", errors.New("failed to generate a unique id")
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Snapshot returns a copy of the full current state.
func (t *Tracker) Snapshot() *models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Today returns the current calendar date from the tracker clock.
func (t *Tracker) Today() models.Date {
	return models.DateOf(t.now())
}
