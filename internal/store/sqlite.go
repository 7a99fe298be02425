package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"taskboard/internal/models"
)

// SQLiteRepository implements the Repository interface using SQLite.
// The snapshot is stored as a single JSON blob in the snapshots table.
type SQLiteRepository struct {
	db  *sql.DB
	key string
	sq  sq.StatementBuilderType
}

// NewSQLiteRepository opens (and migrates) the database at dbPath and
// stores the snapshot under key.
func NewSQLiteRepository(dbPath, key string) (*SQLiteRepository, error) {
	if key == "" {
		key = DefaultKey
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if err := migrate(context.Background(), db, builder); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		key: key,
		sq:  builder,
	}, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Load retrieves the snapshot stored under the repository key.
func (r *SQLiteRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	query, args, err := r.sq.Select("data").From("snapshots").Where(sq.Eq{"key": r.key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var data []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return decodeJSON(data)
}

// Save writes the snapshot, replacing any previous one under the same key.
func (r *SQLiteRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	data, err := encodeJSON(snapshot)
	if err != nil {
		return err
	}

	query, args, err := r.sq.Insert("snapshots").
		Columns("key", "data", "updated_at").
		Values(r.key, data, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Delete removes the row for this repository's key.
func (r *SQLiteRepository) Delete(ctx context.Context) error {
	query, args, err := r.sq.Delete("snapshots").Where(sq.Eq{"key": r.key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
