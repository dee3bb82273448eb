package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/storage"
	"github.com/mcoot/singhit/internal/storage/sqlite/migrations"
)

// Storage keeps the snapshot as one row of the snapshots table
type Storage struct {
	db  *sql.DB
	key string
}

// New opens the database at path, applies migrations and returns a storage
// for the record named key
func New(ctx context.Context, path, key string) (*Storage, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, err
	}
	return NewWithDB(db, key), nil
}

// NewWithDB wraps an already migrated database
func NewWithDB(db *sql.DB, key string) *Storage {
	return &Storage{db: db, key: key}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveState(ctx context.Context, state *model.GameState) error {
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, version, data, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (key) DO UPDATE SET
			version = excluded.version,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		s.key, storage.SchemaVersion, string(data))
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (s *Storage) LoadState(ctx context.Context) (*model.GameState, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE key = ?`, s.key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrStateNotFound
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return storage.Decode([]byte(data))
}

func (s *Storage) DeleteState(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}
