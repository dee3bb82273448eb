package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/storage"
)

// Storage keeps the snapshot in a single JSON file. Writes go through a
// temporary file and rename so a crash never leaves a torn record.
type Storage struct {
	path string
}

// New creates a file storage rooted at path. The parent directory is
// created on first save.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Path returns the snapshot file location
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) SaveState(ctx context.Context, state *model.GameState) error {
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

func (s *Storage) LoadState(ctx context.Context) (*model.GameState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrStateNotFound
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	return storage.Decode(data)
}

func (s *Storage) DeleteState(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing state file: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
