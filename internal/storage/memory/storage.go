package memory

import (
	"context"
	"sync"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It keeps the encoded snapshot so callers never share state with it.
type Storage struct {
	mu   sync.RWMutex
	data []byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveState(ctx context.Context, state *model.GameState) error {
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *Storage) LoadState(ctx context.Context) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, model.ErrStateNotFound
	}
	return storage.Decode(s.data)
}

func (s *Storage) DeleteState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// Raw returns the encoded snapshot, or nil when empty
func (s *Storage) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// SetRaw replaces the encoded snapshot without validation
func (s *Storage) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

func (s *Storage) Close() error {
	return nil
}
