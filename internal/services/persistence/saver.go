package persistence

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/storage"
)

// DefaultWriteTimeout bounds a single background write
const DefaultWriteTimeout = 5 * time.Second

// Saver writes snapshots in the background. Only the most recent pending
// snapshot is kept, so a slow backend never stalls the game and never
// writes stale state after newer state.
type Saver struct {
	store  storage.Storage
	logger *slog.Logger

	pending chan model.GameState
	done    chan struct{}

	mu      sync.Mutex
	closed  bool
	started bool
	failed  int
}

// NewSaver creates a saver for store. Call Start before saving.
func NewSaver(store storage.Storage, logger *slog.Logger) *Saver {
	return &Saver{
		store:   store,
		logger:  logger.With(slog.String("component", "persistence")),
		pending: make(chan model.GameState, 1),
		done:    make(chan struct{}),
	}
}

// Start launches the background writer
func (s *Saver) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.run()
}

// Save queues state for writing, replacing any snapshot not yet written.
// The caller must not mutate state afterwards.
func (s *Saver) Save(state model.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	// Drain a stale snapshot so the new one always fits
	select {
	case <-s.pending:
	default:
	}
	s.pending <- state
}

// Failures returns how many writes have failed so far
func (s *Saver) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Close stops accepting snapshots and waits for the last one to be written
// or for ctx to expire
func (s *Saver) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	started := s.started
	close(s.pending)
	s.mu.Unlock()

	if !started {
		// Flush inline when the writer never ran
		for state := range s.pending {
			s.write(state)
		}
		return nil
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Saver) run() {
	defer close(s.done)
	for state := range s.pending {
		s.write(state)
	}
}

func (s *Saver) write(state model.GameState) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultWriteTimeout)
	defer cancel()

	if err := s.store.SaveState(ctx, &state); err != nil {
		s.mu.Lock()
		s.failed++
		s.mu.Unlock()
		s.logger.Warn("snapshot write failed",
			slog.String("phase", string(state.Phase)),
			slog.Any("error", err))
		return
	}
	s.logger.Debug("snapshot written",
		slog.String("phase", string(state.Phase)),
		slog.Int("round", state.CurrentRound))
}

// Restore loads the stored snapshot. A missing or unreadable record yields
// a fresh default state; unreadable records are logged.
func Restore(ctx context.Context, store storage.Storage, logger *slog.Logger) model.GameState {
	logger = logger.With(slog.String("component", "persistence"))

	state, err := store.LoadState(ctx)
	if err != nil {
		if errors.Is(err, model.ErrStateNotFound) {
			logger.Info("no saved game, starting fresh")
		} else {
			logger.Warn("saved game unreadable, starting fresh", slog.Any("error", err))
		}
		return model.NewGameState()
	}

	logger.Info("saved game restored",
		slog.String("phase", string(state.Phase)),
		slog.Int("players", len(state.Players)),
		slog.Int("round", state.CurrentRound))
	return *state
}
