package storage

import (
	"context"

	"github.com/mcoot/singhit/internal/model"
)

// DefaultKey is the fixed identifier the game snapshot is stored under
const DefaultKey = "canta-parola-storage"

// Storage defines the interface for game snapshot persistence.
// Each backend holds exactly one named record.
type Storage interface {
	// SaveState replaces the stored snapshot
	SaveState(ctx context.Context, state *model.GameState) error

	// LoadState returns the stored snapshot, or model.ErrStateNotFound.
	// Unreadable records are reported wrapping model.ErrMalformedState or
	// model.ErrUnsupportedSchema.
	LoadState(ctx context.Context) (*model.GameState, error)

	// DeleteState removes the stored snapshot; deleting nothing is not an error
	DeleteState(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
