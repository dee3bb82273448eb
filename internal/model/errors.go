package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrDuplicateName  = errors.New("player already exists")
	ErrEmptyName      = errors.New("player name is empty")
	ErrGameInProgress = errors.New("game is in progress")

	// Configuration errors
	ErrUnknownLanguage = errors.New("unknown language")

	// Word pool errors
	ErrEmptyPool = errors.New("word pool is empty")

	// Snapshot errors
	ErrStateNotFound     = errors.New("no saved game state")
	ErrMalformedState    = errors.New("saved game state is malformed")
	ErrUnsupportedSchema = errors.New("saved game state has an unsupported schema version")
)
