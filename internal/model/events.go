package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Setup events
	EventPlayerAdded     EventType = "player_added"
	EventPlayerRemoved   EventType = "player_removed"
	EventSettingsChanged EventType = "settings_changed"

	// Game events
	EventGameStarted      EventType = "game_started"
	EventPlayerBuzzed     EventType = "player_buzzed"
	EventAnswerVerified   EventType = "answer_verified"
	EventVerifyCancelled  EventType = "verify_cancelled"
	EventRoundStarted     EventType = "round_started"
	EventWordSkipped      EventType = "word_skipped"
	EventQueueReplenished EventType = "queue_replenished"
	EventTimerChanged     EventType = "timer_changed"
	EventGameOver         EventType = "game_over"
	EventGameReset        EventType = "game_reset"
)

// Event is published after every applied transition
type Event struct {
	Type      EventType
	Timestamp time.Time
	State     GameState // Snapshot after the transition
	Payload   any       // Type-specific data
}

// PlayerPayload identifies the player an event is about
type PlayerPayload struct {
	PlayerID PlayerID
	Name     string
}

// VerdictPayload contains data for answer verified events
type VerdictPayload struct {
	PlayerID PlayerID
	Correct  bool
	Elapsed  time.Duration
}

// ReplenishPayload contains data for queue replenished events
type ReplenishPayload struct {
	Language Language
	Added    int
}
