package model

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the coarse state of the game machine
type Phase string

const (
	PhaseSetup    Phase = "SETUP"     // Players being added, nothing running
	PhaseActive   Phase = "ACTIVE"    // Word displayed, timer running
	PhaseVerify   Phase = "VERIFY"    // A player buzzed, moderator decides
	PhaseRoundEnd Phase = "ROUND_END" // Round verified, waiting for next
	PhaseGameOver Phase = "GAME_OVER"
)

// Valid reports whether p is a known phase
func (p Phase) Valid() bool {
	switch p {
	case PhaseSetup, PhaseActive, PhaseVerify, PhaseRoundEnd, PhaseGameOver:
		return true
	}
	return false
}

// InGame reports whether a game is underway and can be ended early
func (p Phase) InGame() bool {
	return p == PhaseActive || p == PhaseVerify || p == PhaseRoundEnd
}

// Language selects which word pool(s) feed the queue
type Language string

const (
	LanguageItalian Language = "IT"
	LanguageEnglish Language = "EN"
	LanguageMixed   Language = "MIX"
)

// Valid reports whether l is a known language
func (l Language) Valid() bool {
	switch l {
	case LanguageItalian, LanguageEnglish, LanguageMixed:
		return true
	}
	return false
}

// ParseLanguage parses a language code case-insensitively
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	return l, nil
}

// InfiniteRounds disables the round cap
const InfiniteRounds = 0

// Defaults for a fresh game
const (
	DefaultTotalRounds = 10
	DefaultLanguage    = LanguageMixed
)

// GameState is the root aggregate of a game
type GameState struct {
	Players         []Player // Always sorted by name
	Phase           Phase
	CurrentWord     string   // Empty when no word is displayed
	CurrentSingerID PlayerID // Set only during PhaseVerify
	TotalRounds     int      // InfiniteRounds means no cap
	CurrentRound    int      // 1-based
	Language        Language
	WordsQueue      []string // Head is CurrentWord

	// Timer: StartTime is authoritative while running, ElapsedTime while stopped
	StartTime      *time.Time
	ElapsedTime    *time.Duration
	IsTimerRunning bool

	ShowUpsideDown bool
}

// NewGameState returns the state of a freshly opened game
func NewGameState() GameState {
	return GameState{
		Players:        []Player{},
		Phase:          PhaseSetup,
		TotalRounds:    DefaultTotalRounds,
		CurrentRound:   1,
		Language:       DefaultLanguage,
		WordsQueue:     []string{},
		ShowUpsideDown: true,
	}
}

// IsCapped reports whether the game has a round limit
func (g GameState) IsCapped() bool {
	return g.TotalRounds != InfiniteRounds
}

// IsLastRound reports whether the current round is the final capped round
func (g GameState) IsLastRound() bool {
	return g.IsCapped() && g.CurrentRound >= g.TotalRounds
}

// GetPlayer returns the player with the given ID, or nil if not found.
// The pointer aliases the Players backing array.
func (g GameState) GetPlayer(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// Elapsed derives the displayed elapsed time at now
func (g GameState) Elapsed(now time.Time) time.Duration {
	if g.IsTimerRunning && g.StartTime != nil {
		return now.Sub(*g.StartTime)
	}
	if g.ElapsedTime != nil {
		return *g.ElapsedTime
	}
	return 0
}

// Clone returns a deep copy safe to hand to other goroutines
func (g GameState) Clone() GameState {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = p.Clone()
	}
	g.Players = players

	queue := make([]string, len(g.WordsQueue))
	copy(queue, g.WordsQueue)
	g.WordsQueue = queue

	if g.StartTime != nil {
		t := *g.StartTime
		g.StartTime = &t
	}
	if g.ElapsedTime != nil {
		d := *g.ElapsedTime
		g.ElapsedTime = &d
	}
	return g
}
