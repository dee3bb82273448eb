package model

import "time"

// PlayerID uniquely identifies a player within a game
type PlayerID string

// Player represents a game participant
type Player struct {
	ID        PlayerID
	Name      string
	Score     int           // May go negative
	TotalTime time.Duration // Time charged for correct answers only

	// FirstCorrectAt is stamped on the player's first correct answer
	FirstCorrectAt *time.Time
}

// ResetStats zeroes the per-game statistics
func (p *Player) ResetStats() {
	p.Score = 0
	p.TotalTime = 0
	p.FirstCorrectAt = nil
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	if p.FirstCorrectAt != nil {
		t := *p.FirstCorrectAt
		p.FirstCorrectAt = &t
	}
	return p
}
