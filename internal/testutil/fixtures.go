package testutil

import (
	"time"

	"github.com/mcoot/singhit/internal/model"
)

// VerifyingState returns a mid-game snapshot in the verify phase with a
// frozen timer. All instants are millisecond aligned so they survive encoding.
func VerifyingState() model.GameState {
	firstCorrect := Epoch.Add(-2 * time.Minute)
	elapsed := 4250 * time.Millisecond

	return model.GameState{
		Players: []model.Player{
			{ID: "p-alice", Name: "Alice", Score: 2, TotalTime: 7300 * time.Millisecond, FirstCorrectAt: &firstCorrect},
			{ID: "p-bob", Name: "Bob", Score: -1},
		},
		Phase:           model.PhaseVerify,
		CurrentWord:     "amore",
		CurrentSingerID: "p-bob",
		TotalRounds:     5,
		CurrentRound:    3,
		Language:        model.LanguageItalian,
		WordsQueue:      []string{"amore", "sole", "mare"},
		ElapsedTime:     &elapsed,
		ShowUpsideDown:  true,
	}
}

// RunningState returns an active snapshot whose timer started at Epoch
func RunningState() model.GameState {
	start := Epoch
	return model.GameState{
		Players:        []model.Player{{ID: "p-alice", Name: "Alice"}},
		Phase:          model.PhaseActive,
		CurrentWord:    "love",
		TotalRounds:    model.InfiniteRounds,
		CurrentRound:   7,
		Language:       model.LanguageEnglish,
		WordsQueue:     []string{"love", "night"},
		StartTime:      &start,
		IsTimerRunning: true,
	}
}
