package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcoot/singhit/internal/model"
)

// SchemaVersion is written into every snapshot. Version 0 is the
// unversioned layout; it has the same fields and is still accepted.
const SchemaVersion = 1

type envelope struct {
	State   *stateRecord `json:"state"`
	Version int          `json:"version"`
}

type playerRecord struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Score                int    `json:"score"`
	TotalTime            int64  `json:"totalTime"` // ms
	FirstCorrectAnswerAt *int64 `json:"firstCorrectAnswerAt,omitempty"`
}

type stateRecord struct {
	Players         []playerRecord `json:"players"`
	CurrentPhase    string         `json:"currentPhase"`
	CurrentWord     *string        `json:"currentWord"`
	CurrentSingerID *string        `json:"currentSingerId"`
	TotalRounds     *int           `json:"totalRounds"` // null is infinite
	CurrentRound    int            `json:"currentRound"`
	Language        string         `json:"language"`
	WordsQueue      []string       `json:"wordsQueue"`
	StartTime       *int64         `json:"startTime"`   // unix ms
	ElapsedTime     *int64         `json:"elapsedTime"` // ms
	IsTimerRunning  bool           `json:"isTimerRunning"`
	ShowUpsideDown  bool           `json:"showUpsideDown"`
}

// Encode serializes a snapshot with the current schema version
func Encode(state *model.GameState) ([]byte, error) {
	rec := &stateRecord{
		Players:        make([]playerRecord, 0, len(state.Players)),
		CurrentPhase:   string(state.Phase),
		CurrentRound:   state.CurrentRound,
		Language:       string(state.Language),
		WordsQueue:     state.WordsQueue,
		IsTimerRunning: state.IsTimerRunning,
		ShowUpsideDown: state.ShowUpsideDown,
	}
	if rec.WordsQueue == nil {
		rec.WordsQueue = []string{}
	}

	for _, p := range state.Players {
		pr := playerRecord{
			ID:        string(p.ID),
			Name:      p.Name,
			Score:     p.Score,
			TotalTime: p.TotalTime.Milliseconds(),
		}
		if p.FirstCorrectAt != nil {
			ms := p.FirstCorrectAt.UnixMilli()
			pr.FirstCorrectAnswerAt = &ms
		}
		rec.Players = append(rec.Players, pr)
	}

	if state.CurrentWord != "" {
		word := state.CurrentWord
		rec.CurrentWord = &word
	}
	if state.CurrentSingerID != "" {
		singer := string(state.CurrentSingerID)
		rec.CurrentSingerID = &singer
	}
	if state.IsCapped() {
		rounds := state.TotalRounds
		rec.TotalRounds = &rounds
	}
	if state.StartTime != nil {
		ms := state.StartTime.UnixMilli()
		rec.StartTime = &ms
	}
	if state.ElapsedTime != nil {
		ms := state.ElapsedTime.Milliseconds()
		rec.ElapsedTime = &ms
	}

	return json.Marshal(envelope{State: rec, Version: SchemaVersion})
}

// Decode parses a snapshot written by Encode or by the unversioned layout.
// Timer fields are normalized so exactly one of StartTime and ElapsedTime is
// authoritative, and a singer is only kept while verifying.
func Decode(data []byte) (*model.GameState, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedState, err)
	}
	if env.Version < 0 || env.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", model.ErrUnsupportedSchema, env.Version)
	}
	rec := env.State
	if rec == nil {
		return nil, fmt.Errorf("%w: missing state", model.ErrMalformedState)
	}

	state := model.GameState{
		Players:        make([]model.Player, 0, len(rec.Players)),
		Phase:          model.Phase(rec.CurrentPhase),
		TotalRounds:    model.InfiniteRounds,
		CurrentRound:   rec.CurrentRound,
		Language:       model.Language(rec.Language),
		WordsQueue:     rec.WordsQueue,
		IsTimerRunning: rec.IsTimerRunning,
		ShowUpsideDown: rec.ShowUpsideDown,
	}
	if !state.Phase.Valid() {
		return nil, fmt.Errorf("%w: unknown phase %q", model.ErrMalformedState, rec.CurrentPhase)
	}
	if !state.Language.Valid() {
		return nil, fmt.Errorf("%w: unknown language %q", model.ErrMalformedState, rec.Language)
	}
	if state.CurrentRound < 1 {
		return nil, fmt.Errorf("%w: round %d", model.ErrMalformedState, rec.CurrentRound)
	}
	if state.WordsQueue == nil {
		state.WordsQueue = []string{}
	}

	if rec.TotalRounds != nil {
		if *rec.TotalRounds < 1 {
			return nil, fmt.Errorf("%w: total rounds %d", model.ErrMalformedState, *rec.TotalRounds)
		}
		state.TotalRounds = *rec.TotalRounds
	}

	for _, pr := range rec.Players {
		if pr.ID == "" {
			return nil, fmt.Errorf("%w: player without id", model.ErrMalformedState)
		}
		p := model.Player{
			ID:        model.PlayerID(pr.ID),
			Name:      pr.Name,
			Score:     pr.Score,
			TotalTime: time.Duration(pr.TotalTime) * time.Millisecond,
		}
		if pr.FirstCorrectAnswerAt != nil {
			t := time.UnixMilli(*pr.FirstCorrectAnswerAt).UTC()
			p.FirstCorrectAt = &t
		}
		state.Players = append(state.Players, p)
	}

	if rec.CurrentWord != nil {
		state.CurrentWord = *rec.CurrentWord
	}

	if state.Phase == model.PhaseVerify {
		if rec.CurrentSingerID == nil || state.GetPlayer(model.PlayerID(*rec.CurrentSingerID)) == nil {
			return nil, fmt.Errorf("%w: verifying without a singer", model.ErrMalformedState)
		}
		state.CurrentSingerID = model.PlayerID(*rec.CurrentSingerID)
	}

	if state.IsTimerRunning {
		if rec.StartTime == nil {
			return nil, fmt.Errorf("%w: running timer without start time", model.ErrMalformedState)
		}
		t := time.UnixMilli(*rec.StartTime).UTC()
		state.StartTime = &t
	} else if rec.ElapsedTime != nil && state.Phase != model.PhaseSetup {
		d := time.Duration(*rec.ElapsedTime) * time.Millisecond
		state.ElapsedTime = &d
	}

	return &state, nil
}
