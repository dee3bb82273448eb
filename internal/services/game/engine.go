package game

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mcoot/singhit/internal/dependencies/clock"
	"github.com/mcoot/singhit/internal/dependencies/random"
	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/services/scoring"
	"github.com/mcoot/singhit/internal/services/wordpool"
)

// Saver receives a detached snapshot after every applied action
type Saver interface {
	Save(state model.GameState)
}

// Publisher receives an event after every applied action
type Publisher interface {
	Publish(event model.Event)
}

// Engine owns the game state and applies actions to it. Every action runs
// as one critical section; invalid actions leave the state untouched.
type Engine struct {
	mu    sync.Mutex
	state model.GameState

	words     wordpool.ServiceInterface
	scoring   *scoring.Service
	clock     clock.Clock
	random    random.Random
	saver     Saver
	publisher Publisher
	logger    *slog.Logger

	// Neither is safe for concurrent use; both are guarded by mu
	collator *collate.Collator
	folder   cases.Caser
}

// NewEngine creates an engine starting from initial. saver and publisher
// may be nil.
func NewEngine(
	initial model.GameState,
	words wordpool.ServiceInterface,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	saver Saver,
	publisher Publisher,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		state:     initial.Clone(),
		words:     words,
		scoring:   scoringService,
		clock:     clock,
		random:    random,
		saver:     saver,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "game")),
		collator:  collate.New(language.Italian),
		folder:    cases.Fold(),
	}
}

// Snapshot returns a deep copy of the current state
func (e *Engine) Snapshot() model.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Elapsed returns the timer value to display right now
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Elapsed(e.clock.Now())
}

// Leaderboard returns the players ranked by score then time
func (e *Engine) Leaderboard() []model.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scoring.Rank(e.state.Players)
}

// Winner returns the top-ranked player when they scored above zero
func (e *Engine) Winner() (model.Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scoring.DetermineWinner(e.state.Players)
}

// SetTotalRounds sets the round cap before the game starts.
// model.InfiniteRounds removes the cap; negative values are ignored.
func (e *Engine) SetTotalRounds(rounds int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseSetup || rounds < 0 {
		e.rejected("set_total_rounds")
		return false
	}
	e.state.TotalRounds = rounds
	e.commit(model.EventSettingsChanged, nil)
	return true
}

// SetLanguage selects the word pool before the game starts
func (e *Engine) SetLanguage(lang model.Language) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseSetup || !lang.Valid() {
		e.rejected("set_language")
		return false
	}
	e.state.Language = lang
	e.commit(model.EventSettingsChanged, nil)
	return true
}

// ToggleShowUpsideDown flips the display preference
func (e *Engine) ToggleShowUpsideDown() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ShowUpsideDown = !e.state.ShowUpsideDown
	e.commit(model.EventSettingsChanged, nil)
	return true
}

// StartGame deals a fresh queue and starts round one
func (e *Engine) StartGame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseSetup || len(e.state.Players) == 0 {
		e.rejected("start_game")
		return false
	}

	queue := e.words.Shuffled(e.state.Language)
	if len(queue) == 0 {
		e.logger.Error("cannot start game with an empty word pool",
			slog.String("language", string(e.state.Language)))
		return false
	}

	for i := range e.state.Players {
		e.state.Players[i].ResetStats()
	}
	e.state.WordsQueue = queue
	e.state.CurrentWord = queue[0]
	e.state.CurrentSingerID = ""
	e.state.CurrentRound = 1
	e.state.Phase = model.PhaseActive
	e.restartTimer(e.clock.Now())

	e.logger.Info("game started",
		slog.Int("player_count", len(e.state.Players)),
		slog.String("language", string(e.state.Language)),
		slog.Int("total_rounds", e.state.TotalRounds),
		slog.Int("queue_size", len(queue)))

	e.commit(model.EventGameStarted, nil)
	return true
}

// BuzzPlayer records id as the singer and freezes the timer.
// Only the first buzz of a round is accepted.
func (e *Engine) BuzzPlayer(id model.PlayerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseActive {
		e.rejected("buzz_player")
		return false
	}
	player := e.state.GetPlayer(id)
	if player == nil {
		e.rejected("buzz_player")
		return false
	}

	e.freezeTimer(e.clock.Now())
	e.state.CurrentSingerID = id
	e.state.Phase = model.PhaseVerify

	e.commit(model.EventPlayerBuzzed, model.PlayerPayload{PlayerID: id, Name: player.Name})
	return true
}

// VerifyAnswer scores the singer and ends the round, or the game on its
// final capped round
func (e *Engine) VerifyAnswer(correct bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseVerify {
		e.rejected("verify_answer")
		return false
	}
	singer := e.state.GetPlayer(e.state.CurrentSingerID)
	if singer == nil {
		e.rejected("verify_answer")
		return false
	}

	now := e.clock.Now()
	elapsed := e.freezeTimer(now)
	e.scoring.ApplyVerdict(singer, correct, elapsed, now)

	payload := model.VerdictPayload{PlayerID: singer.ID, Correct: correct, Elapsed: elapsed}
	e.logger.Info("answer verified",
		slog.String("player_id", string(singer.ID)),
		slog.Bool("correct", correct),
		slog.Duration("elapsed", elapsed),
		slog.Int("round", e.state.CurrentRound))

	e.state.CurrentSingerID = ""
	if e.state.IsLastRound() {
		e.state.Phase = model.PhaseGameOver
		e.commit(model.EventAnswerVerified, payload)
		e.finish()
		return true
	}

	e.state.Phase = model.PhaseRoundEnd
	e.commit(model.EventAnswerVerified, payload)
	return true
}

// CancelVerify discards the buzz and resumes the round where it paused
func (e *Engine) CancelVerify() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseVerify {
		e.rejected("cancel_verify")
		return false
	}

	e.state.CurrentSingerID = ""
	e.state.Phase = model.PhaseActive
	e.resumeTimer(e.clock.Now())

	e.commit(model.EventVerifyCancelled, nil)
	return true
}

// NextRound moves on to a new word, or ends a capped game on its last round
func (e *Engine) NextRound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseRoundEnd {
		e.rejected("next_round")
		return false
	}

	if e.state.IsLastRound() {
		e.state.Phase = model.PhaseGameOver
		e.state.CurrentSingerID = ""
		e.freezeTimer(e.clock.Now())
		e.commit(model.EventGameOver, nil)
		e.finish()
		return true
	}

	e.advanceQueue()
	e.state.CurrentRound++
	e.state.CurrentSingerID = ""
	e.state.Phase = model.PhaseActive
	e.restartTimer(e.clock.Now())

	e.commit(model.EventRoundStarted, nil)
	return true
}

// SkipWord replaces the displayed word without changing the round
func (e *Engine) SkipWord() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseActive {
		e.rejected("skip_word")
		return false
	}

	e.advanceQueue()
	e.restartTimer(e.clock.Now())

	e.commit(model.EventWordSkipped, nil)
	return true
}

// EndGameEarly stops a game in progress
func (e *Engine) EndGameEarly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Phase.InGame() {
		e.rejected("end_game_early")
		return false
	}

	e.freezeTimer(e.clock.Now())
	e.state.CurrentSingerID = ""
	e.state.Phase = model.PhaseGameOver

	e.logger.Info("game ended early", slog.Int("round", e.state.CurrentRound))
	e.commit(model.EventGameOver, nil)
	e.finish()
	return true
}

// ResetGame discards everything, players included
func (e *Engine) ResetGame() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = model.NewGameState()
	e.logger.Info("game reset")
	e.commit(model.EventGameReset, nil)
	return true
}

// RestartGameWithSamePlayers returns to setup keeping the roster with
// zeroed statistics
func (e *Engine) RestartGameWithSamePlayers() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	players := e.state.Players
	for i := range players {
		players[i].ResetStats()
	}
	e.state = model.NewGameState()
	e.state.Players = players

	e.logger.Info("game restarted", slog.Int("player_count", len(players)))
	e.commit(model.EventGameReset, nil)
	return true
}

// StopTimer freezes a running timer; a stopped timer is left alone
func (e *Engine) StopTimer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.IsTimerRunning {
		return false
	}
	e.freezeTimer(e.clock.Now())
	e.commit(model.EventTimerChanged, nil)
	return true
}

// ToggleTimer pauses or resumes the timer during a round
func (e *Engine) ToggleTimer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseActive {
		e.rejected("toggle_timer")
		return false
	}

	now := e.clock.Now()
	if e.state.IsTimerRunning {
		e.freezeTimer(now)
	} else {
		e.resumeTimer(now)
	}
	e.commit(model.EventTimerChanged, nil)
	return true
}

// finish logs the outcome of a game that just reached GAME_OVER
func (e *Engine) finish() {
	winner, ok := e.scoring.DetermineWinner(e.state.Players)
	if !ok {
		e.logger.Info("game over without a winner", slog.Int("rounds_played", e.state.CurrentRound))
		return
	}
	e.logger.Info("game over",
		slog.String("winner_id", string(winner.ID)),
		slog.String("winner", winner.Name),
		slog.Int("score", winner.Score),
		slog.Int("rounds_played", e.state.CurrentRound))
}

// commit hands detached snapshots to the saver and subscribers.
// Must be called with mu held.
func (e *Engine) commit(eventType model.EventType, payload any) {
	if e.saver != nil {
		e.saver.Save(e.state.Clone())
	}
	e.publish(eventType, payload)
}

func (e *Engine) publish(eventType model.EventType, payload any) {
	if e.publisher == nil {
		return
	}
	e.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: e.clock.Now(),
		State:     e.state.Clone(),
		Payload:   payload,
	})
}

func (e *Engine) rejected(action string) {
	e.logger.Debug("action ignored",
		slog.String("action", action),
		slog.String("phase", string(e.state.Phase)))
}

// Interface for dependency injection
type EngineInterface interface {
	Snapshot() model.GameState
	Elapsed() time.Duration
	Leaderboard() []model.Player
	Winner() (model.Player, bool)
	AddPlayer(name string) (model.PlayerID, error)
	RemovePlayer(id model.PlayerID) bool
	FindPlayer(name string) (model.Player, bool)
	SetTotalRounds(rounds int) bool
	SetLanguage(lang model.Language) bool
	ToggleShowUpsideDown() bool
	StartGame() bool
	BuzzPlayer(id model.PlayerID) bool
	VerifyAnswer(correct bool) bool
	CancelVerify() bool
	NextRound() bool
	SkipWord() bool
	EndGameEarly() bool
	ResetGame() bool
	RestartGameWithSamePlayers() bool
	StopTimer() bool
	ToggleTimer() bool
}

var _ EngineInterface = (*Engine)(nil)
