package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/singhit/internal/config"
	"github.com/mcoot/singhit/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == config.OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == config.OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == config.OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case PlayerView:
		o.printPlayer(v)
	case []PlayerView:
		o.printPlayers(v)
	case StatusView:
		o.printStatus(v)
	case LeaderboardView:
		o.printLeaderboard(v)
	case ActionResult:
		o.printActionResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerView is the printable form of a player
type PlayerView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	TotalTimeMs int64  `json:"total_time_ms"`
}

// StatusView is the printable form of the game state
type StatusView struct {
	Phase          string       `json:"phase"`
	Round          int          `json:"round"`
	TotalRounds    *int         `json:"total_rounds"`
	Language       string       `json:"language"`
	Word           *string      `json:"word"`
	Singer         *string      `json:"singer"`
	ElapsedMs      int64        `json:"elapsed_ms"`
	TimerRunning   bool         `json:"timer_running"`
	ShowUpsideDown bool         `json:"show_upside_down"`
	QueueLength    int          `json:"queue_length"`
	Players        []PlayerView `json:"players"`
}

// LeaderboardView is the ranking with the winner, if any
type LeaderboardView struct {
	Ranking []PlayerView `json:"ranking"`
	Winner  *string      `json:"winner"`
}

// ActionResult reports whether an action changed the game
type ActionResult struct {
	Action  string     `json:"action"`
	Applied bool       `json:"applied"`
	State   StatusView `json:"state"`
}

func newPlayerView(p model.Player) PlayerView {
	return PlayerView{
		ID:          string(p.ID),
		Name:        p.Name,
		Score:       p.Score,
		TotalTimeMs: p.TotalTime.Milliseconds(),
	}
}

func newPlayerViews(players []model.Player) []PlayerView {
	views := make([]PlayerView, len(players))
	for i, p := range players {
		views[i] = newPlayerView(p)
	}
	return views
}

func newStatusView(state model.GameState, elapsed time.Duration) StatusView {
	view := StatusView{
		Phase:          string(state.Phase),
		Round:          state.CurrentRound,
		Language:       string(state.Language),
		ElapsedMs:      elapsed.Milliseconds(),
		TimerRunning:   state.IsTimerRunning,
		ShowUpsideDown: state.ShowUpsideDown,
		QueueLength:    len(state.WordsQueue),
		Players:        newPlayerViews(state.Players),
	}
	if state.IsCapped() {
		rounds := state.TotalRounds
		view.TotalRounds = &rounds
	}
	if state.CurrentWord != "" {
		word := state.CurrentWord
		view.Word = &word
	}
	if singer := state.GetPlayer(state.CurrentSingerID); singer != nil {
		name := singer.Name
		view.Singer = &name
	}
	return view
}

func newLeaderboardView(ranking []model.Player, winner model.Player, hasWinner bool) LeaderboardView {
	view := LeaderboardView{Ranking: newPlayerViews(ranking)}
	if hasWinner {
		name := winner.Name
		view.Winner = &name
	}
	return view
}

func formatElapsed(ms int64) string {
	return fmt.Sprintf("%d.%01ds", ms/1000, (ms%1000)/100)
}

func (o *Output) printPlayer(p PlayerView) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Name, p.ID)
}

func (o *Output) printPlayers(players []PlayerView) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}
	fmt.Fprintf(o.w, "Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Fprintf(o.w, "  - %s (%s) score %d, time %s\n", p.Name, p.ID, p.Score, formatElapsed(p.TotalTimeMs))
	}
}

func (o *Output) printStatus(s StatusView) {
	rounds := "∞"
	if s.TotalRounds != nil {
		rounds = fmt.Sprint(*s.TotalRounds)
	}
	fmt.Fprintf(o.w, "Phase: %s\n", s.Phase)
	fmt.Fprintf(o.w, "Round: %d/%s  Language: %s\n", s.Round, rounds, s.Language)

	if s.Word != nil {
		fmt.Fprintf(o.w, "Word: %s\n", strings.ToUpper(*s.Word))
	}
	if s.Singer != nil {
		fmt.Fprintf(o.w, "Singer: %s\n", *s.Singer)
	}
	if s.Phase != string(model.PhaseSetup) {
		state := "stopped"
		if s.TimerRunning {
			state = "running"
		}
		fmt.Fprintf(o.w, "Timer: %s (%s)\n", formatElapsed(s.ElapsedMs), state)
	}

	fmt.Fprintln(o.w)
	o.printPlayers(s.Players)
}

func (o *Output) printLeaderboard(l LeaderboardView) {
	if len(l.Ranking) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}
	fmt.Fprintln(o.w, "Leaderboard:")
	for i, p := range l.Ranking {
		fmt.Fprintf(o.w, "  %d. %s: %d points (%s)\n", i+1, p.Name, p.Score, formatElapsed(p.TotalTimeMs))
	}
	if l.Winner != nil {
		fmt.Fprintf(o.w, "\nWinner: %s\n", *l.Winner)
	} else {
		fmt.Fprintln(o.w, "\nNo winner")
	}
}

func (o *Output) printActionResult(r ActionResult) {
	if !r.Applied {
		fmt.Fprintf(o.w, "%s: ignored in phase %s\n", r.Action, r.State.Phase)
		return
	}
	o.printStatus(r.State)
}
