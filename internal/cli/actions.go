package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/services/game"
)

// action is one game action reachable from both "singhit game" and the
// interactive loop
type action struct {
	name    string
	args    string // usage of the positional arguments
	nargs   int
	short   string
	aliases []string
	run     func(e game.EngineInterface, args []string) (bool, error)
}

var actions = []action{
	{
		name:  "start",
		short: "Start the game with the current players",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.StartGame(), nil },
	},
	{
		name:  "buzz",
		args:  "<player>",
		nargs: 1,
		short: "A player claims to have guessed the word",
		run: func(e game.EngineInterface, args []string) (bool, error) {
			p, err := resolvePlayer(e, args[0])
			if err != nil {
				return false, err
			}
			return e.BuzzPlayer(p.ID), nil
		},
	},
	{
		name:    "verify",
		args:    "<yes|no>",
		nargs:   1,
		short:   "Judge the buzzing player's answer",
		aliases: []string{"judge"},
		run: func(e game.EngineInterface, args []string) (bool, error) {
			correct, err := parseVerdict(args[0])
			if err != nil {
				return false, err
			}
			return e.VerifyAnswer(correct), nil
		},
	},
	{
		name:  "cancel",
		short: "Discard the buzz and resume the round",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.CancelVerify(), nil },
	},
	{
		name:  "next",
		short: "Move on to the next round",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.NextRound(), nil },
	},
	{
		name:  "skip",
		short: "Replace the current word without ending the round",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.SkipWord(), nil },
	},
	{
		name:  "end",
		short: "End the game early",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.EndGameEarly(), nil },
	},
	{
		name:  "reset",
		short: "Discard the game and all players",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.ResetGame(), nil },
	},
	{
		name:  "restart",
		short: "Back to setup keeping the players",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.RestartGameWithSamePlayers(), nil },
	},
	{
		name:  "stop",
		short: "Stop the timer if it is running",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.StopTimer(), nil },
	},
	{
		name:    "pause",
		short:   "Pause or resume the timer",
		aliases: []string{"toggle-timer"},
		run:     func(e game.EngineInterface, _ []string) (bool, error) { return e.ToggleTimer(), nil },
	},
	{
		name:  "flip",
		short: "Toggle showing the word upside down",
		run:   func(e game.EngineInterface, _ []string) (bool, error) { return e.ToggleShowUpsideDown(), nil },
	},
	{
		name:  "rounds",
		args:  "<n|inf>",
		nargs: 1,
		short: "Set the number of rounds before starting",
		run: func(e game.EngineInterface, args []string) (bool, error) {
			rounds, err := parseRounds(args[0])
			if err != nil {
				return false, err
			}
			return e.SetTotalRounds(rounds), nil
		},
	},
	{
		name:    "language",
		args:    "<IT|EN|MIX>",
		nargs:   1,
		short:   "Choose the word list before starting",
		aliases: []string{"lang"},
		run: func(e game.EngineInterface, args []string) (bool, error) {
			lang, err := model.ParseLanguage(args[0])
			if err != nil {
				return false, err
			}
			return e.SetLanguage(lang), nil
		},
	},
}

func findAction(name string) (action, bool) {
	name = strings.ToLower(name)
	for _, a := range actions {
		if a.name == name {
			return a, true
		}
		for _, alias := range a.aliases {
			if alias == name {
				return a, true
			}
		}
	}
	return action{}, false
}

// resolvePlayer finds a player by name, ignoring case, or by id
func resolvePlayer(e game.EngineInterface, ref string) (model.Player, error) {
	if p, ok := e.FindPlayer(ref); ok {
		return p, nil
	}
	state := e.Snapshot()
	if p := state.GetPlayer(model.PlayerID(ref)); p != nil {
		return *p, nil
	}
	return model.Player{}, fmt.Errorf("%w: %q", model.ErrPlayerNotFound, ref)
}

func parseVerdict(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "si", "sì", "ok", "correct", "true":
		return true, nil
	case "no", "n", "wrong", "false":
		return false, nil
	}
	return false, fmt.Errorf("verdict must be yes or no, got %q", s)
}

func parseRounds(s string) (int, error) {
	switch strings.ToLower(s) {
	case "inf", "infinite", "unlimited", "∞":
		return model.InfiniteRounds, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("rounds must be a positive number or inf, got %q", s)
	}
	return n, nil
}
