package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/singhit/internal/services/motion"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	for _, a := range actions {
		cmd.AddCommand(newActionCmd(a))
	}
	cmd.AddCommand(newGameStatusCmd())
	cmd.AddCommand(newGameLeaderboardCmd())
	cmd.AddCommand(newGameShakeCmd())

	return cmd
}

func newActionCmd(a action) *cobra.Command {
	use := a.name
	if a.args != "" {
		use += " " + a.args
	}
	return &cobra.Command{
		Use:     use,
		Short:   a.short,
		Aliases: a.aliases,
		Args:    cobra.ExactArgs(a.nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runAction(a, args)
			if err != nil {
				return err
			}
			newCmdOutput(cmd).Print(result)
			return nil
		},
	}
}

func runAction(a action, args []string) (ActionResult, error) {
	applied, err := a.run(app.Engine, args)
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{
		Action:  a.name,
		Applied: applied,
		State:   newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()),
	}, nil
}

func newGameStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current game state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			newCmdOutput(cmd).Print(newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()))
			return nil
		},
	}
}

func newGameLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "leaderboard",
		Short:   "Show players ranked by score, then time",
		Aliases: []string{"scores"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			winner, ok := app.Engine.Winner()
			newCmdOutput(cmd).Print(newLeaderboardView(app.Engine.Leaderboard(), winner, ok))
			return nil
		},
	}
}

func newGameShakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shake <x> <y> <z>",
		Short: "Feed an acceleration sample in m/s²; movement stops the timer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := parseSample(args)
			if err != nil {
				return err
			}
			stopped := app.Motion.Observe(sample)
			newCmdOutput(cmd).Print(ActionResult{
				Action:  "shake",
				Applied: stopped,
				State:   newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()),
			})
			return nil
		},
	}
}

func parseSample(args []string) (motion.Sample, error) {
	var values [3]float64
	for i, arg := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return motion.Sample{}, fmt.Errorf("invalid acceleration %q: %w", arg, err)
		}
		values[i] = v
	}
	return motion.Sample{X: values[0], Y: values[1], Z: values[2]}, nil
}

func newCmdOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
