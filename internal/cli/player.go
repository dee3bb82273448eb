package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerListCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>...",
		Short: "Add players before the game starts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newCmdOutput(cmd)
			for _, name := range args {
				id, err := app.Engine.AddPlayer(name)
				if err != nil {
					return err
				}
				p := app.Engine.Snapshot().GetPlayer(id)
				out.Print(newPlayerView(*p))
			}
			return nil
		},
	}
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name|id>",
		Short:   "Remove a player before the game starts",
		Aliases: []string{"remove"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePlayer(app.Engine, args[0])
			if err != nil {
				return err
			}
			applied := app.Engine.RemovePlayer(p.ID)
			newCmdOutput(cmd).Print(ActionResult{
				Action:  "rm",
				Applied: applied,
				State:   newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()),
			})
			return nil
		},
	}
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List players in name order",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			newCmdOutput(cmd).Print(newPlayerViews(app.Engine.Snapshot().Players))
			return nil
		},
	}
}
