package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/singhit/internal/config"
	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/notify"
)

func newPlayCmd() *cobra.Command {
	var showEvents bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively, one command per line",
		Long: `Reads commands from standard input until "quit" or end of input.

Every "singhit game" action is available by name, plus:
  add <name>        add a player
  rm <name>         remove a player
  players           list players
  status            show the game (an empty line does the same)
  board             show the leaderboard
  shake <x> <y> <z> feed an acceleration sample
  help              list commands
  quit              leave; the game stays saved`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var events <-chan model.Event
			if showEvents {
				events = app.Broker.Subscribe(notify.DefaultBuffer)
				defer app.Broker.Unsubscribe(events)
			}
			r := &repl{
				out:    newCmdOutput(cmd),
				w:      cmd.OutOrStdout(),
				events: events,
				prompt: cfg.Output == config.OutputText,
			}
			return r.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&showEvents, "events", false, "print game events as they happen")

	return cmd
}

type repl struct {
	out    *Output
	w      io.Writer
	events <-chan model.Event
	prompt bool
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	r.out.Print(newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()))
	for {
		if r.prompt {
			fmt.Fprint(r.w, "> ")
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := r.handle(line); quit {
				return nil
			}
			r.printEvents()
		}
	}
}

// handle executes one line and reports whether the loop should end
func (r *repl) handle(line string) bool {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "":
		r.out.Print(newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()))
	case "quit", "exit", "q":
		return true
	case "help", "?":
		r.printHelp()
	case "add":
		if rest == "" {
			r.out.PrintError(fmt.Errorf("usage: add <name>"))
			break
		}
		id, err := app.Engine.AddPlayer(rest)
		if err != nil {
			r.out.PrintError(err)
			break
		}
		r.out.Print(newPlayerView(*app.Engine.Snapshot().GetPlayer(id)))
	case "rm", "remove":
		p, err := resolvePlayer(app.Engine, rest)
		if err != nil {
			r.out.PrintError(err)
			break
		}
		r.printResult("rm", app.Engine.RemovePlayer(p.ID))
	case "players", "list", "ls":
		r.out.Print(newPlayerViews(app.Engine.Snapshot().Players))
	case "status", "s":
		r.out.Print(newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()))
	case "board", "leaderboard", "scores":
		winner, ok := app.Engine.Winner()
		r.out.Print(newLeaderboardView(app.Engine.Leaderboard(), winner, ok))
	case "shake":
		sample, err := parseSample(strings.Fields(rest))
		if err != nil || len(strings.Fields(rest)) != 3 {
			r.out.PrintError(fmt.Errorf("usage: shake <x> <y> <z>"))
			break
		}
		r.printResult("shake", app.Motion.Observe(sample))
	default:
		a, ok := findAction(name)
		if !ok {
			r.out.PrintError(fmt.Errorf("unknown command %q, try help", name))
			break
		}
		var args []string
		if rest != "" {
			args = []string{rest}
		}
		if len(args) != a.nargs {
			r.out.PrintError(fmt.Errorf("usage: %s %s", a.name, a.args))
			break
		}
		result, err := runAction(a, args)
		if err != nil {
			r.out.PrintError(err)
			break
		}
		r.out.Print(result)
	}
	return false
}

func (r *repl) printResult(name string, applied bool) {
	r.out.Print(ActionResult{
		Action:  name,
		Applied: applied,
		State:   newStatusView(app.Engine.Snapshot(), app.Engine.Elapsed()),
	})
}

func (r *repl) printEvents() {
	if r.events == nil {
		return
	}
	for {
		select {
		case ev, ok := <-r.events:
			if !ok {
				return
			}
			r.out.PrintMessage("event: " + string(ev.Type))
		default:
			return
		}
	}
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.w, "Commands:")
	fmt.Fprintln(r.w, "  add <name>, rm <name>, players, status, board, shake <x> <y> <z>, quit")
	for _, a := range actions {
		usage := a.name
		if a.args != "" {
			usage += " " + a.args
		}
		fmt.Fprintf(r.w, "  %-18s %s\n", usage, a.short)
	}
}
