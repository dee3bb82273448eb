package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/singhit/internal/config"
	"github.com/mcoot/singhit/internal/factory"
)

// closeTimeout bounds the final snapshot flush
const closeTimeout = 5 * time.Second

var (
	cfg config.Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = config.Default()

	rootCmd := &cobra.Command{
		Use:   "singhit",
		Short: "Party word-guessing game for one shared device",
		Long: `singhit runs the Sing(h)it party game from the terminal.

Players take turns singing the displayed word, anyone may buzz in, and the
moderator verifies the answer. The game is saved after every action, so
single commands can be chained across invocations or played interactively
with "singhit play".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Root().PersistentFlags()
			if err := config.LoadDotEnv(cfg.EnvFile); err != nil {
				return err
			}
			if err := config.ApplyEnv(flags); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))

			var err error
			app, err = factory.New(cmd.Context(), factory.FromSettings(cfg, logger))
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
		SilenceUsage: true,
	}

	// Global flags
	config.BindFlags(rootCmd.PersistentFlags(), &cfg)

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newPlayCmd())

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	return rootCmd
}

// Execute runs the root command until it finishes or ctx is cancelled
func Execute(ctx context.Context) error {
	err := NewRootCmd().ExecuteContext(ctx)
	return errors.Join(err, closeApp())
}

// closeApp flushes the last snapshot and releases storage. Cobra skips the
// post-run hook when a command fails, so Execute calls it as well.
func closeApp() error {
	if app == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	err := app.Close(ctx)
	app = nil
	return err
}
