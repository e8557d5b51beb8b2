package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/internal/ctxlog"
	"github.com/katalvlaran/gridpath/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Edit a board and watch searches in the terminal",
	Long: `Opens the interactive board.

Keys: arrows/hjkl move, space or click toggles a wall, s/e place start/end,
enter searches, d toggles diagonals through walls, c clears the path,
r generates a new board, q or Esc quits.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var playDiagonal bool

func init() {
	playCmd.Flags().BoolVar(&playDiagonal, "diagonal-through-walls", false, "Start with diagonals through walls allowed (overrides config)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if cmd.Flags().Changed("diagonal-through-walls") {
		cfg.AllowDiagonalThroughWalls = playDiagonal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	defer screen.Fini()

	// The screen owns the terminal; only errors are logged.
	logger := ctxlog.New("error", cfg.LogFormat, os.Stderr)
	app, err := tui.New(screen, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
