package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-runner/internal/core"
	"github.com/vovakirdan/gravity-runner/internal/platform/gui"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a 1200x600 window.

Controls:
  Space/Click  - Start, flip gravity, play again
  Esc/Q        - Quit`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig()
	set := loadAssets(context.Background(), cfg, logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	game := newGame(cfg, set, store, logger)

	rc := core.RuntimeConfig{
		ScreenW:  int(cfg.Canvas.Width),
		ScreenH:  int(cfg.Canvas.Height),
		TickRate: flagFPS,
		Seed:     seed(),
	}
	if err := gui.Run(game, set, store, rc, logger); err != nil {
		logger.Error("window closed with error", "err", err)
		os.Exit(1)
	}
}
