package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gravity-runner/internal/core"
	"github.com/vovakirdan/gravity-runner/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Space/Click  - Start, flip gravity, play again
  Ctrl+S       - Save a screenshot to ~/.gravrun/screenshots
  Q/Ctrl+C     - Quit

Logs are written to ~/.gravrun/gravrun.log.

Examples:
  gravrun play
  gravrun play --seed 42
  gravrun play --config ./runner.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logFile, err := openLogFile()
	if err != nil {
		fatal("cannot open log file: %v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	cfg := loadConfig()
	set := loadAssets(context.Background(), cfg, logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(logger)
	game := newGame(cfg, set, store, logger)

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}
	runErr := tui.Run(game, store, rc, logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
