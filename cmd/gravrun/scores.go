package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gravity-runner/internal/platform/tui"
	"github.com/vovakirdan/gravity-runner/internal/runner"
	"github.com/vovakirdan/gravity-runner/internal/storage"
)

var (
	flagInteractive bool
	flagReset       bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history and the high score",
	Long: `Display the best runs and the high score.

Examples:
  gravrun scores
  gravrun scores --limit 25
  gravrun scores -i          # Interactive scoreboard
  gravrun scores --reset     # Clear the history and the high score`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the run history and the high score")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	key := cfg.Storage.HighScoreKey

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("cannot open scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagReset:
		resetScores(store, key)
	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, runner.ID, "Gravity Runner", key, width, height); err != nil {
			fatal("%v", err)
		}
	default:
		printScores(store, key)
	}
}

func resetScores(store *storage.Store, key string) {
	if err := store.ClearScores(runner.ID); err != nil {
		fatal("%v", err)
	}
	if err := store.DeleteSetting(key); err != nil {
		fatal("%v", err)
	}
	fmt.Println("Scores cleared.")
}

func printScores(store *storage.Store, key string) {
	scores, err := store.TopScores(runner.ID, flagLimit)
	if err != nil {
		fatal("cannot retrieve scores: %v", err)
	}
	best, err := store.GetInt(key)
	if err != nil {
		fatal("cannot retrieve high score: %v", err)
	}

	fmt.Println("High Scores - Gravity Runner")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gravrun play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		best = max(best, scores[0].Score)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", best)
}
