// gravrun is a gravity-flip runner: dodge obstacles by flipping between the
// floor and the ceiling of a scrolling corridor.
//
// Usage:
//
//	gravrun play            - Play in the terminal
//	gravrun window          - Play in a desktop window
//	gravrun serve           - Start SSH server for remote play
//	gravrun assets          - Serve the images and the score API over HTTP
//	gravrun scores          - Show the run history and the high score
//	gravrun config          - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.gravrun/scores.db)
//	--config <path>       - Load a YAML or TOML config file
//	--assets-dir <dir>    - Load images from a directory
//	--assets-url <url>    - Load images from an HTTP server
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-runner/internal/assets"
	"github.com/vovakirdan/gravity-runner/internal/config"
	"github.com/vovakirdan/gravity-runner/internal/runner"
	"github.com/vovakirdan/gravity-runner/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagAssetsDir string
	flagAssetsURL string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gravrun",
	Short: "Gravity Runner - flip gravity, dodge obstacles",
	Long: `Gravity Runner is an endless runner where the only control flips
gravity: the runner falls to the ceiling or back to the floor to get
past the obstacles scrolling toward it.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  assets   - Serve the images and the score API over HTTP
  scores   - View the run history and the high score
  config   - Print the default configuration

Examples:
  gravrun play
  gravrun window --seed 42
  gravrun serve --ssh :2222
  gravrun assets --addr :8080
  gravrun play --assets-url http://localhost:8080/
  gravrun scores -i`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gravrun/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagAssetsDir, "assets-dir", "", "Load images from this directory instead of the bundled ones")
	rootCmd.PersistentFlags().StringVar(&flagAssetsURL, "assets-url", "", "Load images from this HTTP base URL")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints err and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the shared logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatal("invalid --log-level %q", flagLogLevel)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "gravrun",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
}

// openLogFile opens ~/.gravrun/gravrun.log for appending, so logging does
// not draw over the alt screen.
func openLogFile() (*os.File, error) {
	path, err := storage.ExpandPath("~/.gravrun/gravrun.log")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// loadConfig loads the runner config or exits.
func loadConfig() config.RunnerConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	return cfg
}

// assetSource picks the image source from the flags.
func assetSource() (assets.Source, error) {
	switch {
	case flagAssetsURL != "":
		return assets.NewHTTPSource(flagAssetsURL, &http.Client{Timeout: 10 * time.Second})
	case flagAssetsDir != "":
		return assets.DirSource{FS: os.DirFS(flagAssetsDir), Root: flagAssetsDir}, nil
	default:
		return assets.Embedded(), nil
	}
}

// loadAssets decodes every image before the game accepts input. A failure
// is logged and ends the program.
func loadAssets(ctx context.Context, cfg config.RunnerConfig, logger *log.Logger) *assets.Set {
	src, err := assetSource()
	if err != nil {
		logger.Error("cannot create asset source", "err", err)
		os.Exit(1)
	}
	set, err := assets.NewLoader(src, logger).Load(ctx, assets.ManifestFromConfig(cfg.Assets))
	if err != nil {
		logger.Error("cannot load assets", "err", err)
		os.Exit(1)
	}
	return set
}

// openStore opens the score database. Without it the game still runs and
// keeps the high score in memory.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("cannot open scores database, scores will not be saved", "err", err)
		return nil
	}
	return store
}

// newGame creates a session persisting its high score to store.
func newGame(cfg config.RunnerConfig, set *assets.Set, store *storage.Store, logger *log.Logger) *runner.Game {
	opts := runner.Options{Logger: logger}
	if store != nil {
		opts.HighScores = store.HighScoreRecord(cfg.Storage.HighScoreKey)
	}
	return runner.New(cfg, set, opts)
}

// seed returns the --seed value, or a time-based one.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
