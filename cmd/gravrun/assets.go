package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-runner/internal/assets"
	"github.com/vovakirdan/gravity-runner/internal/platform/web"
	"github.com/vovakirdan/gravity-runner/internal/runner"
)

var flagHTTPAddr string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Serve the images and the score API over HTTP",
	Long: `Start an HTTP server hosting the game images under /images/ and a
read-only score API:

  GET /api/highscore        - best score and number of runs
  GET /api/scores?limit=N   - top runs, best first
  GET /healthz              - liveness check

Other instances can load their images from it with --assets-url.

Examples:
  gravrun assets
  gravrun assets --addr :9000 --assets-dir ./my-images
  gravrun play --assets-url http://localhost:8080/`,
	Args: cobra.NoArgs,
	Run:  runAssets,
}

func init() {
	assetsCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runAssets(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()

	var files fs.FS = assets.EmbeddedFS()
	if flagAssetsDir != "" {
		files = os.DirFS(flagAssetsDir)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	router := web.NewRouter(files, store, web.Options{
		GameID:       runner.ID,
		HighScoreKey: cfg.Storage.HighScoreKey,
	}, logger)

	if err := web.NewServer(flagHTTPAddr, router, logger).ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
