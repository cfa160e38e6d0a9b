package runner

import (
	"bytes"
	"image"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-runner/internal/assets"
	"github.com/vovakirdan/gravity-runner/internal/config"
	"github.com/vovakirdan/gravity-runner/internal/core"
)

// testSet mimics the bundled images: a 320x200 background and five frames.
func testSet() *assets.Set {
	set := &assets.Set{
		Background: image.NewRGBA(image.Rect(0, 0, 320, 200)),
		Obstacle:   image.NewRGBA(image.Rect(0, 0, 50, 80)),
	}
	for i := 0; i < 5; i++ {
		set.PlayerFrames = append(set.PlayerFrames, image.NewRGBA(image.Rect(0, 0, 40, 40)))
	}
	return set
}

// quietConfig never spawns obstacles within a test's horizon.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.SpawnEvery = 1_000_000
	return cfg
}

func newTestGame(t *testing.T, cfg config.RunnerConfig, store HighScoreStore) (*Game, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(&buf)
	g := New(cfg, testSet(), Options{HighScores: store, Logger: logger})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g, &buf
}

func press() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionPrimary)
	return in
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}
