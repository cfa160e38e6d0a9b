package runner

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/gravity-runner/internal/config"
	"github.com/vovakirdan/gravity-runner/internal/core"
)

func TestNewFitsPlayArea(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultRunnerConfig(), nil)

	if g.area.Top != 168 || g.area.Bottom != 168 {
		t.Errorf("walls = %v/%v, want 168/168", g.area.Top, g.area.Bottom)
	}
	if g.player.Y != 387 {
		t.Errorf("player Y = %v, want 387", g.player.Y)
	}
	if g.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v, want NotStarted", g.Phase())
	}
}

func TestNewWithoutImages(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), nil, Options{})
	g.Reset(core.DefaultConfig())

	if g.area.Top != 50 {
		t.Errorf("Top = %v, want default padding 50", g.area.Top)
	}
	if g.player.Y != 505 {
		t.Errorf("player Y = %v, want 505", g.player.Y)
	}
	if g.background.Fitted() {
		t.Error("background should stay unfitted without an image")
	}
}

func TestNotStartedIsIdle(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultRunnerConfig(), nil)

	for i := 0; i < 200; i++ {
		g.Step(idle())
	}

	if g.tickCount != 0 || g.State().Score != 0 {
		t.Errorf("world advanced before start: ticks=%d score=%d", g.tickCount, g.State().Score)
	}
	if len(g.obstacles.Obstacles()) != 0 {
		t.Error("obstacles spawned before start")
	}
	if g.State().Started {
		t.Error("State().Started should be false")
	}
}

func TestFlipIgnoredOutsidePlaying(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)

	g.FlipGravity()
	if g.player.Flipped || g.player.Gravity != 0.5 {
		t.Error("flip before start should be a no-op")
	}

	g.Press()
	g.end()
	before := g.Snapshot()
	g.FlipGravity()
	after := g.Snapshot()
	if before.Hash() != after.Hash() || after.Player.Flipped {
		t.Error("flip after game over should be a no-op")
	}
}

func TestPressTransitions(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)

	g.Press()
	if g.Phase() != PhasePlaying {
		t.Fatalf("Press() on start screen: phase %v, want Playing", g.Phase())
	}

	g.Press()
	if !g.player.Flipped || g.player.Gravity != -0.5 {
		t.Error("Press() while playing should flip gravity")
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("flip changed phase to %v", g.Phase())
	}

	g.end()
	g.Press()
	if g.Phase() != PhasePlaying || g.Runs() != 2 {
		t.Errorf("retry: phase %v runs %d, want Playing 2", g.Phase(), g.Runs())
	}
	if g.player.Flipped {
		t.Error("retry should restore normal gravity")
	}
}

func TestScoreAndSpeedRamp(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)

	// Starting also runs the first tick
	g.Step(press())
	for i := 1; i < 500; i++ {
		res := g.Step(idle())
		if res.State.Score != i+1 {
			t.Fatalf("tick %d: score %d, want %d", i+1, res.State.Score, i+1)
		}
		if i < 499 && g.Speed() != 1.5 {
			t.Fatalf("tick %d: speed %v before the first ramp", i+1, g.Speed())
		}
	}

	if g.State().Score != 500 {
		t.Errorf("score = %d, want 500", g.State().Score)
	}
	if g.Speed() != 2.0 {
		t.Errorf("speed = %v, want base + one increment (2.0)", g.Speed())
	}
}

func TestCollisionEndsRunSameTick(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)
	g.Step(press())
	for i := 0; i < 9; i++ {
		g.Step(idle())
	}
	if g.State().Score != 10 {
		t.Fatalf("score = %d, want 10", g.State().Score)
	}

	// Lands on the player after this tick's advance
	p := g.player.Box()
	g.obstacles.obstacles = append(g.obstacles.obstacles, Obstacle{
		Box: core.NewBox(p.X+g.Speed(), p.Y, 50, p.H),
	})

	res := g.Step(idle())
	if !res.State.GameOver {
		t.Fatal("overlap should end the run on the same tick")
	}
	if res.State.Score != 10 {
		t.Errorf("score = %d, want 10 (no increment on the fatal tick)", res.State.Score)
	}

	ticks := g.tickCount
	for i := 0; i < 50; i++ {
		g.Step(idle())
	}
	if g.State().Score != 10 || g.tickCount != ticks {
		t.Errorf("world advanced after game over: score %d ticks %d", g.State().Score, g.tickCount)
	}
}

func TestCollisionAABB(t *testing.T) {
	tests := []struct {
		name string
		dx   float64 // Obstacle X relative to player X, after advance
		y    float64
		h    float64
		want bool
	}{
		{"full overlap", 0, 387, 45, true},
		{"partial overlap right", 40, 400, 32, true},
		{"separated on x", 100, 387, 45, false},
		{"touching on x", 45, 387, 45, false},
		{"touching on y", 0, 287, 100, false},
		{"ceiling obstacle", 0, 168, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, quietConfig(), nil)
			g.Step(press())

			x := g.player.X + tt.dx + g.Speed()
			g.obstacles.obstacles = append(g.obstacles.obstacles, Obstacle{Box: core.NewBox(x, tt.y, 50, tt.h)})

			res := g.Step(idle())
			if res.State.GameOver != tt.want {
				t.Errorf("GameOver = %v, want %v", res.State.GameOver, tt.want)
			}
		})
	}
}

func TestHighScorePersistence(t *testing.T) {
	store := NewMemoryHighScores(3)
	g, _ := newTestGame(t, quietConfig(), store)

	if g.State().HighScore != 3 {
		t.Fatalf("loaded high score = %d, want 3", g.State().HighScore)
	}

	g.Step(press())
	for i := 0; i < 9; i++ {
		g.Step(idle())
	}
	if g.State().HighScore != 10 {
		t.Errorf("high score = %d, want 10", g.State().HighScore)
	}
	if v, _ := store.Load(); v != 10 {
		t.Errorf("stored high score = %d, want 10", v)
	}
	if store.Saves() != 7 {
		t.Errorf("Save called %d times, want 7 (scores 4..10)", store.Saves())
	}

	// Retry keeps the best score
	g.end()
	g.Press()
	if g.State().Score != 0 || g.State().HighScore != 10 {
		t.Errorf("after retry: score %d high %d, want 0 10", g.State().Score, g.State().HighScore)
	}

	// A new session reads it back
	g2, _ := newTestGame(t, quietConfig(), store)
	if g2.State().HighScore != 10 {
		t.Errorf("reloaded high score = %d, want 10", g2.State().HighScore)
	}
}

func TestHighScoreNotLoweredByStore(t *testing.T) {
	store := NewMemoryHighScores(1000)
	g, _ := newTestGame(t, quietConfig(), store)

	g.Step(press())
	for i := 0; i < 20; i++ {
		g.Step(idle())
	}
	if g.State().HighScore != 1000 {
		t.Errorf("high score = %d, want 1000", g.State().HighScore)
	}
	if store.Saves() != 0 {
		t.Errorf("Save called %d times below the high score", store.Saves())
	}
}

type failingStore struct{}

func (failingStore) Load() (int, error) { return 0, errors.New("disk unavailable") }
func (failingStore) Save(int) error     { return errors.New("disk unavailable") }

func TestPersistFailureWarnsOnce(t *testing.T) {
	g, logs := newTestGame(t, quietConfig(), failingStore{})

	g.Step(press())
	for i := 0; i < 30; i++ {
		g.Step(idle())
	}

	if g.State().HighScore != 31 {
		t.Errorf("high score = %d, want 31", g.State().HighScore)
	}
	if n := strings.Count(logs.String(), "cannot persist high score"); n != 1 {
		t.Errorf("persist warning logged %d times, want 1", n)
	}
	if !strings.Contains(logs.String(), "cannot load high score") {
		t.Error("load failure should be logged")
	}
}

func TestRetryResetsRun(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultRunnerConfig(), nil)
	g.Step(press())
	for i := 0; i < 600; i++ {
		if i%40 == 0 {
			g.FlipGravity()
		}
		g.Step(idle())
	}
	g.end()

	g.Press()
	snap := g.Snapshot()
	if snap.Score != 0 || snap.Tick != 0 || len(snap.Obstacles) != 0 {
		t.Errorf("retry left score=%d tick=%d obstacles=%d", snap.Score, snap.Tick, len(snap.Obstacles))
	}
	if snap.Speed != 1.5 {
		t.Errorf("retry speed = %v, want 1.5", snap.Speed)
	}
	if snap.Player.Box.Y != 387 || snap.Player.Flipped || snap.Player.VelocityY != 0 {
		t.Errorf("retry player = %+v", snap.Player)
	}
	if g.obstacles.FrameCount() != 0 {
		t.Errorf("spawn counter = %d, want 0", g.obstacles.FrameCount())
	}
}

func TestPlayerBoundsDuringPlay(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultRunnerConfig(), nil)

	for i := 0; i < 5000; i++ {
		in := idle()
		if i%23 == 0 || g.Phase() != PhasePlaying {
			in = press()
		}
		g.Step(in)

		y := g.player.Y
		if y < g.area.CeilingBound() || y > g.area.FloorBound(g.player.Height) {
			t.Fatalf("tick %d: player Y %v out of bounds", i, y)
		}
		for _, o := range g.obstacles.Obstacles() {
			if o.Right() <= 0 {
				t.Fatalf("tick %d: stale obstacle at %v", i, o.X)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []uint64 {
		g, _ := newTestGame(t, config.DefaultRunnerConfig(), nil)
		var hashes []uint64
		for i := 0; i < 3000; i++ {
			in := idle()
			if i%37 == 0 || g.Phase() == PhaseGameOver {
				in = press()
			}
			g.Step(in)
			snap := g.Snapshot()
			hashes = append(hashes, snap.Hash())
		}
		return hashes
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at tick %d", i)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseNotStarted, "NotStarted"},
		{PhasePlaying, "Playing"},
		{PhaseGameOver, "GameOver"},
		{Phase(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
	if !PhasePlaying.Ticking() || PhaseGameOver.Ticking() || PhaseNotStarted.Ticking() {
		t.Error("only Playing should keep the loop ticking")
	}
}
