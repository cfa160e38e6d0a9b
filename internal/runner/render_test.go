package runner

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/vovakirdan/gravity-runner/internal/config"
	"github.com/vovakirdan/gravity-runner/internal/core"
)

func TestRenderStartScreen(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"GRAVITY RUNNER", "Click or press Space to start", "Best: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("start screen missing %q", want)
		}
	}
}

func TestRenderPlaying(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), NewMemoryHighScores(42))
	g.Step(press())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	if !strings.Contains(screen.Row(0), "Score: 1") || !strings.Contains(screen.Row(0), "Best: 42") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if strings.Contains(out, "GAME OVER") || strings.Contains(out, "GRAVITY RUNNER") {
		t.Error("no overlay expected while playing")
	}

	// Player occupies its scaled box: x 150..195 -> cells 10..13
	r := g.player.Box().ToCells(80.0/1200, 24.0/600)
	if got := screen.GetCell(r.X+1, r.Y+r.H/2).Rune; r.H > 2 && got != PlayerBody {
		t.Errorf("player cell = %q, want %q", got, PlayerBody)
	}
	if screen.GetCell(r.X, r.Y).Color != core.ColorBrightCyan {
		t.Error("player should be drawn in bright cyan")
	}
}

func TestRenderObstacle(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)
	g.Step(press())
	g.obstacles.obstacles = append(g.obstacles.obstacles, Obstacle{
		Box:        core.NewBox(600, 168, 50, 100),
		Attachment: AttachCeiling,
	})
	screen := core.NewScreen(120, 30)

	g.Render(screen)

	r := core.NewBox(600, 168, 50, 100).ToCells(120.0/1200, 30.0/600)
	cell := screen.GetCell(r.X, r.Y+1)
	if cell.Rune != ObstacleChar || cell.Color != core.ColorRed {
		t.Errorf("obstacle cell = %+v, want red %q", cell, ObstacleChar)
	}
}

func TestRenderGameOver(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)
	g.Step(press())
	for i := 0; i < 4; i++ {
		g.Step(idle())
	}
	g.end()
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"GAME OVER", "Score: 5", "play again"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestRenderFlippedLegsFaceCeiling(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)
	g.Step(press())
	g.Press()
	for i := 0; i < 100; i++ {
		g.Step(idle())
	}
	if g.player.Y != 168 {
		t.Fatalf("player Y = %v, want on the ceiling", g.player.Y)
	}
	screen := core.NewScreen(120, 60)

	g.Render(screen)

	r := g.player.Box().ToCells(120.0/1200, 60.0/600)
	if got := screen.GetCell(r.Right()-1, r.Bottom()-1).Rune; got != PlayerEye {
		t.Errorf("eye cell = %q, want %q on the floor-facing side", got, PlayerEye)
	}
	if got := screen.GetCell(r.X, r.Y).Rune; got == PlayerBody {
		t.Errorf("ceiling-facing row should hold legs, got %q", got)
	}
}

func TestRenderWithoutBackground(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), nil, Options{})
	g.Reset(core.DefaultConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	for _, y := range []int{0, 23} {
		if got := screen.Get(0, y); got != WallChar {
			t.Errorf("wall cell at row %d = %q, want %q", y, got, WallChar)
		}
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	g, _ := newTestGame(t, quietConfig(), nil)
	g.Render(core.NewScreen(0, 0))
}

func TestShadeMap(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(1, 0, color.Gray{Y: 255})
	m := newShadeMap(img)

	if m.At(0.1, 0.5) != 0 {
		t.Errorf("left sample = %v, want 0", m.At(0.1, 0.5))
	}
	if m.At(0.9, 0.5) != 1 {
		t.Errorf("right sample = %v, want 1", m.At(0.9, 0.5))
	}
	if m.At(5, -1) != 1 {
		t.Error("out-of-range samples should clamp to the edge")
	}
}

func TestOverlayByPhase(t *testing.T) {
	tests := []struct {
		phase Phase
		first string
		lines int
	}{
		{PhaseNotStarted, "GRAVITY RUNNER", 3},
		{PhasePlaying, "", 0},
		{PhaseGameOver, "GAME OVER", 3},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			lines := Overlay(Snapshot{Phase: tt.phase, Score: 7})
			if len(lines) != tt.lines {
				t.Fatalf("Overlay() = %d lines, want %d", len(lines), tt.lines)
			}
			if tt.lines > 0 && lines[0].Text != tt.first {
				t.Errorf("first line = %q, want %q", lines[0].Text, tt.first)
			}
		})
	}

	over := Overlay(Snapshot{Phase: PhaseGameOver, Score: 7})
	if over[1].Text != "Score: 7" {
		t.Errorf("game over score line = %q", over[1].Text)
	}
}
