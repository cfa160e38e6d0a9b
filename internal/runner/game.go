// Package runner implements the gravity-flip runner: a sprite runs along the
// floor or the ceiling of a scrolling corridor and flips gravity to dodge
// obstacles. The package holds pure game logic; front-ends drive it through
// Press and Step and draw it from Render or Snapshot.
package runner

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-runner/internal/assets"
	"github.com/vovakirdan/gravity-runner/internal/config"
	"github.com/vovakirdan/gravity-runner/internal/core"
)

// ID identifies the game in score storage.
const ID = "gravity"

// Options carries the collaborators of a game session.
type Options struct {
	HighScores HighScoreStore // Nil keeps the high score in memory
	Logger     *log.Logger    // Nil uses the default logger
}

// Game is one gravity runner session.
type Game struct {
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig

	area       PlayArea
	background *Background
	shade      *shadeMap
	player     *Player
	obstacles  *ObstacleManager

	phase     Phase
	score     int
	highScore int
	speed     float64
	tickCount int
	runs      int

	store         HighScoreStore
	logger        *log.Logger
	persistWarned bool
}

// New creates a session from a validated config and the loaded images.
// A nil set runs without a background: the walls keep the default padding.
func New(cfg config.RunnerConfig, set *assets.Set, opts Options) *Game {
	g := &Game{
		cfg:        cfg,
		area:       NewPlayArea(cfg),
		background: NewBackground(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Background.ScrollDivisor),
		speed:      cfg.Speed.Base,
		store:      opts.HighScores,
		logger:     opts.Logger,
	}
	if g.store == nil {
		g.store = NewMemoryHighScores(0)
	}
	if g.logger == nil {
		g.logger = log.Default()
	}

	frames := cfg.Assets.PlayerFrameCount
	if set != nil {
		frames = len(set.PlayerFrames)
		if w, h := set.BackgroundSize(); w > 0 && h > 0 {
			g.fitBackground(w, h)
			g.shade = newShadeMap(set.Background)
		}
	}

	anim := NewAnimator(NewFrameSet(cfg.Animation), frames)
	g.player = NewPlayer(cfg.Player, anim, g.area)
	g.obstacles = NewObstacleManager(cfg.Obstacles, cfg.Canvas.Width, 0)
	return g
}

func (g *Game) fitBackground(w, h float64) {
	g.background.Fit(w, h)
	g.area.Fit(g.cfg.PlayArea.TopWallPercent, g.cfg.PlayArea.BottomWallPercent)

	g.logger.Debug("background scaled",
		"native", fmt.Sprintf("%.0fx%.0f", w, h),
		"display_width", g.background.DisplayWidth(),
		"scale", g.background.Scale(),
	)
	g.logger.Debug("play area fitted",
		"top", g.area.Top,
		"bottom", g.area.Bottom,
		"band", g.area.BandHeight(),
	)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Gravity Runner"
}

// Reset starts a fresh session on the start screen. The RNG is reseeded
// and the high score is reloaded from the store.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.obstacles.Reseed(rc.Seed)
	g.phase = PhaseNotStarted
	g.runs = 0
	g.clearRun()
	g.loadHighScore()
}

// clearRun restores everything a retry starts from. The high score and
// the background scroll carry over.
func (g *Game) clearRun() {
	g.obstacles.Reset()
	g.player.Reset(g.area)
	g.score = 0
	g.tickCount = 0
	g.speed = g.cfg.Speed.Base
}

func (g *Game) loadHighScore() {
	hs, err := g.store.Load()
	if err != nil {
		g.logger.Warn("cannot load high score", "err", err)
		return
	}
	if hs > g.highScore {
		g.highScore = hs
	}
}

// Press handles the primary action: start on the start screen, retry after
// a game over, flip gravity while playing.
func (g *Game) Press() {
	switch g.phase {
	case PhaseNotStarted:
		g.start()
	case PhaseGameOver:
		g.retry()
	case PhasePlaying:
		g.FlipGravity()
	}
}

// start leaves the start screen.
func (g *Game) start() bool {
	if g.phase != PhaseNotStarted {
		return false
	}
	g.beginRun()
	return true
}

// retry begins a new run after a game over.
func (g *Game) retry() bool {
	if g.phase != PhaseGameOver {
		return false
	}
	g.beginRun()
	return true
}

// end freezes the run on a collision.
func (g *Game) end() bool {
	if g.phase != PhasePlaying {
		return false
	}
	g.phase = PhaseGameOver
	g.logger.Debug("game over", "run", g.runs, "score", g.score, "high_score", g.highScore)
	return true
}

func (g *Game) beginRun() {
	g.clearRun()
	g.phase = PhasePlaying
	g.runs++
	g.logger.Debug("run started", "run", g.runs)
}

// FlipGravity toggles gravity. It does nothing unless a run is in progress.
func (g *Game) FlipGravity() {
	if g.phase != PhasePlaying {
		return
	}
	g.player.FlipGravity()
}

// Step handles this tick's input and advances the world if playing.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPrimary) {
		g.Press()
	}
	if g.phase == PhasePlaying {
		g.tick()
	}
	return core.StepResult{State: g.State()}
}

// tick runs one frame of the simulation in fixed order.
func (g *Game) tick() {
	g.tickCount++

	g.background.Scroll(g.speed)
	g.player.Update(g.area)
	g.obstacles.Update(g.speed, g.area)

	if g.obstacles.Collides(g.player.Box()) {
		g.end()
		return
	}

	g.score++
	if g.score > g.highScore {
		g.highScore = g.score
		g.persistHighScore()
	}
	if g.score%g.cfg.Speed.Every == 0 {
		g.speed += g.cfg.Speed.Increment
		g.logger.Debug("speed up", "score", g.score, "speed", g.speed)
	}
}

func (g *Game) persistHighScore() {
	if err := g.store.Save(g.highScore); err != nil && !g.persistWarned {
		g.persistWarned = true
		g.logger.Warn("cannot persist high score", "err", err)
	}
}

// State returns the summary the front-end loop needs.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Started:   g.phase != PhaseNotStarted,
		GameOver:  g.phase == PhaseGameOver,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Speed returns the current scroll speed in world units per tick.
func (g *Game) Speed() float64 {
	return g.speed
}

// Runs returns how many runs were started since the last Reset.
func (g *Game) Runs() int {
	return g.runs
}

// Config returns the configuration the session was built with.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}
