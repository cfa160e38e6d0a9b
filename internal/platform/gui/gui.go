// Package gui runs the game in a desktop window with Ebiten. The window
// shows the canvas at its native 1200x600 size and draws the bundled
// sprites; the simulation itself lives in package runner.
package gui

import (
	"errors"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/gravity-runner/internal/assets"
	"github.com/vovakirdan/gravity-runner/internal/core"
	"github.com/vovakirdan/gravity-runner/internal/runner"
	"github.com/vovakirdan/gravity-runner/internal/storage"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16
)

var (
	clearColor   = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	shadeColor   = color.RGBA{0x00, 0x00, 0x00, 0x99}
	wallColor    = color.RGBA{0xd8, 0xc3, 0x9a, 0xff}
	hitboxColor  = color.RGBA{0xe0, 0x40, 0x40, 0xff}
	fallbackBody = color.RGBA{0x40, 0xd0, 0xe0, 0xff}
)

// Window adapts a runner session to ebiten.Game.
type Window struct {
	game   *runner.Game
	store  *storage.Store
	logger *log.Logger

	background *ebiten.Image
	obstacle   *ebiten.Image
	frames     []*ebiten.Image

	runID      string
	scoreSaved bool
}

// New wraps game, uploading the decoded images to the GPU once. The game
// is reset onto its start screen. store may be nil.
func New(game *runner.Game, set *assets.Set, store *storage.Store, rc core.RuntimeConfig, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.Default()
	}
	w := &Window{game: game, store: store, logger: logger}
	if set != nil {
		if set.Background != nil {
			w.background = ebiten.NewImageFromImage(set.Background)
		}
		if set.Obstacle != nil {
			w.obstacle = ebiten.NewImageFromImage(set.Obstacle)
		}
		for _, f := range set.PlayerFrames {
			w.frames = append(w.frames, ebiten.NewImageFromImage(f))
		}
	}
	game.Reset(rc)
	return w
}

// Update advances the simulation one tick.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	in := core.NewInputFrame()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Set(core.ActionPrimary)
		if w.game.Phase() != runner.PhasePlaying {
			w.runID = uuid.NewString()
			w.scoreSaved = false
		}
	}

	res := w.game.Step(in)
	if res.State.GameOver && !w.scoreSaved {
		w.scoreSaved = true
		w.saveScore(res.State.Score)
	}
	return nil
}

func (w *Window) saveScore(score int) {
	if w.store == nil || score == 0 {
		return
	}
	if _, err := w.store.SaveScore(w.game.ID(), w.runID, score); err != nil {
		w.logger.Warn("cannot save score", "err", err)
	}
}

// Draw paints the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.game.Snapshot()
	screen.Fill(clearColor)

	w.drawBackground(screen, snap)
	for _, o := range snap.Obstacles {
		w.drawObstacle(screen, o)
	}
	w.drawPlayer(screen, snap.Player)
	drawHUD(screen, snap)

	if lines := runner.Overlay(snap); lines != nil {
		vector.DrawFilledRect(screen, 0, 0, float32(snap.Area.CanvasW), float32(snap.Area.CanvasH), shadeColor, false)
		drawLines(screen, snap, lines)
	}
}

func (w *Window) drawBackground(screen *ebiten.Image, snap runner.Snapshot) {
	if w.background == nil || len(snap.Background) == 0 {
		floor := snap.Area.FloorY()
		vector.DrawFilledRect(screen, 0, 0, float32(snap.Area.CanvasW), float32(snap.Area.Top), wallColor, false)
		vector.DrawFilledRect(screen, 0, float32(floor), float32(snap.Area.CanvasW), float32(snap.Area.CanvasH-floor), wallColor, false)
		return
	}

	bw, bh := w.background.Bounds().Dx(), w.background.Bounds().Dy()
	for _, t := range snap.Background {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(t.W/float64(bw), t.H/float64(bh))
		op.GeoM.Translate(t.X, 0)
		screen.DrawImage(w.background, op)
	}
}

func (w *Window) drawObstacle(screen *ebiten.Image, o runner.Obstacle) {
	if w.obstacle == nil {
		vector.DrawFilledRect(screen, float32(o.X), float32(o.Y), float32(o.W), float32(o.H), hitboxColor, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	fitSprite(&op.GeoM, w.obstacle, o.Box, o.Attachment == runner.AttachCeiling)
	screen.DrawImage(w.obstacle, op)
}

func (w *Window) drawPlayer(screen *ebiten.Image, p runner.PlayerSnapshot) {
	if p.Frame < 0 || p.Frame >= len(w.frames) {
		vector.DrawFilledRect(screen, float32(p.Box.X), float32(p.Box.Y), float32(p.Box.W), float32(p.Box.H), fallbackBody, false)
		return
	}
	img := w.frames[p.Frame]
	op := &ebiten.DrawImageOptions{}
	fitSprite(&op.GeoM, img, p.Box, p.Flipped)
	screen.DrawImage(img, op)
}

// fitSprite stretches img onto box, mirrored top to bottom when flip is set.
func fitSprite(m *ebiten.GeoM, img *ebiten.Image, box core.Box, flip bool) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if flip {
		m.Scale(1, -1)
		m.Translate(0, ih)
	}
	m.Scale(box.W/iw, box.H/ih)
	m.Translate(box.X, box.Y)
}

func drawHUD(screen *ebiten.Image, snap runner.Snapshot) {
	best, score := runner.HUDText(snap)
	ebitenutil.DebugPrintAt(screen, best, 10, 10)
	ebitenutil.DebugPrintAt(screen, score, int(snap.Area.CanvasW)-len(score)*glyphW-10, 10)
}

// drawLines centers the overlay text on the canvas, one blank line apart.
func drawLines(screen *ebiten.Image, snap runner.Snapshot, lines []runner.MessageLine) {
	top := int(snap.Area.CanvasH)/2 - len(lines)*glyphH
	for i, l := range lines {
		x := (int(snap.Area.CanvasW) - len(l.Text)*glyphW) / 2
		ebitenutil.DebugPrintAt(screen, l.Text, x, top+i*glyphH*2)
	}
}

// Layout keeps the logical screen at the canvas size; Ebiten scales it
// to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	cfg := w.game.Config()
	return int(cfg.Canvas.Width), int(cfg.Canvas.Height)
}

// Run opens the window and blocks until it is closed.
func Run(game *runner.Game, set *assets.Set, store *storage.Store, rc core.RuntimeConfig, logger *log.Logger) error {
	w := New(game, set, store, rc, logger)
	cfg := game.Config()

	ebiten.SetWindowSize(int(cfg.Canvas.Width), int(cfg.Canvas.Height))
	ebiten.SetWindowTitle(game.Title())
	if rc.TickRate > 0 {
		ebiten.SetTPS(rc.TickRate)
	}

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
