package runner

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/vovakirdan/gravity-runner/internal/core"
)

// Visual characters for terminal rendering
const (
	PlayerBody   = '█'
	PlayerEye    = '◆'
	ObstacleChar = '▓'
	WallChar     = '░'
	WallEdge     = '─'
)

// shadeRamp maps background luminance to glyph density, dark to bright.
var shadeRamp = []rune(" .:-=+*#%@")

// legFrames holds the leg row for each sprite frame; the last one is the
// airborne pose.
var legFrames = []string{"╱ ╲", "│ │", "╲ ╱", "│ │", "▔▔▔"}

// shadeMap is the background's luminance, sampled once at load.
type shadeMap struct {
	w, h int
	lum  []float64
}

func newShadeMap(img image.Image) *shadeMap {
	b := img.Bounds()
	m := &shadeMap{w: b.Dx(), h: b.Dy(), lum: make([]float64, b.Dx()*b.Dy())}
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			g, _ := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			m.lum[y*m.w+x] = float64(g.Y) / 255
		}
	}
	return m
}

// At samples luminance at normalized coordinates.
func (m *shadeMap) At(u, v float64) float64 {
	x := core.Clamp(int(u*float64(m.w)), 0, m.w-1)
	y := core.Clamp(int(v*float64(m.h)), 0, m.h-1)
	return m.lum[y*m.w+x]
}

// Render draws the game onto a terminal cell grid, scaling the canvas to
// the screen size.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	snap := g.Snapshot()
	sx := float64(dst.Width()) / snap.Area.CanvasW
	sy := float64(dst.Height()) / snap.Area.CanvasH

	g.drawBackground(dst, snap, sx, sy)
	for _, o := range snap.Obstacles {
		dst.DrawRect(o.ToCells(sx, sy), ObstacleChar, core.ColorRed)
	}
	drawPlayer(dst, snap.Player, sx, sy)
	drawHUD(dst, snap)

	if lines := Overlay(snap); lines != nil {
		dst.Dim(core.ColorDarkGray)
		drawCenteredMessage(dst, lines)
	}
}

// MessageLine is one line of an overlay message.
type MessageLine struct {
	Text  string
	Color core.Color
}

// Overlay returns the message shown over the game in its current phase,
// or nil while a run is in progress.
func Overlay(snap Snapshot) []MessageLine {
	switch snap.Phase {
	case PhaseNotStarted:
		return []MessageLine{
			{Text: "GRAVITY RUNNER", Color: core.ColorBrightCyan},
			{Text: "Click or press Space to start", Color: core.ColorCyan},
			{Text: "Space flips gravity", Color: core.ColorGray},
		}
	case PhaseGameOver:
		return []MessageLine{
			{Text: "GAME OVER", Color: core.ColorBrightRed},
			{Text: fmt.Sprintf("Score: %d", snap.Score), Color: core.ColorBrightWhite},
			{Text: "Click or press Space to play again", Color: core.ColorCyan},
		}
	}
	return nil
}

// drawBackground shades the tiled background image, or plain walls when no
// image was loaded.
func (g *Game) drawBackground(dst *core.Screen, snap Snapshot, sx, sy float64) {
	top := int(math.Round(snap.Area.Top * sy))
	floor := int(math.Round(snap.Area.FloorY() * sy))

	if g.shade == nil || len(snap.Background) == 0 {
		dst.DrawRect(core.NewRect(0, 0, dst.Width(), top), WallChar, core.ColorYellow)
		dst.DrawRect(core.NewRect(0, floor, dst.Width(), dst.Height()-floor), WallChar, core.ColorYellow)
	} else {
		for cx := 0; cx < dst.Width(); cx++ {
			wx := (float64(cx) + 0.5) / sx
			tile, ok := tileAt(snap.Background, wx)
			if !ok {
				continue
			}
			u := (wx - tile.X) / tile.W
			for cy := 0; cy < dst.Height(); cy++ {
				v := (float64(cy) + 0.5) / sy / tile.H
				lum := g.shade.At(u, v)
				r := shadeRamp[int(lum*float64(len(shadeRamp)-1))]
				c := core.ColorGray
				if cy < top || cy >= floor {
					c = core.ColorYellow
				}
				dst.SetColored(cx, cy, r, c)
			}
		}
	}

	for cx := 0; cx < dst.Width(); cx++ {
		dst.SetColored(cx, top-1, WallEdge, core.ColorWhite)
		dst.SetColored(cx, floor, WallEdge, core.ColorWhite)
	}
}

func tileAt(tiles []Tile, x float64) (Tile, bool) {
	for _, t := range tiles {
		if x >= t.X && x < t.X+t.W {
			return t, true
		}
	}
	return Tile{}, false
}

// drawPlayer renders the player block with animated legs on the side
// facing the active wall.
func drawPlayer(dst *core.Screen, p PlayerSnapshot, sx, sy float64) {
	r := p.Box.ToCells(sx, sy)
	dst.DrawRect(r, PlayerBody, core.ColorBrightCyan)
	if r.H < 2 {
		return
	}

	legRow, eyeRow := r.Bottom()-1, r.Y
	if p.Flipped {
		legRow, eyeRow = r.Y, r.Bottom()-1
	}

	legs := []rune(legFrames[core.Clamp(p.Frame, 0, len(legFrames)-1)])
	for x := 0; x < r.W; x++ {
		ch := ' '
		if x < len(legs) {
			ch = legs[x]
			if p.Flipped {
				ch = mirrorVertical(ch)
			}
		}
		dst.SetColored(r.X+x, legRow, ch, core.ColorBrightCyan)
	}
	dst.SetColored(r.Right()-1, eyeRow, PlayerEye, core.ColorWhite)
}

func mirrorVertical(r rune) rune {
	switch r {
	case '╱':
		return '╲'
	case '╲':
		return '╱'
	case '▔':
		return '▁'
	}
	return r
}

// HUDText returns the best-score and score labels.
func HUDText(snap Snapshot) (best, score string) {
	return fmt.Sprintf(" Best: %d ", snap.HighScore), fmt.Sprintf(" Score: %d ", snap.Score)
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	best, score := HUDText(snap)
	dst.DrawText(1, 0, best, core.ColorBrightWhite)
	dst.DrawText(dst.Width()-len(score)-1, 0, score, core.ColorBrightWhite)
}

// drawCenteredMessage draws a message box in the center of the screen,
// one blank row between lines.
func drawCenteredMessage(dst *core.Screen, lines []MessageLine) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l.Text)))
	}

	boxW := width + 4
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l.Text)))/2
		dst.DrawText(x, boxY+1+i*2, l.Text, l.Color)
	}
}
