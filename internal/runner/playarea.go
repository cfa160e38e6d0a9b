package runner

import (
	"math"

	"github.com/vovakirdan/gravity-runner/internal/config"
)

// PlayArea is the vertical band between the ceiling and floor walls.
type PlayArea struct {
	CanvasW float64
	CanvasH float64
	Top     float64 // Ceiling wall thickness
	Bottom  float64 // Floor wall thickness
}

// NewPlayArea returns the area used before the background is known:
// both walls take the default padding.
func NewPlayArea(cfg config.RunnerConfig) PlayArea {
	return PlayArea{
		CanvasW: cfg.Canvas.Width,
		CanvasH: cfg.Canvas.Height,
		Top:     cfg.PlayArea.DefaultPadding,
		Bottom:  cfg.PlayArea.DefaultPadding,
	}
}

// Fit derives the wall thicknesses from fractions of the canvas height.
func (a *PlayArea) Fit(topPercent, bottomPercent float64) {
	a.Top = math.Round(a.CanvasH * topPercent)
	a.Bottom = math.Round(a.CanvasH * bottomPercent)
}

// CeilingBound is the smallest y a body may take.
func (a PlayArea) CeilingBound() float64 {
	return a.Top
}

// FloorBound is the largest y a body of the given height may take.
func (a PlayArea) FloorBound(height float64) float64 {
	return a.CanvasH - a.Bottom - height
}

// FloorY is the y of the floor surface.
func (a PlayArea) FloorY() float64 {
	return a.CanvasH - a.Bottom
}

// BandHeight is the height of the playable band.
func (a PlayArea) BandHeight() float64 {
	return a.CanvasH - a.Top - a.Bottom
}
