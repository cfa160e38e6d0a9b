package runner

import "math"

// Tile is one scaled copy of the background image in world units.
type Tile struct {
	X float64
	W float64
	H float64
}

// Background tracks the parallax scroll of the tiled background image.
// Until Fit is called it draws nothing and does not scroll.
type Background struct {
	canvasW  float64
	canvasH  float64
	divisor  float64
	scale    float64
	displayW float64
	offset   float64
	fitted   bool
}

// NewBackground creates an unfitted background for the given canvas.
// The scroll moves speed/divisor units per tick.
func NewBackground(canvasW, canvasH, divisor float64) *Background {
	return &Background{canvasW: canvasW, canvasH: canvasH, divisor: divisor}
}

// Fit scales the image so its native height covers the canvas height.
// Non-positive sizes leave the background unfitted.
func (b *Background) Fit(nativeW, nativeH float64) {
	if nativeW <= 0 || nativeH <= 0 {
		return
	}
	b.scale = b.canvasH / nativeH
	b.displayW = nativeW * b.scale
	b.offset = 0
	b.fitted = true
}

// Fitted reports whether an image has been fitted.
func (b *Background) Fitted() bool { return b.fitted }

// Scale is the native-to-canvas scale factor.
func (b *Background) Scale() float64 { return b.scale }

// DisplayWidth is the width of one scaled tile.
func (b *Background) DisplayWidth() float64 { return b.displayW }

// Offset is the current scroll offset, always within one tile width of zero.
func (b *Background) Offset() float64 { return b.offset }

// Scroll moves the background left by speed/divisor and wraps the offset.
func (b *Background) Scroll(speed float64) {
	if !b.fitted {
		return
	}
	b.offset -= speed / b.divisor
	if b.offset <= -b.displayW {
		b.offset += b.displayW
	}
	if b.offset >= b.displayW {
		b.offset -= b.displayW
	}
}

// Tiles returns the tiles that intersect the canvas, left to right.
func (b *Background) Tiles() []Tile {
	if !b.fitted || b.displayW <= 0 {
		return nil
	}
	copies := int(math.Ceil(b.canvasW/b.displayW)) + 2
	tiles := make([]Tile, 0, copies+2)
	for i := -1; i <= copies; i++ {
		x := b.offset + float64(i)*b.displayW
		if x+b.displayW > 0 && x < b.canvasW {
			tiles = append(tiles, Tile{X: x, W: b.displayW, H: b.canvasH})
		}
	}
	return tiles
}
