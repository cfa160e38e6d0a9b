package runner

import (
	"math"

	"github.com/vovakirdan/gravity-runner/internal/core"
)

// PlayerSnapshot is the drawable state of the player.
type PlayerSnapshot struct {
	Box       core.Box
	VelocityY float64
	Gravity   float64
	Flipped   bool
	State     PlayerState
	Frame     int
}

// Snapshot is a read-only copy of everything a front-end draws.
type Snapshot struct {
	Phase     Phase
	Tick      int
	Score     int
	HighScore int
	Speed     float64

	Area   PlayArea
	Player PlayerSnapshot

	// Obstacles is a copy, oldest first.
	Obstacles []Obstacle

	// Background tiles intersecting the canvas; empty until fitted.
	Background       []Tile
	BackgroundOffset float64
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	p := g.player
	return Snapshot{
		Phase:     g.phase,
		Tick:      g.tickCount,
		Score:     g.score,
		HighScore: g.highScore,
		Speed:     g.speed,
		Area:      g.area,
		Player: PlayerSnapshot{
			Box:       p.Box(),
			VelocityY: p.VelocityY,
			Gravity:   p.Gravity,
			Flipped:   p.Flipped,
			State:     p.State,
			Frame:     p.Frame(),
		},
		Obstacles:        append([]Obstacle(nil), g.obstacles.Obstacles()...),
		Background:       g.background.Tiles(),
		BackgroundOffset: g.background.Offset(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Phase)                   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Tick)              //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore)         //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Speed)
	h = h*31 + math.Float64bits(snap.Player.Box.Y)
	h = h*31 + math.Float64bits(snap.Player.VelocityY)
	h = h*31 + uint64(snap.Player.Frame) //#nosec G115 -- hash computation
	if snap.Player.Flipped {
		h = h*31 + 1
	}
	for _, o := range snap.Obstacles {
		h = h*31 + math.Float64bits(o.X)
		h = h*31 + math.Float64bits(o.Y)
		h = h*31 + math.Float64bits(o.H)
	}
	h = h*31 + math.Float64bits(snap.BackgroundOffset)
	return h
}
