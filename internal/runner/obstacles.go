package runner

import (
	"math/rand"

	"github.com/vovakirdan/gravity-runner/internal/config"
	"github.com/vovakirdan/gravity-runner/internal/core"
)

// Attachment tells which wall an obstacle hangs from.
type Attachment int

const (
	AttachFloor Attachment = iota
	AttachCeiling
)

// String returns a human-readable name for the attachment.
func (a Attachment) String() string {
	if a == AttachCeiling {
		return "ceiling"
	}
	return "floor"
}

// Obstacle is a block the player must not touch.
type Obstacle struct {
	core.Box
	Attachment Attachment
}

// ObstacleManager spawns obstacles on a fixed frame interval, scrolls them
// left and drops the ones that left the canvas.
type ObstacleManager struct {
	obstacles  []Obstacle
	rng        *rand.Rand
	cfg        config.ObstacleConfig
	canvasW    float64
	frameCount int
}

// NewObstacleManager creates a manager with a seeded RNG.
func NewObstacleManager(cfg config.ObstacleConfig, canvasW float64, seed int64) *ObstacleManager {
	return &ObstacleManager{
		obstacles: make([]Obstacle, 0, 16),
		rng:       rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay randomness
		cfg:       cfg,
		canvasW:   canvasW,
	}
}

// Reseed replaces the RNG.
func (om *ObstacleManager) Reseed(seed int64) {
	om.rng = rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness
}

// Reset clears all obstacles and the spawn counter.
func (om *ObstacleManager) Reset() {
	om.obstacles = om.obstacles[:0]
	om.frameCount = 0
}

// Update runs one tick: spawn on the interval, advance, cull.
func (om *ObstacleManager) Update(speed float64, area PlayArea) {
	om.frameCount++
	if om.frameCount%om.cfg.SpawnEvery == 0 {
		om.spawn(area)
	}

	for i := range om.obstacles {
		om.obstacles[i].X -= speed
	}

	kept := om.obstacles[:0]
	for _, o := range om.obstacles {
		if o.Right() > 0 {
			kept = append(kept, o)
		}
	}
	om.obstacles = kept
}

func (om *ObstacleManager) spawn(area PlayArea) {
	h := om.rng.Float64()*om.cfg.HeightRange + om.cfg.MinHeight

	o := Obstacle{Attachment: AttachFloor}
	if om.rng.Float64() < om.cfg.CeilingChance {
		o.Attachment = AttachCeiling
		o.Box = core.NewBox(om.canvasW, area.CeilingBound(), om.cfg.Width, h)
	} else {
		o.Box = core.NewBox(om.canvasW, area.FloorY()-h, om.cfg.Width, h)
	}
	om.obstacles = append(om.obstacles, o)
}

// Obstacles returns the live obstacles, oldest first. The slice is owned
// by the manager.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}

// FrameCount returns the ticks since the last reset.
func (om *ObstacleManager) FrameCount() int {
	return om.frameCount
}

// Collides reports whether b overlaps any live obstacle.
func (om *ObstacleManager) Collides(b core.Box) bool {
	for _, o := range om.obstacles {
		if b.Intersects(o.Box) {
			return true
		}
	}
	return false
}
