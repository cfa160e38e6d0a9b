package runner

import (
	"math"

	"github.com/vovakirdan/gravity-runner/internal/config"
	"github.com/vovakirdan/gravity-runner/internal/core"
)

// PlayerState is inferred every tick from the physics result.
type PlayerState int

const (
	StateRunning PlayerState = iota // Resting on the active bound
	StateJumping                    // Between bounds
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	if s == StateJumping {
		return "jumping"
	}
	return "running"
}

// Player is the runner sprite and its vertical physics.
type Player struct {
	X, Y          float64
	Width, Height float64
	VelocityY     float64
	Gravity       float64 // Signed: positive pulls toward the floor
	Flipped       bool
	State         PlayerState

	cfg  config.PlayerConfig
	anim Animator
}

// NewPlayer creates a player standing on the floor of area.
func NewPlayer(cfg config.PlayerConfig, anim Animator, area PlayArea) *Player {
	p := &Player{
		X:      cfg.X,
		Width:  cfg.Width,
		Height: cfg.Height,
		cfg:    cfg,
		anim:   anim,
	}
	p.Reset(area)
	return p
}

// Reset puts the player back on the floor with normal gravity.
func (p *Player) Reset(area PlayArea) {
	p.Y = area.FloorBound(p.Height)
	p.VelocityY = 0
	p.Gravity = math.Abs(p.cfg.Gravity)
	p.Flipped = false
	p.State = StateRunning
	p.anim.Reset()
}

// Update integrates one tick of physics and selects the animation frame.
func (p *Player) Update(area PlayArea) {
	p.VelocityY += p.Gravity
	p.Y += p.VelocityY

	floor := area.FloorBound(p.Height)
	ceiling := area.CeilingBound()

	if !p.Flipped {
		p.settle(p.Y >= floor, floor)
	} else {
		p.settle(p.Y <= ceiling, ceiling)
	}
	p.Y = core.ClampF(p.Y, ceiling, floor)

	p.anim.Advance(p.State)
}

func (p *Player) settle(grounded bool, bound float64) {
	if !grounded {
		p.State = StateJumping
		return
	}
	p.Y = bound
	p.VelocityY = 0
	p.State = StateRunning
}

// FlipGravity inverts gravity and nudges the player toward the new bound.
func (p *Player) FlipGravity() {
	p.Flipped = !p.Flipped
	p.Gravity = -p.Gravity
	if p.Flipped {
		p.VelocityY = -p.cfg.FlipNudge
	} else {
		p.VelocityY = p.cfg.FlipNudge
	}
}

// Box returns the collision box.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.Width, p.Height)
}

// Frame returns the current sprite frame index.
func (p *Player) Frame() int {
	return p.anim.Frame()
}
