package runner

import "github.com/vovakirdan/gravity-runner/internal/config"

// FrameSet maps each player state to its ordered sprite frames.
type FrameSet struct {
	Run     []int
	Air     []int
	Stagger int // Ticks between frame advances
}

// NewFrameSet builds a frame set from the animation config.
func NewFrameSet(cfg config.AnimationConfig) FrameSet {
	return FrameSet{
		Run:     append([]int(nil), cfg.Run...),
		Air:     append([]int(nil), cfg.Air...),
		Stagger: cfg.StaggerFrames,
	}
}

// Frames returns the frame list for a state.
func (fs FrameSet) Frames(state PlayerState) []int {
	if state == StateJumping {
		return fs.Air
	}
	return fs.Run
}

// Animator selects the sprite frame each tick.
type Animator struct {
	set       FrameSet
	available int // Number of loaded sprite frames
	ticks     int
	pos       int
	frame     int
}

// NewAnimator creates an animator. Frame indices at or beyond available
// resolve to the last loaded frame.
func NewAnimator(set FrameSet, available int) Animator {
	a := Animator{set: set, available: available}
	a.Reset()
	return a
}

// Reset returns to the first running frame.
func (a *Animator) Reset() {
	a.ticks = 0
	a.pos = 0
	a.frame = a.resolve(a.set.Run, 0)
}

// Advance selects the frame for this tick. Running cycles through the run
// frames, stepping when the tick counter hits a stagger multiple; the air
// frames do the same on their own list.
func (a *Animator) Advance(state PlayerState) {
	frames := a.set.Frames(state)
	stagger := a.set.Stagger
	if stagger <= 0 {
		stagger = 1
	}

	if state == StateRunning {
		if a.ticks%stagger == 0 && len(frames) > 0 {
			a.pos = (a.pos + 1) % len(frames)
		}
		a.frame = a.resolve(frames, a.pos)
	} else {
		a.frame = a.resolve(frames, a.ticks/stagger)
	}
	a.ticks++
}

// Frame returns the selected sprite index.
func (a *Animator) Frame() int {
	return a.frame
}

func (a *Animator) resolve(frames []int, i int) int {
	if len(frames) == 0 {
		return 0
	}
	idx := frames[i%len(frames)]
	if a.available > 0 && idx >= a.available {
		idx = a.available - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
