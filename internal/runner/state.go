package runner

// Phase is the top-level state of a game session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Start screen, nothing simulated
	PhasePlaying                 // Ticks advance the world
	PhaseGameOver                // Frozen until retry
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the host loop should keep scheduling ticks.
func (p Phase) Ticking() bool {
	return p == PhasePlaying
}
