package core

// RuntimeConfig contains platform parameters passed to the game at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells (terminal) or pixels (window)
	ScreenH  int   // Screen height in cells or pixels
	TickRate int   // Ticks per second the platform aims for (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary a front-end needs to drive its loop.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score including the current run
	Started   bool // Whether the first run has begun
	GameOver  bool // Whether the current run has ended
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State GameState
}
