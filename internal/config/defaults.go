package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration. It mirrors
// defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Canvas: CanvasConfig{
			Width:  1200,
			Height: 600,
		},
		PlayArea: PlayAreaConfig{
			TopWallPercent:    0.28,
			BottomWallPercent: 0.28,
			DefaultPadding:    50,
		},
		Player: PlayerConfig{
			X:         150,
			Width:     45,
			Height:    45,
			Gravity:   0.5,
			FlipNudge: 0.5,
		},
		Animation: AnimationConfig{
			StaggerFrames: 12,
			Run:           []int{0, 1, 2, 3},
			Air:           []int{4},
		},
		Obstacles: ObstacleConfig{
			SpawnEvery:    100,
			Width:         50,
			MinHeight:     40,
			HeightRange:   60,
			CeilingChance: 0.5,
		},
		Speed: SpeedConfig{
			Base:      1.5,
			Increment: 0.5,
			Every:     500,
		},
		Background: BackgroundConfig{
			ScrollDivisor: 4,
		},
		Assets: AssetsConfig{
			Background:         "images/background.png",
			Obstacle:           "images/obstacle.png",
			PlayerFramePattern: "images/player_frames/player_frames_%d.png",
			PlayerFrameCount:   5,
		},
		Storage: StorageConfig{
			HighScoreKey: "highScore",
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `gravrun config`.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
