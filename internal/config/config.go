// Package config provides YAML/TOML-based game configuration loading for
// the gravity runner.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tunables of the gravity runner.
type RunnerConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas" toml:"canvas"`
	PlayArea   PlayAreaConfig   `yaml:"play_area" toml:"play_area"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Animation  AnimationConfig  `yaml:"animation" toml:"animation"`
	Obstacles  ObstacleConfig   `yaml:"obstacles" toml:"obstacles"`
	Speed      SpeedConfig      `yaml:"speed" toml:"speed"`
	Background BackgroundConfig `yaml:"background" toml:"background"`
	Assets     AssetsConfig     `yaml:"assets" toml:"assets"`
	Storage    StorageConfig    `yaml:"storage" toml:"storage"`
}

// CanvasConfig is the logical drawing surface in world units.
type CanvasConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PlayAreaConfig defines the wall insets that bound the playable band.
type PlayAreaConfig struct {
	TopWallPercent    float64 `yaml:"top_wall_percent" toml:"top_wall_percent"`
	BottomWallPercent float64 `yaml:"bottom_wall_percent" toml:"bottom_wall_percent"`
	DefaultPadding    float64 `yaml:"default_padding" toml:"default_padding"` // Used until the background loads
}

// PlayerConfig defines the player's hitbox and vertical physics.
type PlayerConfig struct {
	X         float64 `yaml:"x" toml:"x"`
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
	Gravity   float64 `yaml:"gravity" toml:"gravity"`       // Acceleration magnitude per tick
	FlipNudge float64 `yaml:"flip_nudge" toml:"flip_nudge"` // Velocity set on a gravity flip
}

// AnimationConfig maps player states to sprite frame indices.
type AnimationConfig struct {
	StaggerFrames int   `yaml:"stagger_frames" toml:"stagger_frames"`
	Run           []int `yaml:"run" toml:"run"`
	Air           []int `yaml:"air" toml:"air"`
}

// ObstacleConfig defines obstacle spawning.
type ObstacleConfig struct {
	SpawnEvery    int     `yaml:"spawn_every" toml:"spawn_every"` // Frames between spawns
	Width         float64 `yaml:"width" toml:"width"`
	MinHeight     float64 `yaml:"min_height" toml:"min_height"`
	HeightRange   float64 `yaml:"height_range" toml:"height_range"`
	CeilingChance float64 `yaml:"ceiling_chance" toml:"ceiling_chance"`
}

// SpeedConfig defines the fixed speed ramp.
type SpeedConfig struct {
	Base      float64 `yaml:"base" toml:"base"`
	Increment float64 `yaml:"increment" toml:"increment"`
	Every     int     `yaml:"every" toml:"every"` // Score multiple that triggers an increment
}

// BackgroundConfig defines the parallax scroll.
type BackgroundConfig struct {
	ScrollDivisor float64 `yaml:"scroll_divisor" toml:"scroll_divisor"`
}

// AssetsConfig lists the image paths relative to the asset source.
type AssetsConfig struct {
	Background         string `yaml:"background" toml:"background"`
	Obstacle           string `yaml:"obstacle" toml:"obstacle"`
	PlayerFramePattern string `yaml:"player_frame_pattern" toml:"player_frame_pattern"`
	PlayerFrameCount   int    `yaml:"player_frame_count" toml:"player_frame_count"`
}

// PlayerFrames expands the frame pattern into the ordered list of paths.
func (a AssetsConfig) PlayerFrames() []string {
	paths := make([]string, a.PlayerFrameCount)
	for i := range paths {
		paths[i] = fmt.Sprintf(a.PlayerFramePattern, i)
	}
	return paths
}

// StorageConfig names the persisted high-score entry.
type StorageConfig struct {
	HighScoreKey string `yaml:"high_score_key" toml:"high_score_key"`
}

// Validate checks that the configuration describes a playable game.
func (c RunnerConfig) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.PlayArea.TopWallPercent < 0 || c.PlayArea.BottomWallPercent < 0 {
		errs = append(errs, errors.New("wall percents must not be negative"))
	}
	band := c.Canvas.Height * (1 - c.PlayArea.TopWallPercent - c.PlayArea.BottomWallPercent)
	if band < c.Player.Height {
		errs = append(errs, fmt.Errorf("play band %.0f is smaller than the player", band))
	}
	if c.Animation.StaggerFrames <= 0 {
		errs = append(errs, errors.New("animation.stagger_frames must be positive"))
	}
	if len(c.Animation.Run) == 0 || len(c.Animation.Air) == 0 {
		errs = append(errs, errors.New("animation needs at least one run and one air frame"))
	}
	if c.Obstacles.SpawnEvery <= 0 {
		errs = append(errs, errors.New("obstacles.spawn_every must be positive"))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.MinHeight <= 0 || c.Obstacles.HeightRange < 0 {
		errs = append(errs, errors.New("obstacle dimensions must be positive"))
	}
	if c.Speed.Base <= 0 || c.Speed.Every <= 0 {
		errs = append(errs, errors.New("speed.base and speed.every must be positive"))
	}
	if c.Background.ScrollDivisor <= 0 {
		errs = append(errs, errors.New("background.scroll_divisor must be positive"))
	}
	if c.Assets.Background == "" || c.Assets.Obstacle == "" || c.Assets.PlayerFrameCount <= 0 {
		errs = append(errs, errors.New("assets need a background, an obstacle and at least one player frame"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}
