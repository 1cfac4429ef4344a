// Package config provides YAML-based engine and demo configuration loading.
package config

import (
	"errors"
	"fmt"
)

// Engine contains the scheduler, scene and platform settings.
type Engine struct {
	StepsPerSecond   float64      `yaml:"steps_per_second"`    // Nominal simulation rate
	MaxStepsPerFrame int          `yaml:"max_steps_per_frame"` // Catch-up cap per display callback
	UpdateSpeed      float64      `yaml:"update_speed"`        // Simulation speed multiplier
	Uncapped         bool         `yaml:"uncapped"`            // Render on every callback while focused
	DisplayFPS       int          `yaml:"display_fps"`         // Display refresh callbacks per second
	CellSize         float64      `yaml:"cell_size"`           // Spatial hash cell edge
	StepSize         float64      `yaml:"step_size"`           // Default collision sweep granularity
	KeyHoldMS        int          `yaml:"key_hold_ms"`         // Keys without release events expire after this
	LogLevel         string       `yaml:"log_level"`
	Camera           CameraConfig `yaml:"camera"`
	Audio            AudioConfig  `yaml:"audio"`
}

// CameraConfig defines the 3D camera projection.
type CameraConfig struct {
	FOV  float64 `yaml:"fov"` // Degrees
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// AudioConfig controls the sound device.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Linear gain
}

// Validate rejects settings the scheduler cannot run with.
func (e Engine) Validate() error {
	var errs []error
	if e.StepsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("steps_per_second must be positive, got %v", e.StepsPerSecond))
	}
	if e.MaxStepsPerFrame <= 0 {
		errs = append(errs, fmt.Errorf("max_steps_per_frame must be positive, got %d", e.MaxStepsPerFrame))
	}
	if e.UpdateSpeed < 0 {
		errs = append(errs, fmt.Errorf("update_speed must not be negative, got %v", e.UpdateSpeed))
	}
	if e.DisplayFPS <= 0 {
		errs = append(errs, fmt.Errorf("display_fps must be positive, got %d", e.DisplayFPS))
	}
	if e.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %v", e.CellSize))
	}
	if e.StepSize <= 0 {
		errs = append(errs, fmt.Errorf("step_size must be positive, got %v", e.StepSize))
	}
	if e.Camera.Near <= 0 || e.Camera.Far <= e.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far must satisfy 0 < near < far, got %v/%v", e.Camera.Near, e.Camera.Far))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid engine config: %w", errors.Join(errs...))
	}
	return nil
}

// BounceConfig contains all configuration for the Bounce demo.
type BounceConfig struct {
	Player     BouncePlayer     `yaml:"player"`
	Balls      BounceBalls      `yaml:"balls"`
	Gameplay   BounceGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BouncePlayer defines player parameters for Bounce.
type BouncePlayer struct {
	Speed float64 `yaml:"speed"` // Cells per step
}

// BounceBalls defines ball parameters for Bounce.
type BounceBalls struct {
	Initial  int     `yaml:"initial"`
	Max      int     `yaml:"max"`
	Speed    float64 `yaml:"speed"`
	Interval int     `yaml:"spawn_interval"` // Steps between spawns at difficulty 0
}

// BounceGameplay defines scoring and lives for Bounce.
type BounceGameplay struct {
	Lives       int     `yaml:"lives"`
	CoinPoints  int     `yaml:"coin_points"`
	CoinEvery   int     `yaml:"coin_every"` // Steps between coin spawns
	ImpactSteps float64 `yaml:"impact_steps"`
	ShakePower  float64 `yaml:"shake_power"`
}

// PlatformerConfig contains all configuration for the Platformer demo.
type PlatformerConfig struct {
	Physics  PlatformerPhysics `yaml:"physics"`
	Gameplay PlatformerGame    `yaml:"gameplay"`
	Levels   [][]string        `yaml:"levels"` // ASCII maps, one list of rows per level
}

// PlatformerPhysics defines physics parameters for Platformer.
type PlatformerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	RunSpeed     float64 `yaml:"run_speed"`
	CoyoteSteps  int     `yaml:"coyote_steps"` // Jump grace after leaving a ledge
}

// PlatformerGame defines scoring for Platformer.
type PlatformerGame struct {
	CoinPoints  int `yaml:"coin_points"`
	LevelPoints int `yaml:"level_points"`
	Lives       int `yaml:"lives"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/steps at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies a difficulty config for a preset.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(preset)
}
