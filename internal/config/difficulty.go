package config

import "math"

// DifficultyManager calculates dynamic demo parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/steps.
func (d *DifficultyManager) Level(score int, steps int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(steps) / maxAt
	default:
		return d.initialLevel
	}
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales a base speed up to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, score int, steps int) float64 {
	return baseSpeed * (1.0 + d.Level(score, steps)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval shortens a spawn interval as difficulty rises, never below minimum.
func (d *DifficultyManager) Interval(base, minimum int, score int, steps int) int {
	reduction := d.Level(score, steps) * d.cfg.Scaling.IntervalReduction
	result := int(math.Round(float64(base) * (1 - reduction)))
	if result < minimum {
		result = minimum
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
