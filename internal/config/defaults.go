package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultEngine returns the default engine configuration.
func DefaultEngine() Engine {
	return Engine{
		StepsPerSecond:   60,
		MaxStepsPerFrame: 5,
		UpdateSpeed:      1,
		DisplayFPS:       60,
		CellSize:         64,
		StepSize:         1,
		KeyHoldMS:        300,
		LogLevel:         "info",
		Camera: CameraConfig{
			FOV:  60,
			Near: 0.1,
			Far:  1000,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  1,
		},
	}
}

// DefaultBounceConfig returns the default Bounce configuration.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Player: BouncePlayer{
			Speed: 1.0,
		},
		Balls: BounceBalls{
			Initial:  2,
			Max:      8,
			Speed:    0.5,
			Interval: 600, // 10 seconds at 60 steps
		},
		Gameplay: BounceGameplay{
			Lives:       3,
			CoinPoints:  10,
			CoinEvery:   90,
			ImpactSteps: 8,
			ShakePower:  1.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.6,
			},
		},
	}
}

// DefaultPlatformerConfig returns the default Platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:      0.08,
			JumpImpulse:  -1.1,
			MaxFallSpeed: 1.0,
			RunSpeed:     0.6,
			CoyoteSteps:  6,
		},
		Gameplay: PlatformerGame{
			CoinPoints:  5,
			LevelPoints: 50,
			Lives:       3,
		},
		Levels: [][]string{
			{
				"########################################",
				"#                                      #",
				"#                    o o o             #",
				"#                  #######          D  #",
				"#        o o                     ##### #",
				"#      ######          ^^              #",
				"#  P                 ######            #",
				"########################################",
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "engine":
		return defaultEngineYAML
	case "bounce":
		return defaultBounceYAML
	case "platformer":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
