// Package bounce is an arena demo: steer around bouncing balls and pick up
// coins. Balls speed up and spawn faster as the score rises.
package bounce

import (
	"embed"
	"io/fs"
	"time"

	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/demos/kit"
	"github.com/vovakirdan/tui-scene/internal/registry"
	"github.com/vovakirdan/tui-scene/internal/scheduler"
)

//go:embed assets
var assetFS embed.FS

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// Demo implements registry.Demo.
type Demo struct {
	pack *kit.Pack
}

// New creates a Bounce demo.
func New() *Demo {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return &Demo{pack: kit.NewPack(sub)}
}

func (d *Demo) ID() string          { return "bounce" }
func (d *Demo) Title() string       { return "Bounce" }
func (d *Demo) Description() string { return "Dodge bouncing balls, grab coins" }

// Scene returns the arena init function.
func (d *Demo) Scene() scheduler.InitFunc {
	return d.arena
}

// LoadSounds registers the synthesized effects.
func (d *Demo) LoadSounds(r registry.SoundRegistry) error {
	tones := []struct {
		name string
		freq float64
		d    time.Duration
	}{
		{"coin", 880, 60 * time.Millisecond},
		{"hit", 196, 150 * time.Millisecond},
		{"spawn", 523, 40 * time.Millisecond},
	}
	for _, t := range tones {
		if err := r.RegisterTone(t.name, t.freq, t.d); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	registry.Register("bounce", func() registry.Demo {
		return New()
	})
}
