// Package platformer is a side-scrolling demo built from ASCII level maps.
// The hero is persistent and is carried from level to level through doors.
package platformer

import (
	"embed"
	"io/fs"
	"time"

	"github.com/vovakirdan/tui-scene/internal/demos/kit"
	"github.com/vovakirdan/tui-scene/internal/registry"
	"github.com/vovakirdan/tui-scene/internal/scene"
	"github.com/vovakirdan/tui-scene/internal/scheduler"
)

//go:embed assets
var assetFS embed.FS

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Demo implements registry.Demo.
type Demo struct {
	pack *kit.Pack
}

// New creates a Platformer demo.
func New() *Demo {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return &Demo{pack: kit.NewPack(sub)}
}

func (d *Demo) ID() string          { return "platformer" }
func (d *Demo) Title() string       { return "Platformer" }
func (d *Demo) Description() string { return "Run, jump and find the door" }

// Scene returns the init function for a fresh run from the first level.
func (d *Demo) Scene() scheduler.InitFunc {
	return d.start
}

func (d *Demo) start(e *scheduler.Engine, s *scene.Scene) error {
	e.ResetScore()
	return d.level(0)(e, s)
}

// LoadSounds registers synthesized effects and the decoded door chime.
func (d *Demo) LoadSounds(r registry.SoundRegistry) error {
	tones := []struct {
		name string
		freq float64
		d    time.Duration
	}{
		{"jump", 660, 50 * time.Millisecond},
		{"coin", 990, 60 * time.Millisecond},
		{"hurt", 180, 150 * time.Millisecond},
	}
	for _, t := range tones {
		if err := r.RegisterTone(t.name, t.freq, t.d); err != nil {
			return err
		}
	}

	bundle, err := d.pack.Bundle(nil)
	if err != nil {
		return err
	}
	bundle.RegisterSounds(r)
	return nil
}

func init() {
	registry.Register("platformer", func() registry.Demo {
		return New()
	})
}
