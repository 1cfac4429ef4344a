// Package kit holds pieces shared by the bundled demos.
package kit

import (
	"context"
	"io/fs"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-scene/internal/assets"
	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

// LoadTimeout bounds how long a scene init waits for its assets.
const LoadTimeout = 5 * time.Second

// Pack loads an asset filesystem once, on first use.
type Pack struct {
	fsys   fs.FS
	once   sync.Once
	handle *assets.Handle
}

// NewPack wraps an asset filesystem laid out as assets.Load expects.
func NewPack(fsys fs.FS) *Pack {
	return &Pack{fsys: fsys}
}

// Start begins loading in the background if it has not started yet.
func (p *Pack) Start(logger *log.Logger) *assets.Handle {
	p.once.Do(func() {
		p.handle = assets.Load(context.Background(), p.fsys, logger)
	})
	return p.handle
}

// Bundle waits for the pack to finish loading.
func (p *Pack) Bundle(logger *log.Logger) (*assets.Bundle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), LoadTimeout)
	defer cancel()
	return p.Start(logger).Wait(ctx)
}

// Wall returns a solid block covering w by h cells from (x, y).
func Wall(x, y, w, h float64, glyph rune, c core.Color) *thing.Thing {
	t := thing.New(x, y, core.Box2(0, 0, w, h))
	t.Name = "wall"
	t.Solid = true
	t.Glyph = glyph
	t.Color = c
	t.Hooks = thing.HookFuncs{DrawFn: func(t *thing.Thing, r core.Renderer) {
		for dy := 0.0; dy < h; dy++ {
			for dx := 0.0; dx < w; dx++ {
				r.Plot(t.Pos.X()+dx, t.Pos.Y()+dy, t.Glyph, t.Color)
			}
		}
	}}
	return t
}

// TextCentered draws s centred on row y of the renderer's current space.
func TextCentered(r core.Renderer, y float64, s string, c core.Color) {
	w, _ := r.Size()
	x := (w - len([]rune(s))) / 2
	r.Text(float64(max(x, 0)), y, s, c)
}
