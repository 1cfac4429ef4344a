// Package assets loads sprite sheets and sounds concurrently.
//
// Load returns a Handle immediately. Scene init functions wait on it before
// the first step; nothing waits on it mid-step.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

// ErrNotReady is returned by Handle.Bundle before loading finishes.
var ErrNotReady = errors.New("assets: not loaded yet")

// Directory layout inside the asset filesystem.
const (
	SpriteDir = "sprites"
	SoundDir  = "sounds"
)

// maxParallel bounds concurrent file decodes.
const maxParallel = 4

// sheetFile is the YAML shape of one sprite sheet.
type sheetFile struct {
	Name       string               `yaml:"name"`
	W          int                  `yaml:"w"`
	H          int                  `yaml:"h"`
	OriginX    int                  `yaml:"origin_x"`
	OriginY    int                  `yaml:"origin_y"`
	Color      string               `yaml:"color"`
	Frames     [][]string           `yaml:"frames"`
	Animations map[string]thing.Clip `yaml:"animations"`
}

// Bundle is a finished set of named assets.
type Bundle struct {
	Sprites map[string]*core.Sprite
	Clips   map[string]map[string]thing.Clip // Per sprite name
	Sounds  map[string]*beep.Buffer

	logger *log.Logger
}

func newBundle(logger *log.Logger) *Bundle {
	return &Bundle{
		Sprites: make(map[string]*core.Sprite),
		Clips:   make(map[string]map[string]thing.Clip),
		Sounds:  make(map[string]*beep.Buffer),
		logger:  logger,
	}
}

// Sprite returns a named sheet. Missing names are logged and return nil,
// which draws nothing.
func (b *Bundle) Sprite(name string) *core.Sprite {
	sp, ok := b.Sprites[name]
	if !ok {
		b.logger.Warn("assets: unknown sprite", "name", name)
	}
	return sp
}

// Apply sets a thing's sprite and animation table from a named sheet.
func (b *Bundle) Apply(t *thing.Thing, name string) {
	sp := b.Sprite(name)
	if sp == nil {
		return
	}
	t.Sprite = sp
	if clips, ok := b.Clips[name]; ok {
		t.DefineAnimations(clips)
	}
}

// SoundRegistry receives decoded sounds.
type SoundRegistry interface {
	Register(name string, buf *beep.Buffer)
}

// RegisterSounds hands every decoded sound to a registry.
func (b *Bundle) RegisterSounds(r SoundRegistry) {
	for name, buf := range b.Sounds {
		r.Register(name, buf)
	}
}

// Handle is a pending load.
type Handle struct {
	done   chan struct{}
	bundle *Bundle
	err    error
}

// Wait blocks until loading finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) (*Bundle, error) {
	select {
	case <-h.done:
		return h.bundle, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready reports whether loading has finished.
func (h *Handle) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Bundle returns the result without blocking.
func (h *Handle) Bundle() (*Bundle, error) {
	if !h.Ready() {
		return nil, ErrNotReady
	}
	return h.bundle, h.err
}

// Load decodes every sprite sheet under sprites/ and every WAV under sounds/
// in fsys. Missing directories are treated as empty.
func Load(ctx context.Context, fsys fs.FS, logger *log.Logger) *Handle {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Handle{done: make(chan struct{})}

	go func() {
		defer close(h.done)
		b, err := load(ctx, fsys, logger)
		if err != nil {
			h.err = err
			return
		}
		h.bundle = b
	}()
	return h
}

func load(ctx context.Context, fsys fs.FS, logger *log.Logger) (*Bundle, error) {
	sprites, err := list(fsys, SpriteDir, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	sounds, err := list(fsys, SoundDir, ".wav")
	if err != nil {
		return nil, err
	}

	b := newBundle(logger)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for _, p := range sprites {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sp, clips, err := loadSheet(fsys, p)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if _, dup := b.Sprites[sp.Name]; dup {
				return fmt.Errorf("assets: duplicate sprite %q in %s", sp.Name, p)
			}
			b.Sprites[sp.Name] = sp
			if len(clips) > 0 {
				b.Clips[sp.Name] = clips
			}
			return nil
		})
	}
	for _, p := range sounds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf, err := loadWAV(fsys, p)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(path.Base(p), path.Ext(p))
			mu.Lock()
			b.Sounds[name] = buf
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("assets: loaded", "sprites", len(b.Sprites), "sounds", len(b.Sounds))
	return b, nil
}

func list(fsys fs.FS, dir string, exts ...string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("assets: cannot list %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				out = append(out, path.Join(dir, e.Name()))
				break
			}
		}
	}
	return out, nil
}

func loadSheet(fsys fs.FS, p string) (*core.Sprite, map[string]thing.Clip, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, nil, fmt.Errorf("assets: cannot read %s: %w", p, err)
	}

	var sf sheetFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("assets: cannot parse %s: %w", p, err)
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if len(sf.Frames) == 0 {
		return nil, nil, fmt.Errorf("assets: sprite %q has no frames", sf.Name)
	}
	color, ok := core.ParseColor(sf.Color)
	if !ok {
		return nil, nil, fmt.Errorf("assets: sprite %q: unknown color %q", sf.Name, sf.Color)
	}

	w, h := sf.W, sf.H
	for _, frame := range sf.Frames {
		h = max(h, len(frame))
		for _, row := range frame {
			w = max(w, len([]rune(row)))
		}
	}
	for name, clip := range sf.Animations {
		for _, f := range clip.Frames {
			if f < 0 || f >= len(sf.Frames) {
				return nil, nil, fmt.Errorf("assets: sprite %q clip %q: frame %d out of range", sf.Name, name, f)
			}
		}
	}

	sp := &core.Sprite{
		Name:    sf.Name,
		W:       w,
		H:       h,
		OriginX: sf.OriginX,
		OriginY: sf.OriginY,
		Color:   color,
		Frames:  sf.Frames,
	}
	return sp, sf.Animations, nil
}

func loadWAV(fsys fs.FS, p string) (*beep.Buffer, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot open %s: %w", p, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot decode %s: %w", p, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("assets: cannot decode %s: %w", p, err)
	}
	return buf, nil
}
