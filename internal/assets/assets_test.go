package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

const heroSheet = `
name: hero
origin_x: 1
color: bright_cyan
frames:
  - [" o ", "/|\\"]
  - [" o ", "/ \\"]
animations:
  walk:
    frames: [0, 1]
    speed: 0.5
`

func silentWAV(t *testing.T, samples int) []byte {
	t.Helper()
	p := filepath.Join(t.TempDir(), "blip.wav")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	format := beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Take(samples, generators.Silence(-1)), format); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	f.Close()
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read wav: %v", err)
	}
	return data
}

func wait(t *testing.T, h *Handle) (*Bundle, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.Wait(ctx)
}

type registry map[string]*beep.Buffer

func (r registry) Register(name string, buf *beep.Buffer) { r[name] = buf }

func TestLoadBundle(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/hero.yaml": {Data: []byte(heroSheet)},
		"sprites/notes.txt": {Data: []byte("ignored")},
		"sounds/blip.wav":   {Data: silentWAV(t, 441)},
	}

	b, err := wait(t, Load(context.Background(), fsys, log.New(io.Discard)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	sp := b.Sprite("hero")
	if sp == nil {
		t.Fatal("hero sprite missing")
	}
	if sp.W != 3 || sp.H != 2 || sp.OriginX != 1 || sp.Color != core.ColorBrightCyan {
		t.Errorf("sprite = %+v", sp)
	}
	if sp.FrameCount() != 2 || sp.Frames[0][1] != `/|\` {
		t.Errorf("frames = %q", sp.Frames)
	}

	th := thing.New(0, 0, core.Box2(0, 0, 3, 2))
	b.Apply(th, "hero")
	if err := th.SetAnimation("walk"); err != nil {
		t.Errorf("SetAnimation(walk) after Apply: %v", err)
	}

	buf, ok := b.Sounds["blip"]
	if !ok {
		t.Fatal("blip sound missing")
	}
	if buf.Len() != 441 || buf.Format().SampleRate != 22050 {
		t.Errorf("blip: len %d rate %d", buf.Len(), buf.Format().SampleRate)
	}

	reg := registry{}
	b.RegisterSounds(reg)
	if reg["blip"] != buf {
		t.Error("RegisterSounds should pass decoded buffers through")
	}
}

func TestLoadEmptyFS(t *testing.T) {
	b, err := wait(t, Load(context.Background(), fstest.MapFS{}, nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(b.Sprites) != 0 || len(b.Sounds) != 0 {
		t.Error("empty filesystem should give an empty bundle")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{"bad yaml", fstest.MapFS{"sprites/a.yaml": {Data: []byte("frames: [")}}, "cannot parse"},
		{"no frames", fstest.MapFS{"sprites/a.yaml": {Data: []byte("name: a")}}, "no frames"},
		{"bad color", fstest.MapFS{"sprites/a.yaml": {Data: []byte("color: plaid\nframes: [[x]]")}}, "unknown color"},
		{"clip out of range", fstest.MapFS{"sprites/a.yaml": {Data: []byte("frames: [[x]]\nanimations: {run: {frames: [3]}}")}}, "out of range"},
		{"bad wav", fstest.MapFS{"sounds/a.wav": {Data: []byte("not a wav")}}, "cannot decode"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wait(t, Load(context.Background(), tc.fsys, nil))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() error = %v, expected %q", err, tc.want)
			}
		})
	}
}

func TestHandleNotReady(t *testing.T) {
	h := &Handle{done: make(chan struct{})}
	if _, err := h.Bundle(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Bundle() error = %v, expected ErrNotReady", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, expected context.Canceled", err)
	}
}

func TestMissingSpriteWarns(t *testing.T) {
	var buf bytes.Buffer
	b := newBundle(log.New(&buf))
	th := thing.New(0, 0, core.Box2(0, 0, 1, 1))

	b.Apply(th, "ghost")
	if th.Sprite != nil {
		t.Error("Apply of unknown sprite should leave the thing untouched")
	}
	if !strings.Contains(buf.String(), "unknown sprite") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}
