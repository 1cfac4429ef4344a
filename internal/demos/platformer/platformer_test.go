package platformer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/registry"
	"github.com/vovakirdan/tui-scene/internal/scene"
	"github.com/vovakirdan/tui-scene/internal/scheduler"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

const stepMS = 1000.0 / 1024

type runner struct {
	t *testing.T
	e *scheduler.Engine
	n int
}

func start(t *testing.T) *runner {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultEngine()
	cfg.StepsPerSecond = 1024
	e := scheduler.New(cfg, scheduler.WithViewSize(60, 20))
	e.SetScene(New().Scene())
	r := &runner{t: t, e: e}
	r.frames(1)
	return r
}

func (r *runner) frames(n int) {
	r.t.Helper()
	for range n {
		if _, err := r.e.Frame(float64(r.n) * stepMS); err != nil {
			r.t.Fatalf("Frame() error = %v", err)
		}
		r.n++
	}
}

func (r *runner) hero() (*thing.Thing, *hero) {
	r.t.Helper()
	t := r.e.Scene().Named("hero")
	if t == nil {
		r.t.Fatal("hero missing")
	}
	return t, t.Hooks.(*hero)
}

func (r *runner) find(name string) *thing.Thing {
	for _, t := range r.e.Scene().Things() {
		if t.Name == name && !t.Dead {
			return t
		}
	}
	r.t.Fatalf("no %s in scene", name)
	return nil
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("platformer") {
		t.Fatal("platformer not registered")
	}
}

func TestLevelBuild(t *testing.T) {
	r := start(t)
	level := config.DefaultPlatformerConfig().Levels
	if len(level) == 0 {
		t.Fatal("no default levels")
	}

	var want int
	for _, row := range config.DefaultPlatformerConfig().Levels[0] {
		want += strings.Count(row, "o")
	}
	var coins, walls int
	for _, th := range r.e.Scene().Things() {
		switch th.Name {
		case "coin":
			coins++
		case "wall":
			walls++
		}
	}
	if coins != want {
		t.Errorf("coins = %d, expected %d", coins, want)
	}
	if walls == 0 {
		t.Error("no walls built")
	}

	door := r.find("door")
	if door.Sprite == nil || door.Animation() != "pulse" {
		t.Error("door should use its animated sheet")
	}
}

func TestHeroLandsAndJumps(t *testing.T) {
	r := start(t)
	th, h := r.hero()
	// The first level starts the hero directly above the floor, so it
	// settles one pushback above its spawn cell.
	spawnY := h.lv.spawn.Y()

	r.frames(20)
	if !th.Contacts.Down {
		t.Fatal("hero should rest on the floor")
	}
	if math.Abs(th.Pos.Y()-(spawnY-thing.Pushback)) > 1e-9 {
		t.Errorf("hero y = %v, expected %v", th.Pos.Y(), spawnY-thing.Pushback)
	}

	r.e.Input().KeyDown("space")
	r.frames(4)
	if th.Pos.Y() >= spawnY-2 {
		t.Errorf("hero y = %v after jump, expected above %v", th.Pos.Y(), spawnY-2)
	}
	if th.Animation() != "jump" {
		t.Errorf("Animation() = %q in the air, expected jump", th.Animation())
	}
}

func TestSpikesCostALife(t *testing.T) {
	r := start(t)
	th, h := r.hero()
	spawn := mgl64.Vec3{h.lv.spawn.X(), h.lv.spawn.Y(), 0}
	lives := h.lives

	spikes := r.find("spikes")
	th.Pos = spikes.Pos
	r.frames(1)

	if h.lives != lives-1 {
		t.Errorf("lives = %d, expected %d", h.lives, lives-1)
	}
	if th.Pos != spawn {
		t.Errorf("hero at %v after hurt, expected respawn at %v", th.Pos, spawn)
	}
}

func TestDoorCarriesHero(t *testing.T) {
	r := start(t)
	th, h := r.hero()
	h.lives = 2
	first := r.e.Scene()

	th.Pos = r.find("door").Pos
	r.frames(2)

	if r.e.Scene() == first {
		t.Fatal("door should swap to the next level")
	}
	carried, ch := r.hero()
	if carried != th || ch.lives != 2 {
		t.Error("hero and its lives should carry over")
	}
	if ch.lv.index != 1 {
		t.Errorf("level index = %d, expected 1", ch.lv.index)
	}
	if got, want := r.e.Score(), config.DefaultPlatformerConfig().Gameplay.LevelPoints; got != want {
		t.Errorf("Score() = %d, expected %d", got, want)
	}

	th.Pos = r.find("door").Pos
	r.frames(2)
	if !ch.lv.won || !r.e.GameOver() {
		t.Fatal("last door should win the run")
	}

	r.e.Input().KeyDown("r")
	r.frames(3)
	fresh, fh := r.hero()
	if fresh == th || fh.lv.index != 0 || r.e.Score() != 0 {
		t.Error("r after a win should start a fresh run")
	}
}

func TestHeroMissingClipIsLogged(t *testing.T) {
	tests := []struct {
		name    string
		clips   map[string]thing.Clip
		wantLog bool
	}{
		{"no sheet", nil, false},
		{"sheet without jump", map[string]thing.Clip{"idle": {Frames: []int{0}, Speed: 1}}, true},
		{"full sheet", map[string]thing.Clip{
			"idle": {Frames: []int{0}, Speed: 1},
			"jump": {Frames: []int{1}, Speed: 1},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := scene.New(scene.Options{ViewW: 10, ViewH: 10, Logger: log.New(&buf)})
			th := thing.New(0, 0, core.Box2(0, 0, 1, 1))
			if tt.clips != nil {
				th.DefineAnimations(tt.clips)
			}
			s.Add(th)

			(&hero{}).animate(th, 0)

			logged := strings.Contains(buf.String(), "hero clip")
			if logged != tt.wantLog {
				t.Errorf("logged = %v, expected %v (log %q)", logged, tt.wantLog, buf.String())
			}
			if tt.name == "full sheet" && th.Animation() != "jump" {
				t.Errorf("Animation() = %q, expected jump", th.Animation())
			}
		})
	}
}
