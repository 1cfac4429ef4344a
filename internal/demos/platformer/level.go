package platformer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/assets"
	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/demos/kit"
	"github.com/vovakirdan/tui-scene/internal/scene"
	"github.com/vovakirdan/tui-scene/internal/scheduler"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

// Map legend.
const (
	tileWall   = '#'
	tilePlayer = 'P'
	tileCoin   = 'o'
	tileSpikes = '^'
	tileDoor   = 'D'
)

// Draw depths.
const (
	depthWall = iota
	depthItem
	depthHero
	depthHUD = 10
)

// level is one loaded map.
type level struct {
	d      *Demo
	e      *scheduler.Engine
	s      *scene.Scene
	cfg    config.PlatformerConfig
	bundle *assets.Bundle

	index   int
	w, h    int
	spawn   mgl64.Vec2
	over    bool
	won     bool
	leaving bool
}

func (d *Demo) level(index int) scheduler.InitFunc {
	return func(e *scheduler.Engine, s *scene.Scene) error {
		cfg, err := config.LoadPlatformer(configPath)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(cfg.Levels) {
			return fmt.Errorf("platformer: no level %d (have %d)", index, len(cfg.Levels))
		}
		bundle, err := d.pack.Bundle(s.Logger())
		if err != nil {
			return err
		}

		lv := &level{d: d, e: e, s: s, cfg: cfg, bundle: bundle, index: index}
		if err := lv.build(cfg.Levels[index]); err != nil {
			return err
		}

		hud := thing.New(0, 0, core.Box2(0, 0, 0, 0))
		hud.Overlaps = false
		hud.Depth = depthHUD
		hud.Hooks = thing.HookFuncs{PostDrawFn: lv.drawHUD}
		s.Add(hud)

		lv.bindHero()
		s.OnUnload = func(*scene.Scene) {
			s.Logger().Debug("platformer: leaving level", "level", index)
		}
		return nil
	}
}

// build turns map rows into things. Horizontal runs of wall tiles become
// one solid block each.
func (lv *level) build(rows []string) error {
	lv.h = len(rows)
	found := false
	for y, row := range rows {
		cells := []rune(row)
		lv.w = max(lv.w, len(cells))
		fy := float64(y)

		for x := 0; x < len(cells); x++ {
			fx := float64(x)
			switch cells[x] {
			case tileWall:
				end := x
				for end < len(cells) && cells[end] == tileWall {
					end++
				}
				wall := kit.Wall(fx, fy, float64(end-x), 1, '█', core.ColorGray)
				wall.Depth = depthWall
				lv.s.Add(wall)
				x = end - 1
			case tilePlayer:
				lv.spawn = mgl64.Vec2{fx, fy}
				found = true
			case tileCoin:
				lv.item(fx, fy, "coin", "coin", "shine", '$', core.ColorBrightYellow)
			case tileSpikes:
				lv.item(fx, fy, "spikes", "", "", '^', core.ColorRed)
			case tileDoor:
				lv.item(fx, fy, "door", "door", "pulse", 'D', core.ColorMagenta)
			}
		}
	}
	if !found {
		return fmt.Errorf("platformer: level %d has no player start", lv.index)
	}
	return nil
}

// item adds a non-solid pickup or hazard, optionally dressed from a sheet.
func (lv *level) item(x, y float64, name, sheet, clip string, glyph rune, c core.Color) *thing.Thing {
	t := thing.New(x, y, core.Box2(0, 0, 1, 1))
	t.Name = name
	t.Depth = depthItem
	t.Glyph = glyph
	t.Color = c
	if sheet != "" {
		lv.bundle.Apply(t, sheet)
		if err := t.SetAnimation(clip); err != nil {
			lv.s.Logger().Debug("platformer: item without animation", "name", name, "err", err)
		}
	}
	return lv.s.Add(t)
}

// bindHero creates the hero on a fresh run, or moves the carried one to
// this level's start.
func (lv *level) bindHero() {
	t := lv.s.Named("hero")
	if t == nil {
		t = newHero(lv)
		lv.s.Add(t)
		lv.s.SetName("hero", t, true)
	}
	h := t.Hooks.(*hero)
	h.lv = lv
	h.respawn(t)
	lv.follow(t)
}

// follow centres the camera on the hero, clamped to the map.
func (lv *level) follow(t *thing.Thing) {
	vw, vh := lv.s.ViewSize()
	lv.s.Camera.Pos = mgl64.Vec2{
		axisCamera(t.Pos.X(), float64(vw), float64(lv.w)),
		axisCamera(t.Pos.Y(), float64(vh), float64(lv.h)),
	}
}

func axisCamera(pos, view, size float64) float64 {
	if view <= 0 || size <= view {
		return size / 2
	}
	return core.ClampF(pos, view/2, size-view/2)
}

// exit leaves through a door: to the next level, or a win on the last one.
func (lv *level) exit(t *thing.Thing) {
	if lv.leaving {
		return
	}
	lv.leaving = true
	lv.e.AddScore(lv.cfg.Gameplay.LevelPoints)
	t.PlaySound("door")

	if lv.index+1 < len(lv.cfg.Levels) {
		lv.e.SetScene(lv.d.level(lv.index + 1))
		return
	}
	lv.won = true
	lv.over = true
	lv.e.SetGameOver()
	lv.s.Logger().Info("platformer: run complete", "score", lv.e.Score())
}

func (lv *level) drawHUD(_ *thing.Thing, r core.Renderer) {
	lives := 0
	if t := lv.s.Named("hero"); t != nil {
		lives = t.Hooks.(*hero).lives
	}
	r.Text(1, 0, fmt.Sprintf("LEVEL %d/%d  score %d  lives %d", lv.index+1, len(lv.cfg.Levels), lv.e.Score(), lives), core.ColorBrightWhite)

	if !lv.over {
		return
	}
	_, h := r.Size()
	msg := " GAME OVER "
	if lv.won {
		msg = " YOU WIN "
	}
	kit.TextCentered(r, float64(h/2), msg, core.ColorBrightYellow)
	kit.TextCentered(r, float64(h/2+1), " press r to play again ", core.ColorWhite)
}
