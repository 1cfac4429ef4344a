package platformer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

const (
	hurtImpact = 6
	hurtShake  = 0.8
	shakeSteps = 8
	fallMargin = 4 // Rows below the map that count as a fall
	blinkSteps = 60
)

// hero is the persistent player. Its state, lives included, travels with
// the thing across level swaps.
type hero struct {
	lv     *level
	lives  int
	coyote int
}

func newHero(lv *level) *thing.Thing {
	t := thing.New(lv.spawn.X(), lv.spawn.Y(), core.Box2(0, 0, 1, 1))
	t.Name = "hero"
	t.Persistent = true
	t.Depth = depthHero
	t.Glyph = '@'
	t.Color = core.ColorBrightCyan
	t.StepSize = lv.e.Config().StepSize
	lv.bundle.Apply(t, "hero")
	t.Hooks = &hero{lv: lv, lives: lv.cfg.Gameplay.Lives}
	return t
}

func (h *hero) respawn(t *thing.Thing) {
	t.Pos = mgl64.Vec3{h.lv.spawn.X(), h.lv.spawn.Y(), 0}
	t.Vel = mgl64.Vec2{}
	t.Contacts = thing.Contacts{}
	h.coyote = 0
}

func (h *hero) Update(t *thing.Thing) {
	lv := h.lv
	in := lv.e.Input()
	if lv.over {
		t.Vel = mgl64.Vec2{}
		if in.Pressed("r") {
			t.Kill()
			lv.e.SetScene(lv.d.start)
		}
		return
	}

	p := lv.cfg.Physics
	var vx float64
	if in.IsDown("left") || in.IsDown("a") {
		vx -= p.RunSpeed
	}
	if in.IsDown("right") || in.IsDown("d") {
		vx += p.RunSpeed
	}
	vy := min(t.Vel.Y()+p.Gravity, p.MaxFallSpeed)

	if t.Contacts.Down {
		h.coyote = p.CoyoteSteps
	} else if h.coyote > 0 {
		h.coyote--
	}
	if h.coyote > 0 && (in.Pressed("space") || in.Pressed("up") || in.Pressed("w")) {
		vy = p.JumpImpulse
		h.coyote = 0
		t.PlaySound("jump")
	}
	t.Vel = mgl64.Vec2{vx, vy}
	h.animate(t, vx)

	for _, o := range t.AllOverlaps() {
		switch o.Name {
		case "coin":
			o.Kill()
			lv.e.AddScore(lv.cfg.Gameplay.CoinPoints)
			t.PlaySound("coin")
		case "spikes":
			h.hurt(t)
			return
		case "door":
			lv.exit(t)
			return
		}
	}
	if t.Pos.Y() > float64(lv.h+fallMargin) {
		h.hurt(t)
		return
	}
	lv.follow(t)
}

func (h *hero) animate(t *thing.Thing, vx float64) {
	clip := "idle"
	switch {
	case !t.Contacts.Down:
		clip = "jump"
	case vx != 0:
		clip = "run"
	}
	// Without a sheet the hero has no clips and keeps its glyph.
	if len(t.Animations()) == 0 || t.Animation() == clip {
		return
	}
	if err := t.SetAnimation(clip); err != nil && t.World() != nil {
		t.World().Logger().Warn("platformer: hero clip", "clip", clip, "err", err)
	}
}

// hurt costs a life and sends the hero back to the level start.
func (h *hero) hurt(t *thing.Thing) {
	lv := h.lv
	h.lives--
	lv.e.Impact(hurtImpact)
	lv.s.Shake(hurtShake, shakeSteps)
	t.PlaySound("hurt")

	if h.lives <= 0 {
		lv.over = true
		t.Vel = mgl64.Vec2{}
		lv.e.SetGameOver()
		lv.s.Logger().Info("platformer: game over", "score", lv.e.Score(), "level", lv.index)
		return
	}
	h.respawn(t)
	t.SetTimer("blink", blinkSteps, nil)
}

// Draw blinks after a respawn.
func (h *hero) Draw(t *thing.Thing, r core.Renderer) {
	if t.IsTimerActive("blink") && (t.TimerRemaining("blink")/4)%2 == 0 {
		return
	}
	t.DrawDefault(r)
}
