package bounce

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

// player steers with the arrow keys or WASD.
type player struct {
	g *game
}

func (g *game) newPlayer(x, y float64) *thing.Thing {
	t := thing.New(x, y, core.Box2(0, 0, 1, 1))
	t.Name = "player"
	t.Depth = depthPlayer
	t.Glyph = '@'
	t.Color = core.ColorBrightGreen
	t.StepSize = g.e.Config().StepSize
	g.bundle.Apply(t, "player")
	t.Hooks = &player{g: g}
	return g.s.Add(t)
}

func (p *player) Update(t *thing.Thing) {
	if p.g.over {
		t.Vel = mgl64.Vec2{}
		return
	}

	in := p.g.e.Input()
	var dx, dy float64
	if in.IsDown("left") || in.IsDown("a") {
		dx--
	}
	if in.IsDown("right") || in.IsDown("d") {
		dx++
	}
	if in.IsDown("up") || in.IsDown("w") {
		dy--
	}
	if in.IsDown("down") || in.IsDown("s") {
		dy++
	}
	t.Vel = mgl64.Vec2{dx, dy}.Mul(p.g.cfg.Player.Speed)

	for _, o := range t.AllOverlaps() {
		switch o.Name {
		case "coin":
			o.Kill()
			p.g.e.AddScore(p.g.cfg.Gameplay.CoinPoints)
			t.PlaySound("coin")
		case "ball":
			p.g.hit(t)
		}
	}
}

// Draw blinks while invulnerable.
func (p *player) Draw(t *thing.Thing, r core.Renderer) {
	if t.IsTimerActive("invulnerable") && (t.TimerRemaining("invulnerable")/5)%2 == 0 {
		return
	}
	t.DrawDefault(r)
}

// ball keeps its heading across moves; Move zeroes the blocked axis.
type ball struct {
	g      *game
	dx, dy float64
}

func (b *ball) Update(t *thing.Thing) {
	if t.Contacts.Left || t.Contacts.Right {
		b.dx = -b.dx
	}
	if t.Contacts.Up || t.Contacts.Down {
		b.dy = -b.dy
	}
	speed := b.g.diff.Speed(b.g.cfg.Balls.Speed, b.g.e.Score(), 0)
	t.Vel = mgl64.Vec2{b.dx, b.dy}.Mul(speed)
}

// spawnBall adds a ball away from the player. Returns nil when the arena
// is full or no safe cell was found.
func (g *game) spawnBall() *thing.Thing {
	live := 0
	for _, t := range g.s.Things() {
		if t.Name == "ball" && !t.Dead {
			live++
		}
	}
	if live >= g.cfg.Balls.Max {
		return nil
	}

	rng := g.s.Rand()
	for range 10 {
		x, y := g.inner()
		if g.nearPlayer(x, y) {
			continue
		}
		t := thing.New(x, y, core.Box2(0, 0, 1, 1))
		t.Name = "ball"
		t.Depth = depthBall
		t.Glyph = 'O'
		t.Color = core.ColorBrightRed
		t.StepSize = g.e.Config().StepSize
		b := &ball{g: g, dx: 1, dy: 1}
		if rng.Intn(2) == 0 {
			b.dx = -1
		}
		if rng.Intn(2) == 0 {
			b.dy = -1
		}
		t.Hooks = b
		return g.s.Add(t)
	}
	return nil
}

func (g *game) nearPlayer(x, y float64) bool {
	for _, t := range g.s.QueryNearPoint(x, y, safeRadius) {
		if t == g.player {
			return true
		}
	}
	return false
}

// spawnCoin drops a coin that expires if not collected.
func (g *game) spawnCoin() *thing.Thing {
	x, y := g.inner()
	return g.coinAt(x, y)
}

func (g *game) coinAt(x, y float64) *thing.Thing {
	t := thing.New(x, y, core.Box2(0, 0, 1, 1))
	t.Name = "coin"
	t.Depth = depthCoin
	t.Glyph = 'o'
	t.Color = core.ColorYellow
	g.bundle.Apply(t, "coin")
	if err := t.SetAnimation("spin"); err != nil {
		g.s.Logger().Debug("bounce: coin without animation", "err", err)
	}
	t.SetTimer("expire", coinLifetime, t.Kill)
	return g.s.Add(t)
}
