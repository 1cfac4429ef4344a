package bounce

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

// Arena limits. Smaller viewports are clamped up.
const (
	minW = 40
	minH = 14

	minSpawnInterval = 60 // Steps
	coinLifetime     = 300
	invulnerableFor  = 90
	shakeSteps       = 10
	safeRadius       = 6.0 // No ball spawns this close to the player
	starCount        = 60
)

// Draw depths.
const (
	depthWall = iota
	depthCoin
	depthBall
	depthPlayer
	depthHUD = 10
)

// game is the state shared by one arena's hooks.
type game struct {
	e      *scheduler.Engine
	s      *scene.Scene
	cfg    config.BounceConfig
	diff   *config.DifficultyManager
	bundle *assets.Bundle

	w, h   int
	lives  int
	over   bool
	player *thing.Thing
	stars  []mgl64.Vec3
}

func (d *Demo) arena(e *scheduler.Engine, s *scene.Scene) error {
	cfg, err := config.LoadBounce(configPath)
	if err != nil {
		return err
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	}
	bundle, err := d.pack.Bundle(s.Logger())
	if err != nil {
		return err
	}

	w, h := s.ViewSize()
	g := &game{
		e:      e,
		s:      s,
		cfg:    cfg,
		diff:   config.NewDifficultyManager(cfg.Difficulty),
		bundle: bundle,
		w:      max(w, minW),
		h:      max(h, minH),
		lives:  cfg.Gameplay.Lives,
	}
	e.ResetScore()
	s.Camera.Pos = mgl64.Vec2{float64(g.w) / 2, float64(g.h) / 2}

	fw, fh := float64(g.w), float64(g.h)
	for _, wall := range []*thing.Thing{
		kit.Wall(0, 1, fw, 1, '─', core.ColorGray),
		kit.Wall(0, fh-1, fw, 1, '─', core.ColorGray),
		kit.Wall(0, 2, 1, fh-3, '│', core.ColorGray),
		kit.Wall(fw-1, 2, 1, fh-3, '│', core.ColorGray),
	} {
		wall.Depth = depthWall
		s.Add(wall)
	}

	g.player = g.newPlayer(fw/2, fh/2)
	s.SetName("player", g.player, false)

	director := thing.New(0, 0, core.Box2(0, 0, 0, 0))
	director.Name = "director"
	director.Overlaps = false
	director.Depth = depthHUD
	director.Hooks = g
	s.Add(director)
	s.SetName("director", director, false)

	for range cfg.Balls.Initial {
		g.spawnBall()
	}
	g.armCoin(director)
	g.armBall(director)

	rng := s.Rand()
	g.stars = make([]mgl64.Vec3, starCount)
	for i := range g.stars {
		g.stars[i] = mgl64.Vec3{rng.Float64()*80 - 40, rng.Float64()*50 - 25, -rng.Float64() * 60}
	}
	return nil
}

// inner returns a random free cell inside the walls.
func (g *game) inner() (float64, float64) {
	rng := g.s.Rand()
	x := 1 + float64(rng.Intn(g.w-2))
	y := 2 + float64(rng.Intn(g.h-3))
	return x, y
}

func (g *game) armCoin(director *thing.Thing) {
	director.SetTimer("coin", g.cfg.Gameplay.CoinEvery, func() {
		if !g.over {
			g.spawnCoin()
		}
		g.armCoin(director)
	})
}

func (g *game) armBall(director *thing.Thing) {
	interval := g.diff.Interval(g.cfg.Balls.Interval, minSpawnInterval, g.e.Score(), 0)
	director.SetTimer("ball", interval, func() {
		if !g.over && g.spawnBall() != nil {
			director.PlaySound("spawn")
		}
		g.armBall(director)
	})
}

// Update ticks the starfield and handles restart after game over.
func (g *game) Update(t *thing.Thing) {
	rng := g.s.Rand()
	for i := range g.stars {
		g.stars[i][2] += 0.3
		if g.stars[i].Z() > -1 {
			g.stars[i] = mgl64.Vec3{rng.Float64()*80 - 40, rng.Float64()*50 - 25, -60}
		}
	}
	if g.over && g.e.Input().Pressed("r") {
		g.e.Restart()
	}
}

// PreDraw paints the starfield behind the arena.
func (g *game) PreDraw(t *thing.Thing, r core.Renderer) {
	for _, star := range g.stars {
		glyph := '.'
		if star.Z() > -15 {
			glyph = '*'
		}
		r.Plot3D(star, glyph, core.ColorGray)
	}
}

// PostDraw paints the status line in screen space.
func (g *game) PostDraw(t *thing.Thing, r core.Renderer) {
	r.Text(1, 0, fmt.Sprintf("BOUNCE  score %d  lives %d  fps %.0f", g.e.Score(), g.lives, g.e.FPS()), core.ColorBrightWhite)
	if g.over {
		_, h := r.Size()
		kit.TextCentered(r, float64(h/2), " GAME OVER ", core.ColorBrightRed)
		kit.TextCentered(r, float64(h/2+1), " press r to restart ", core.ColorWhite)
	}
}

// hit costs a life and freezes the action briefly.
func (g *game) hit(p *thing.Thing) {
	if g.over || p.IsTimerActive("invulnerable") {
		return
	}
	g.lives--
	g.e.Impact(g.cfg.Gameplay.ImpactSteps)
	g.s.Shake(g.cfg.Gameplay.ShakePower, shakeSteps)
	p.PlaySound("hit")
	p.SetTimer("invulnerable", invulnerableFor, nil)

	if g.lives <= 0 {
		g.over = true
		p.Vel = mgl64.Vec2{}
		g.e.SetGameOver()
		g.s.Logger().Info("bounce: game over", "score", g.e.Score())
	}
}
