// Package thing implements the simulated objects a scene owns: position,
// velocity, bounding box, timers, animation and collision behaviour.
//
// A Thing is a concrete record. Custom behaviour is attached through Hooks,
// which may implement any subset of the hook interfaces below.
package thing

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/core"
)

// DefaultStepSize is the sweep granularity used by Move when none is given.
const DefaultStepSize = 1.0

// ID is a stable handle for a thing, used as a key in scene side tables.
type ID uint64

var nextID atomic.Uint64

// World is what a thing needs from the scene that owns it.
type World interface {
	// QueryRect returns a broad-phase candidate set for a world rectangle.
	QueryRect(r core.Rect) []*Thing
	// PlaySound plays a named sound; unknown names are logged and ignored.
	PlaySound(name string) bool
	Logger() *log.Logger
}

// Hook interfaces. A thing's Hooks value may implement any of them.
type (
	Updater interface {
		Update(t *Thing)
	}
	PreDrawer interface {
		PreDraw(t *Thing, r core.Renderer)
	}
	Drawer interface {
		Draw(t *Thing, r core.Renderer)
	}
	PostDrawer interface {
		PostDraw(t *Thing, r core.Renderer)
	}
	DeathHandler interface {
		OnDeath(t *Thing)
	}
	UnloadHandler interface {
		OnUnload(t *Thing)
	}
)

// Contacts records which sides were blocked during the last Move.
type Contacts struct {
	Left, Right, Up, Down bool
}

// Any returns true if any side was blocked.
func (c Contacts) Any() bool {
	return c.Left || c.Right || c.Up || c.Down
}

// Thing is a simulated object.
type Thing struct {
	id ID

	Name       string
	Pos        mgl64.Vec3
	Vel        mgl64.Vec2
	Box        core.AABB // Offsets from Pos, never world coordinates
	Depth      float64
	Solid      bool
	Overlaps   bool // Takes part in overlap and collision queries
	Persistent bool // Survives scene swaps
	Dead       bool
	Paused     bool // Skipped by update, still drawn
	StepSize   float64
	Contacts   Contacts

	Sprite *core.Sprite
	Glyph  rune // Drawn at Pos when there is no sprite
	Color  core.Color

	Hooks any

	world  World
	timers timerSet
	anims  map[string]Clip
	anim   animState
}

// New creates a thing at (x, y) with the given bounding box.
func New(x, y float64, box core.AABB) *Thing {
	return &Thing{
		id:       ID(nextID.Add(1)),
		Pos:      mgl64.Vec3{x, y, 0},
		Box:      box,
		Overlaps: true,
		StepSize: DefaultStepSize,
	}
}

// ID returns the thing's stable handle.
func (t *Thing) ID() ID {
	return t.id
}

// Attach binds the thing to the world it lives in. Called by the scene.
func (t *Thing) Attach(w World) {
	t.world = w
}

// World returns the owning world, or nil when unattached.
func (t *Thing) World() World {
	return t.world
}

// Kill marks the thing dead. The scene removes it on the next update pass.
func (t *Thing) Kill() {
	t.Dead = true
}

// WorldRect returns the world rectangle at the current position.
func (t *Thing) WorldRect() core.Rect {
	return t.Box.RectAt(t.Pos.X(), t.Pos.Y())
}

// WorldRectAt returns the world rectangle the thing would cover at (x, y).
func (t *Thing) WorldRectAt(x, y float64) core.Rect {
	return t.Box.RectAt(x, y)
}

// Step runs one simulation step: timers, the update hook, velocity movement
// and animation.
func (t *Thing) Step() {
	t.TickTimers()
	if u, ok := t.Hooks.(Updater); ok {
		u.Update(t)
	}
	if t.Dead {
		return
	}
	if t.Vel.X() != 0 || t.Vel.Y() != 0 {
		t.Move(t.Vel.X(), t.Vel.Y(), t.StepSize)
	} else {
		t.Contacts = Contacts{}
	}
	t.AdvanceAnimation()
}

// PreDraw dispatches the pre-draw hook.
func (t *Thing) PreDraw(r core.Renderer) {
	if h, ok := t.Hooks.(PreDrawer); ok {
		h.PreDraw(t, r)
	}
}

// Draw dispatches the draw hook, falling back to DrawDefault.
func (t *Thing) Draw(r core.Renderer) {
	if h, ok := t.Hooks.(Drawer); ok {
		h.Draw(t, r)
		return
	}
	t.DrawDefault(r)
}

// PostDraw dispatches the post-draw hook.
func (t *Thing) PostDraw(r core.Renderer) {
	if h, ok := t.Hooks.(PostDrawer); ok {
		h.PostDraw(t, r)
	}
}

// NotifyDeath runs the death hook.
func (t *Thing) NotifyDeath() {
	if h, ok := t.Hooks.(DeathHandler); ok {
		h.OnDeath(t)
	}
}

// NotifyUnload runs the unload hook.
func (t *Thing) NotifyUnload() {
	if h, ok := t.Hooks.(UnloadHandler); ok {
		h.OnUnload(t)
	}
}

// DrawDefault draws the current sprite frame, or the glyph when there is no sprite.
func (t *Thing) DrawDefault(r core.Renderer) {
	if t.Sprite != nil {
		r.Sprite(t.Pos.X(), t.Pos.Y(), t.Sprite, t.Frame())
		return
	}
	if t.Glyph != 0 {
		r.Plot(t.Pos.X(), t.Pos.Y(), t.Glyph, t.Color)
	}
}

// PlaySound asks the world to play a named sound.
func (t *Thing) PlaySound(name string) bool {
	if t.world == nil {
		return false
	}
	return t.world.PlaySound(name)
}

// HookFuncs adapts plain functions to the hook interfaces.
// A nil DrawFn keeps the default sprite drawing.
type HookFuncs struct {
	UpdateFn   func(t *Thing)
	PreDrawFn  func(t *Thing, r core.Renderer)
	DrawFn     func(t *Thing, r core.Renderer)
	PostDrawFn func(t *Thing, r core.Renderer)
	DeathFn    func(t *Thing)
	UnloadFn   func(t *Thing)
}

func (h HookFuncs) Update(t *Thing) {
	if h.UpdateFn != nil {
		h.UpdateFn(t)
	}
}

func (h HookFuncs) PreDraw(t *Thing, r core.Renderer) {
	if h.PreDrawFn != nil {
		h.PreDrawFn(t, r)
	}
}

func (h HookFuncs) Draw(t *Thing, r core.Renderer) {
	if h.DrawFn != nil {
		h.DrawFn(t, r)
		return
	}
	t.DrawDefault(r)
}

func (h HookFuncs) PostDraw(t *Thing, r core.Renderer) {
	if h.PostDrawFn != nil {
		h.PostDrawFn(t, r)
	}
}

func (h HookFuncs) OnDeath(t *Thing) {
	if h.DeathFn != nil {
		h.DeathFn(t)
	}
}

func (h HookFuncs) OnUnload(t *Thing) {
	if h.UnloadFn != nil {
		h.UnloadFn(t)
	}
}
