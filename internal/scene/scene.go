// Package scene owns the things of one game state: their update order,
// depth layers, spatial index, cameras and screen shake.
package scene

import (
	"io"
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/spatial"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

// SoundPlayer plays named sounds.
type SoundPlayer interface {
	Play(name string) bool
}

// Options configures a new scene.
type Options struct {
	CellSize     float64
	ViewW, ViewH int
	Seed         int64
	Logger       *log.Logger
	Sounds       SoundPlayer
	FOV          float64 // Degrees
	Near, Far    float64
}

type shake struct {
	strength float64
	count    int
}

// Scene is the container for one game state.
// It is not safe for concurrent use; the scheduler drives it from one goroutine.
type Scene struct {
	things    []*thing.Thing
	byID      map[thing.ID]*thing.Thing
	layers    map[int][]*thing.Thing
	layerKeys []int
	depthOf   map[thing.ID]int
	hash      *spatial.Hash[thing.ID]

	Camera   Camera2D
	Camera3D Camera3D

	names      map[string]*thing.Thing
	persistent map[string]bool

	shakes      []shake
	shakeOffset mgl64.Vec2

	// OnUnload runs once when the scene is torn down, after every thing's hook.
	OnUnload func(s *Scene)

	rng    *rand.Rand
	logger *log.Logger
	sounds SoundPlayer
	viewW  int
	viewH  int
}

// New creates an empty scene.
func New(opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Scene{
		byID:       make(map[thing.ID]*thing.Thing),
		layers:     make(map[int][]*thing.Thing),
		depthOf:    make(map[thing.ID]int),
		hash:       spatial.New[thing.ID](opts.CellSize, logger),
		names:      make(map[string]*thing.Thing),
		persistent: make(map[string]bool),
		rng:        rand.New(rand.NewSource(opts.Seed)),
		logger:     logger,
		sounds:     opts.Sounds,
		viewW:      opts.ViewW,
		viewH:      opts.ViewH,
	}
	s.Camera = NewCamera2D()
	s.Camera3D = NewCamera3D(opts.FOV, opts.Near, opts.Far)
	s.Camera3D.SetAspect(opts.ViewW, opts.ViewH)
	s.Camera3D.UpdateMatrices()
	return s
}

// Logger returns the scene logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// Rand returns the scene's seeded random source.
func (s *Scene) Rand() *rand.Rand {
	return s.rng
}

// ViewSize returns the viewport size in cells.
func (s *Scene) ViewSize() (int, int) {
	return s.viewW, s.viewH
}

// Resize updates the viewport size and the 3D camera aspect.
func (s *Scene) Resize(w, h int) {
	s.viewW, s.viewH = w, h
	s.Camera3D.SetAspect(w, h)
	s.Camera3D.UpdateMatrices()
}

// Add inserts a thing. A nil thing is a caller bug and panics.
func (s *Scene) Add(t *thing.Thing) *thing.Thing {
	if t == nil {
		panic("scene: Add called with nil thing")
	}
	if _, exists := s.byID[t.ID()]; exists {
		s.logger.Warn("scene: thing added twice", "id", t.ID(), "name", t.Name)
		return t
	}

	t.Attach(s)
	s.things = append(s.things, t)
	s.byID[t.ID()] = t

	depth := roundDepth(t.Depth)
	s.depthOf[t.ID()] = depth
	s.insertLayer(depth, t)
	s.hash.Add(t.ID(), t.WorldRect())
	return t
}

// Update runs one simulation step over every thing in insertion order.
// Things added by a hook join immediately and are stepped later in the
// same pass.
// Removal splices the list in place and re-examines the same index, so the
// thing shifted into the slot is not skipped.
func (s *Scene) Update() {
	for i := 0; i < len(s.things); {
		t := s.things[i]
		if !t.Dead && !t.Paused {
			t.Step()
		}

		if t.Dead {
			t.NotifyDeath()
			s.detach(t)
			s.things = slices.Delete(s.things, i, i+1)
			continue
		}

		s.UpdateDepth(t)
		s.syncHitbox(t)
		i++
	}

	for name, t := range s.names {
		if t.Dead || s.byID[t.ID()] == nil {
			delete(s.names, name)
			delete(s.persistent, name)
		}
	}

	s.advanceShake()
}

func (s *Scene) detach(t *thing.Thing) {
	id := t.ID()
	if depth, ok := s.depthOf[id]; ok {
		s.removeLayer(depth, t)
		s.rebuildKeys()
	}
	s.hash.Remove(id)
	delete(s.depthOf, id)
	delete(s.byID, id)
}

func (s *Scene) syncHitbox(t *thing.Thing) {
	r := t.WorldRect()
	if old, ok := s.hash.Hitbox(t.ID()); ok && old == r {
		return
	}
	s.hash.Update(t.ID(), r)
}

// UpdateDepth moves a thing into the layer of its rounded depth if that
// changed since it was last recorded.
func (s *Scene) UpdateDepth(t *thing.Thing) {
	id := t.ID()
	old, tracked := s.depthOf[id]
	if !tracked {
		return
	}
	depth := roundDepth(t.Depth)
	if depth == old {
		return
	}

	s.removeLayer(old, t)
	s.insertLayer(depth, t)
	s.depthOf[id] = depth
	s.rebuildKeys()
}

func (s *Scene) insertLayer(depth int, t *thing.Thing) {
	if _, ok := s.layers[depth]; !ok {
		s.layers[depth] = nil
		s.layerKeys = append(s.layerKeys, depth)
		sort.Ints(s.layerKeys)
	}
	s.layers[depth] = append(s.layers[depth], t)
}

func (s *Scene) removeLayer(depth int, t *thing.Thing) {
	layer := s.layers[depth]
	if i := slices.Index(layer, t); i >= 0 {
		layer = slices.Delete(layer, i, i+1)
	}
	if len(layer) == 0 {
		delete(s.layers, depth)
		return
	}
	s.layers[depth] = layer
}

func (s *Scene) rebuildKeys() {
	s.layerKeys = s.layerKeys[:0]
	for k := range s.layers {
		s.layerKeys = append(s.layerKeys, k)
	}
	sort.Ints(s.layerKeys)
}

func roundDepth(d float64) int {
	return int(math.Round(d))
}

// Draw renders every layer in ascending depth. Pre-draw and draw run inside
// the camera transform; post-draw runs in screen space.
func (s *Scene) Draw(r core.Renderer) {
	r.Clear()

	r.Push()
	w, h := r.Size()
	r.Translate(s.shakeOffset.X(), s.shakeOffset.Y())
	r.Translate(float64(w)/2, float64(h)/2)
	r.Scale(s.Camera.Scale, s.Camera.Scale)
	r.Rotate(s.Camera.Rotation)
	r.Translate(-s.Camera.Pos.X(), -s.Camera.Pos.Y())

	s.eachLayered(func(t *thing.Thing) { t.PreDraw(r) })
	s.eachLayered(func(t *thing.Thing) { t.Draw(r) })
	r.Pop()

	s.eachLayered(func(t *thing.Thing) { t.PostDraw(r) })
}

func (s *Scene) eachLayered(fn func(t *thing.Thing)) {
	for _, k := range s.layerKeys {
		for _, t := range s.layers[k] {
			fn(t)
		}
	}
}

// SetName registers a thing under a name. Persistent names survive scene swaps
// along with their thing.
func (s *Scene) SetName(name string, t *thing.Thing, persistent bool) {
	s.names[name] = t
	if persistent {
		s.persistent[name] = true
	} else {
		delete(s.persistent, name)
	}
}

// Named returns the thing registered under name, or nil.
func (s *Scene) Named(name string) *thing.Thing {
	return s.names[name]
}

// Names returns the registered names, sorted.
func (s *Scene) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Shake starts a screen shake of the given strength lasting count steps.
func (s *Scene) Shake(strength float64, count int) {
	if count <= 0 {
		return
	}
	s.shakes = append(s.shakes, shake{strength: strength, count: count})
}

// ShakeOffset returns this step's accumulated shake displacement.
func (s *Scene) ShakeOffset() mgl64.Vec2 {
	return s.shakeOffset
}

func (s *Scene) advanceShake() {
	s.shakeOffset = mgl64.Vec2{}
	kept := s.shakes[:0]
	for _, sh := range s.shakes {
		a := s.rng.Float64() * 2 * math.Pi
		s.shakeOffset = s.shakeOffset.Add(mgl64.Vec2{math.Cos(a), math.Sin(a)}.Mul(sh.strength))
		sh.count--
		if sh.count > 0 {
			kept = append(kept, sh)
		}
	}
	s.shakes = kept
}

// PlaySound plays a named sound. Unknown names are logged and ignored.
func (s *Scene) PlaySound(name string) bool {
	if s.sounds == nil {
		s.logger.Warn("scene: no sound system", "sound", name)
		return false
	}
	return s.sounds.Play(name)
}

// Things returns the live things in update order.
func (s *Scene) Things() []*thing.Thing {
	return s.things
}

// Len returns the number of live things.
func (s *Scene) Len() int {
	return len(s.things)
}

// Layer returns the things drawn at a rounded depth.
func (s *Scene) Layer(depth int) []*thing.Thing {
	return s.layers[depth]
}

// LayerKeys returns the occupied depths in ascending order.
func (s *Scene) LayerKeys() []int {
	return s.layerKeys
}

// Hash exposes the spatial index.
func (s *Scene) Hash() *spatial.Hash[thing.ID] {
	return s.hash
}

// Carry is what survives a scene swap.
type Carry struct {
	Things []*thing.Thing
	Names  map[string]*thing.Thing
}

// Unload runs every unload hook, then the scene hook, and empties the scene.
// Persistent things and persistent names are returned for the next scene.
func (s *Scene) Unload() Carry {
	carry := Carry{Names: make(map[string]*thing.Thing)}
	for _, t := range s.things {
		t.NotifyUnload()
	}
	if s.OnUnload != nil {
		s.OnUnload(s)
	}

	for _, t := range s.things {
		if t.Persistent && !t.Dead {
			carry.Things = append(carry.Things, t)
		}
		t.Attach(nil)
	}
	for name := range s.persistent {
		if t := s.names[name]; t != nil && t.Persistent && !t.Dead {
			carry.Names[name] = t
		}
	}

	s.things = nil
	clear(s.byID)
	clear(s.layers)
	clear(s.depthOf)
	clear(s.names)
	clear(s.persistent)
	s.layerKeys = nil
	s.shakes = nil
	s.shakeOffset = mgl64.Vec2{}
	s.hash.Clear()
	return carry
}

// Adopt adds carried things and names to this scene.
func (s *Scene) Adopt(c Carry) {
	for _, t := range c.Things {
		s.Add(t)
	}
	for name, t := range c.Names {
		s.SetName(name, t, true)
	}
}
