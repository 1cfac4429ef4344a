// Package scheduler drives scenes with a fixed-timestep accumulator.
//
// The platform layer calls Frame once per display refresh with a wall-clock
// timestamp. Frame converts elapsed time into simulation steps, runs at most
// MaxStepsPerFrame of them and renders once if anything happened.
package scheduler

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/scene"
)

// ErrNoScene is returned by Frame before any scene was set.
var ErrNoScene = errors.New("scheduler: no scene set")

// accumulatorBias is loaded into the accumulator at start, on focus regain
// and after a swap, so one step runs straight away and backlog is dropped.
const accumulatorBias = 1.0

// fpsWindowMS is the span over which renders are counted.
const fpsWindowMS = 1000.0

// InitFunc populates a freshly created scene. Persistent things from the
// previous scene are already in it.
type InitFunc func(e *Engine, s *scene.Scene) error

// SoundSystem is stepped with the simulation and paused on blur.
type SoundSystem interface {
	Update()
	Pause()
	Unpause()
}

// GamepadPoller copies controller state into the input once per step.
type GamepadPoller interface {
	Poll(in *core.Input)
}

// Surface reports the current display size in cells.
type Surface interface {
	Size() (w, h int)
}

// FrameResult describes what one display callback did.
type FrameResult struct {
	Steps    int
	Rendered bool
	Swapped  bool
}

// Engine is the explicit context object for one running game: scene,
// input, sound and timing. Several engines can run side by side.
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg      config.Engine
	logger   *log.Logger
	input    *core.Input
	sound    SoundSystem
	player   scene.SoundPlayer
	gamepad  GamepadPoller
	surface  Surface
	renderer core.Renderer
	seed     int64

	scene    *scene.Scene
	current  InitFunc
	next     InitFunc
	previous InitFunc
	replay   bool // Next swap rebuilds the current scene
	swaps    int64

	acc      float64
	prevT    float64
	started  bool
	speed    float64
	impact   float64
	uncapped bool

	focused   bool
	wantFocus bool

	viewW, viewH int

	frames    uint64
	steps     uint64
	fps       float64
	fpsStart  float64
	fpsFrames int

	score    int
	gameOver bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSound sets the sound system. If it can also play named sounds it is
// handed to every scene.
func WithSound(s SoundSystem) Option {
	return func(e *Engine) {
		e.sound = s
		if p, ok := s.(scene.SoundPlayer); ok {
			e.player = p
		}
	}
}

// WithGamepad sets a controller poller.
func WithGamepad(g GamepadPoller) Option {
	return func(e *Engine) { e.gamepad = g }
}

// WithSurface sets the display whose size is checked every step.
func WithSurface(s Surface) Option {
	return func(e *Engine) { e.surface = s }
}

// WithRenderer sets the draw target. Without one, Frame still reports
// when a render is due.
func WithRenderer(r core.Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithSeed sets the base RNG seed for scenes.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithViewSize sets the initial viewport size.
func WithViewSize(w, h int) Option {
	return func(e *Engine) { e.viewW, e.viewH = w, h }
}

// New creates an engine. Call SetScene before the first Frame.
func New(cfg config.Engine, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		input:     core.NewInput(),
		acc:       accumulatorBias,
		speed:     cfg.UpdateSpeed,
		uncapped:  cfg.Uncapped,
		focused:   true,
		wantFocus: true,
	}
	if e.cfg.MaxStepsPerFrame <= 0 {
		e.cfg.MaxStepsPerFrame = config.DefaultEngine().MaxStepsPerFrame
	}
	if e.cfg.StepsPerSecond <= 0 {
		e.cfg.StepsPerSecond = config.DefaultEngine().StepsPerSecond
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// SetScene schedules a swap to a new scene on the next step.
func (e *Engine) SetScene(init InitFunc) {
	e.next = init
	e.replay = false
}

// Restart schedules the current scene to be rebuilt.
func (e *Engine) Restart() {
	if e.current != nil {
		e.next = e.current
		e.replay = true
	}
}

// Back schedules a swap to the previous scene, if any.
func (e *Engine) Back() bool {
	if e.previous == nil {
		return false
	}
	e.next = e.previous
	e.replay = false
	return true
}

// SetFocus records a focus change; it takes effect on the next step.
func (e *Engine) SetFocus(focused bool) {
	e.wantFocus = focused
}

// Focused reports whether the last applied focus state is focused.
func (e *Engine) Focused() bool {
	return e.focused
}

// Impact freezes simulation advancement for the given number of steps.
func (e *Engine) Impact(steps float64) {
	e.impact = math.Max(e.impact, steps)
}

// SetSpeed sets the simulation speed multiplier.
func (e *Engine) SetSpeed(speed float64) {
	e.speed = math.Max(speed, 0)
}

// Speed returns the simulation speed multiplier.
func (e *Engine) Speed() float64 {
	return e.speed
}

// SetUncapped allows rendering on callbacks that ran no step.
func (e *Engine) SetUncapped(on bool) {
	e.uncapped = on
}

// Frame advances the engine for a display callback at wall time ms.
func (e *Engine) Frame(ms float64) (FrameResult, error) {
	var res FrameResult
	if e.scene == nil && e.next == nil {
		return res, ErrNoScene
	}

	var delta float64
	if e.started {
		delta = math.Max((ms-e.prevT)/1000*e.cfg.StepsPerSecond*e.speed, 0)
	} else {
		e.fpsStart = ms
	}
	e.prevT = ms
	e.started = true

	if e.impact > 0 {
		e.impact = math.Max(e.impact-delta, 0)
	} else {
		e.acc += delta
	}

	for e.acc >= 1 && res.Steps < e.cfg.MaxStepsPerFrame {
		swapped, err := e.step()
		if err != nil {
			return res, err
		}
		res.Swapped = res.Swapped || swapped
		e.acc--
		res.Steps++
	}
	e.acc = math.Mod(e.acc, 1)

	if res.Steps > 0 || (e.uncapped && e.focused) {
		e.render(ms)
		res.Rendered = true
		e.input.ResetRaw()
	}
	if res.Steps > 0 {
		e.input.SnapshotHeld()
	}
	return res, nil
}

func (e *Engine) step() (bool, error) {
	e.checkResize()
	e.checkFocus()
	swapped, err := e.checkSwap()
	if err != nil {
		return false, err
	}

	if e.focused {
		e.input.ComputeEdges()
		if e.gamepad != nil {
			e.gamepad.Poll(e.input)
		}
		e.scene.Update()
		if e.sound != nil {
			e.sound.Update()
		}
		e.steps++
	}
	return swapped, nil
}

func (e *Engine) checkResize() {
	if e.surface == nil {
		return
	}
	w, h := e.surface.Size()
	if w == e.viewW && h == e.viewH {
		return
	}
	e.viewW, e.viewH = w, h
	if e.scene != nil {
		e.scene.Resize(w, h)
		e.pushUniforms()
	}
}

func (e *Engine) checkFocus() {
	if e.wantFocus == e.focused {
		return
	}
	e.focused = e.wantFocus
	if e.focused {
		e.acc = accumulatorBias
		if e.sound != nil {
			e.sound.Unpause()
		}
		e.logger.Debug("scheduler: focus regained")
		return
	}
	e.input.ClearKeys()
	e.input.ZeroMouse()
	if e.sound != nil {
		e.sound.Pause()
	}
	e.logger.Debug("scheduler: focus lost")
}

func (e *Engine) checkSwap() (bool, error) {
	if e.next == nil {
		return false, nil
	}
	init := e.next
	e.next = nil

	var carry scene.Carry
	if e.scene != nil {
		carry = e.scene.Unload()
	}

	s := scene.New(scene.Options{
		CellSize: e.cfg.CellSize,
		ViewW:    e.viewW,
		ViewH:    e.viewH,
		Seed:     e.seed + e.swaps,
		Logger:   e.logger,
		Sounds:   e.player,
		FOV:      e.cfg.Camera.FOV,
		Near:     e.cfg.Camera.Near,
		Far:      e.cfg.Camera.Far,
	})
	s.Adopt(carry)
	e.swaps++

	if !e.replay {
		e.previous = e.current
	}
	e.replay = false
	e.current = init
	e.scene = s
	e.gameOver = false
	if err := init(e, s); err != nil {
		return false, fmt.Errorf("scheduler: scene init: %w", err)
	}
	s.Camera3D.UpdateMatrices()
	e.pushUniforms()
	e.acc = accumulatorBias

	e.logger.Debug("scheduler: scene swapped", "things", s.Len(), "carried", len(carry.Things))
	return true, nil
}

// pushUniforms hands the 3D camera matrices to the renderer if it takes them.
func (e *Engine) pushUniforms() {
	if u, ok := e.renderer.(core.UniformSetter); ok && e.scene != nil {
		e.scene.Camera3D.SetUniforms(u)
	}
}

func (e *Engine) render(ms float64) {
	if e.renderer != nil {
		e.scene.Draw(e.renderer)
	}
	e.frames++
	e.fpsFrames++
	if span := ms - e.fpsStart; span >= fpsWindowMS {
		e.fps = float64(e.fpsFrames) * 1000 / span
		e.fpsFrames = 0
		e.fpsStart = ms
	}
}

// Scene returns the current scene, nil before the first swap.
func (e *Engine) Scene() *scene.Scene {
	return e.scene
}

// Input returns the engine's input state.
func (e *Engine) Input() *core.Input {
	return e.input
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Engine {
	return e.cfg
}

// Logger returns the engine logger.
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// Alpha is the fractional step remainder, for interpolating uncapped renders.
func (e *Engine) Alpha() float64 {
	return e.acc
}

// FPS returns renders per second over the last full window.
func (e *Engine) FPS() float64 {
	return e.fps
}

// Frames returns the number of renders so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Steps returns the number of focused simulation steps so far.
func (e *Engine) Steps() uint64 {
	return e.steps
}

// AddScore adds to the run score.
func (e *Engine) AddScore(n int) {
	e.score += n
}

// Score returns the run score.
func (e *Engine) Score() int {
	return e.score
}

// ResetScore zeroes the run score.
func (e *Engine) ResetScore() {
	e.score = 0
}

// SetGameOver marks the run finished. Cleared by the next swap.
func (e *Engine) SetGameOver() {
	e.gameOver = true
}

// GameOver reports whether the current scene declared the run finished.
func (e *Engine) GameOver() bool {
	return e.gameOver
}
