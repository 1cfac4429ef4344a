package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/registry"
	"github.com/vovakirdan/tui-scene/internal/scheduler"
	"github.com/vovakirdan/tui-scene/internal/sound"
	"github.com/vovakirdan/tui-scene/internal/storage"
)

// GameOptions configures a GameModel.
type GameOptions struct {
	Engine     config.Engine
	Store      *storage.Store // Optional; runs and scores are not recorded without it
	Logger     *log.Logger
	Sound      *sound.Manager // Optional; a silent manager is created if nil
	Session    string         // "local" or the SSH user
	Seed       int64          // Zero picks a time-based seed
	Width      int
	Height     int
	CaptureDir string // Defaults to ~/.tui-scene/screenshots
}

// viewport is the engine's Surface: the terminal minus the status line.
type viewport struct {
	w, h int
}

func (v *viewport) Size() (int, int) {
	return v.w, v.h
}

func (v *viewport) set(termW, termH int) {
	v.w = max(termW, 1)
	v.h = max(termH-1, 1)
}

// GameModel is the Bubble Tea model that runs one demo on an engine.
type GameModel struct {
	demo     registry.Demo
	engine   *scheduler.Engine
	screen   *core.Screen
	view     *viewport
	sound    *sound.Manager
	store    *storage.Store
	run      *storage.Run
	hold     *keyHold
	keys     *KeyMapper
	logger   *log.Logger
	session  string
	seed     int64
	fps      int
	started  time.Time
	last     time.Time
	err      error
	captures string

	paused     bool
	speed      float64 // Restored on unpause
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel builds an engine for demo and schedules its root scene.
func NewGameModel(demo registry.Demo, opts GameOptions) (*GameModel, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}

	mgr := opts.Sound
	if mgr == nil {
		mgr = sound.NewManager(logger)
	}
	mgr.SetVolume(opts.Engine.Audio.Volume)
	if err := demo.LoadSounds(mgr); err != nil {
		return nil, err
	}

	view := &viewport{}
	view.set(opts.Width, opts.Height)
	screen := core.NewScreen(view.w, view.h)

	e := scheduler.New(opts.Engine,
		scheduler.WithLogger(logger),
		scheduler.WithSound(mgr),
		scheduler.WithSurface(view),
		scheduler.WithRenderer(core.NewCanvas(screen)),
		scheduler.WithSeed(opts.Seed),
		scheduler.WithViewSize(view.w, view.h),
	)
	e.SetScene(demo.Scene())

	m := &GameModel{
		demo:     demo,
		engine:   e,
		screen:   screen,
		view:     view,
		sound:    mgr,
		store:    opts.Store,
		hold:     newKeyHold(time.Duration(opts.Engine.KeyHoldMS) * time.Millisecond),
		keys:     NewKeyMapper(),
		logger:   logger,
		session:  opts.Session,
		seed:     opts.Seed,
		fps:      opts.Engine.DisplayFPS,
		captures: opts.CaptureDir,
	}
	m.startRun()
	return m, nil
}

// Init starts the tick loop.
func (m *GameModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and advances the engine on ticks.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.ApplyMouse(msg, m.engine.Input())
		return m, nil

	case tea.WindowSizeMsg:
		m.view.set(msg.Width, msg.Height)
		m.screen.Resize(m.view.w, m.view.h)
		return m, nil

	case tea.FocusMsg:
		m.engine.SetFocus(true)
		return m, nil

	case tea.BlurMsg:
		m.hold.Reset()
		m.engine.SetFocus(false)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		m.finish(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit
	}

	switch msg.String() {
	case "ctrl+s":
		if path, err := m.capture(time.Now()); err != nil {
			m.logger.Warn("tui: capture failed", "err", err)
		} else {
			m.logger.Info("tui: capture saved", "path", path)
		}
		return m, nil
	case "esc":
		if !m.engine.Back() {
			m.finish(storage.EndQuit)
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	case "p":
		m.togglePause()
		return m, nil
	}

	m.hold.Press(m.keys.KeyName(msg), time.Now(), m.engine.Input())
	return m, nil
}

func (m *GameModel) togglePause() {
	m.paused = !m.paused
	if m.paused {
		m.speed = m.engine.Speed()
		m.engine.SetSpeed(0)
		return
	}
	m.engine.SetSpeed(m.speed)
}

// handleTick runs one display callback.
func (m *GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = now
	}
	m.last = now
	m.hold.Expire(now, m.engine.Input())

	ms := float64(now.Sub(m.started).Microseconds()) / 1000
	if _, err := m.engine.Frame(ms); err != nil {
		m.err = err
		m.logger.Error("tui: frame failed", "demo", m.demo.ID(), "err", err)
		m.finish(storage.EndError)
		m.quitting = true
		return m, tea.Quit
	}

	switch over := m.engine.GameOver(); {
	case over && !m.scoreSaved:
		m.saveScore()
		m.finish(storage.EndGameOver)
		m.scoreSaved = true
	case !over && m.scoreSaved:
		// The demo restarted itself.
		m.scoreSaved = false
		m.startRun()
	}

	return m, tickCmd(m.fps)
}

func (m *GameModel) startRun() {
	m.run = nil
	if m.store == nil {
		return
	}
	run, err := m.store.StartRun(m.demo.ID(), m.session, m.seed)
	if err != nil {
		m.logger.Warn("tui: cannot record run", "err", err)
		return
	}
	m.run = run
}

func (m *GameModel) saveScore() {
	score := m.engine.Score()
	if m.store == nil || score <= 0 {
		return
	}
	var runID string
	if m.run != nil {
		runID = m.run.ID
	}
	if _, err := m.store.SaveScore(m.demo.ID(), runID, score); err != nil {
		m.logger.Warn("tui: cannot save score", "err", err)
	}
}

// finish closes the current run once.
func (m *GameModel) finish(reason string) {
	if m.run == nil {
		return
	}
	m.run.Steps = m.engine.Steps()
	m.run.Frames = m.engine.Frames()
	m.run.AvgFPS = m.avgFPS()
	m.run.EndReason = reason
	if err := m.store.FinishRun(m.run); err != nil {
		m.logger.Warn("tui: cannot finish run", "err", err)
	}
	m.run = nil
}

func (m *GameModel) avgFPS() float64 {
	secs := m.last.Sub(m.started).Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(m.engine.Frames()) / secs
}

// View renders the last drawn frame plus the status line.
func (m *GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	return RenderScreen(m.screen) + "\n" + RenderStatus(Status{
		Title:  m.demo.Title(),
		Score:  m.engine.Score(),
		FPS:    m.engine.FPS(),
		Speed:  m.engine.Speed(),
		Paused: m.paused,
	}, m.view.w)
}

// Engine returns the engine driving the demo.
func (m *GameModel) Engine() *scheduler.Engine {
	return m.engine
}

// Err returns the error that stopped the model, if any.
func (m *GameModel) Err() error {
	return m.err
}

// BackToMenu reports whether the player left with esc.
func (m *GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Close silences the model's sound manager.
func (m *GameModel) Close() {
	m.sound.Close()
}

// Run starts the Bubble Tea program for one demo. It returns true when the
// player asked to go back to the menu.
func Run(demo registry.Demo, opts GameOptions) (bool, error) {
	model, err := NewGameModel(demo, opts)
	if err != nil {
		return false, err
	}
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		model.finish(storage.EndError)
		return false, err
	}
	if err := model.Err(); err != nil {
		return false, err
	}
	return model.BackToMenu(), nil
}
