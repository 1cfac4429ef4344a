// Package sound plays named sound effects through beep.
//
// Play requests are queued and handed to the mixer on Update, once per
// simulation step, so a sound triggered many times in one step plays once.
package sound

import (
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the mixer output rate.
const SampleRate = beep.SampleRate(44100)

// Format is the buffer format used for generated tones.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Manager owns the registered sounds and the output mixer.
type Manager struct {
	mu      sync.Mutex
	sounds  map[string]*beep.Buffer
	queued  []string
	inQueue map[string]bool
	played  map[string]int

	mixer  *beep.Mixer
	ctrl   *beep.Ctrl
	volume float64 // Linear gain, 1 is unchanged

	speakerOn bool
	paused    bool
	logger    *log.Logger
}

// NewManager creates a manager with no output device. Call InitSpeaker to
// hear anything.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	mixer := &beep.Mixer{}
	return &Manager{
		sounds:  make(map[string]*beep.Buffer),
		inQueue: make(map[string]bool),
		played:  make(map[string]int),
		mixer:   mixer,
		ctrl:    &beep.Ctrl{Streamer: mixer},
		volume:  1,
		logger:  logger,
	}
}

// InitSpeaker opens the audio device. Failure is not fatal; the manager
// keeps counting plays without output.
func (m *Manager) InitSpeaker() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.speakerOn {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(m.ctrl)
	m.speakerOn = true
	return nil
}

// Close silences output and drops queued sounds.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queued = m.queued[:0]
	clear(m.inQueue)
	if m.speakerOn {
		speaker.Lock()
		m.mixer.Clear()
		speaker.Unlock()
	}
}

// SetVolume sets a linear gain applied to sounds started afterwards.
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	m.volume = math.Max(v, 0)
	m.mu.Unlock()
}

// Register adds or replaces a named sound.
func (m *Manager) Register(name string, buf *beep.Buffer) {
	m.mu.Lock()
	m.sounds[name] = buf
	m.mu.Unlock()
}

// RegisterTone generates a sine tone and registers it under name.
func (m *Manager) RegisterTone(name string, freq float64, d time.Duration) error {
	tone, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return err
	}
	buf := beep.NewBuffer(Format)
	buf.Append(beep.Take(SampleRate.N(d), tone))
	m.Register(name, buf)
	return nil
}

// Has reports whether a sound is registered.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sounds[name]
	return ok
}

// Names returns registered sound names, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sounds))
	for name := range m.sounds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Play queues a named sound for the next Update. Unknown names are logged
// and ignored. Requests while paused are dropped.
func (m *Manager) Play(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sounds[name]; !ok {
		m.logger.Warn("sound: unknown sound", "name", name)
		return false
	}
	if m.paused {
		return false
	}
	if !m.inQueue[name] {
		m.inQueue[name] = true
		m.queued = append(m.queued, name)
	}
	return true
}

// Update starts every sound queued since the last call.
func (m *Manager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queued) == 0 {
		return
	}
	var streams []beep.Streamer
	for _, name := range m.queued {
		m.played[name]++
		if m.speakerOn {
			streams = append(streams, m.streamFor(m.sounds[name]))
		}
	}
	m.queued = m.queued[:0]
	clear(m.inQueue)

	if len(streams) > 0 {
		speaker.Lock()
		m.mixer.Add(streams...)
		speaker.Unlock()
	}
}

func (m *Manager) streamFor(buf *beep.Buffer) beep.Streamer {
	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if rate := buf.Format().SampleRate; rate != SampleRate {
		s = beep.Resample(4, rate, SampleRate, s)
	}
	if m.volume != 1 {
		if m.volume == 0 {
			return &effects.Volume{Streamer: s, Base: 2, Silent: true}
		}
		s = &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(m.volume)}
	}
	return s
}

// Pause silences output and rejects new plays until Unpause.
func (m *Manager) Pause() {
	m.setPaused(true)
}

// Unpause resumes output.
func (m *Manager) Unpause() {
	m.setPaused(false)
}

func (m *Manager) setPaused(p bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = p
	if p {
		m.queued = m.queued[:0]
		clear(m.inQueue)
	}
	if m.speakerOn {
		speaker.Lock()
		m.ctrl.Paused = p
		speaker.Unlock()
	}
}

// Paused reports whether output is paused.
func (m *Manager) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// PlayCount returns how many times a sound has been started.
func (m *Manager) PlayCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[name]
}
