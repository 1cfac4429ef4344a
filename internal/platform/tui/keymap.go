package tui

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-scene/internal/core"
)

// KeyMapper translates Bubble Tea messages into engine key names and menu
// actions. This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// KeyName returns the name scenes query with Input.IsDown.
func (km *KeyMapper) KeyName(msg tea.KeyMsg) string {
	switch key := msg.String(); key {
	case " ":
		return "space"
	default:
		return key
	}
}

// IsQuit reports whether a key ends the program.
func (km *KeyMapper) IsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	}
	return false
}

// MouseButton maps a Bubble Tea button to an engine button.
func (km *KeyMapper) MouseButton(b tea.MouseButton) (core.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return core.MouseLeft, true
	case tea.MouseButtonMiddle:
		return core.MouseMiddle, true
	case tea.MouseButtonRight:
		return core.MouseRight, true
	}
	return 0, false
}

// ApplyMouse pushes a mouse event into the engine input.
func (km *KeyMapper) ApplyMouse(msg tea.MouseMsg, in *core.Input) {
	in.MouseMove(float64(msg.X), float64(msg.Y))
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		in.MouseScroll(-1)
		return
	case tea.MouseButtonWheelDown:
		in.MouseScroll(1)
		return
	}
	b, ok := km.MouseButton(msg.Button)
	if !ok {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		in.MouseButtonDown(b)
	case tea.MouseActionRelease:
		in.MouseButtonUp(b)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// keyHold synthesizes key releases. Terminals report presses and repeats
// only, so a key counts as held until no event arrived for hold.
type keyHold struct {
	hold time.Duration
	last map[string]time.Time
}

func newKeyHold(hold time.Duration) *keyHold {
	return &keyHold{hold: hold, last: make(map[string]time.Time)}
}

// Press marks key down at now.
func (k *keyHold) Press(key string, now time.Time, in *core.Input) {
	in.KeyDown(key)
	k.last[key] = now
}

// Expire releases keys whose last event is older than the hold window.
// Returns the released keys, sorted.
func (k *keyHold) Expire(now time.Time, in *core.Input) []string {
	var released []string
	for key, t := range k.last {
		if now.Sub(t) > k.hold {
			in.KeyUp(key)
			delete(k.last, key)
			released = append(released, key)
		}
	}
	sort.Strings(released)
	return released
}

// Reset forgets every held key.
func (k *keyHold) Reset() {
	clear(k.last)
}
