package core

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// String returns a human-readable name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Mouse holds pointer state delivered by the platform layer.
type Mouse struct {
	X, Y           float64 // Position in screen cells
	DX, DY         float64 // Movement accumulated since the last simulation step
	RawDX, RawDY   float64 // Movement accumulated since the last rendered frame
	ScrollDY       float64 // Wheel movement since the last simulation step
	Down           map[MouseButton]bool
	Clicked        map[MouseButton]bool // Pressed at least once since the last step
	hasFirstSample bool
}

// Input is the keyboard and mouse state the platform pushes into the engine.
// The engine only reads it and derives pressed-this-step edges.
type Input struct {
	down    map[string]bool
	held    map[string]bool // Snapshot of down taken after the last drained step
	pressed map[string]bool
	Mouse   Mouse
}

// NewInput creates empty input state.
func NewInput() *Input {
	return &Input{
		down:    make(map[string]bool),
		held:    make(map[string]bool),
		pressed: make(map[string]bool),
		Mouse: Mouse{
			Down:    make(map[MouseButton]bool),
			Clicked: make(map[MouseButton]bool),
		},
	}
}

// KeyDown marks a key as physically down.
func (in *Input) KeyDown(key string) {
	in.down[key] = true
}

// KeyUp marks a key as released.
func (in *Input) KeyUp(key string) {
	delete(in.down, key)
}

// IsDown returns true while the key is held.
func (in *Input) IsDown(key string) bool {
	return in.down[key]
}

// Pressed returns true only on the step where the key went down.
func (in *Input) Pressed(key string) bool {
	return in.pressed[key]
}

// DownKeys returns the keys currently held, in no particular order.
func (in *Input) DownKeys() []string {
	keys := make([]string, 0, len(in.down))
	for k := range in.down {
		keys = append(keys, k)
	}
	return keys
}

// ComputeEdges derives the pressed set from down and the last held snapshot.
// Called once per simulation step before the scene updates.
func (in *Input) ComputeEdges() {
	clear(in.pressed)
	for k := range in.down {
		if !in.held[k] {
			in.pressed[k] = true
		}
	}
}

// SnapshotHeld records the current down set as "held last step" and clears
// the per-step mouse accumulators.
func (in *Input) SnapshotHeld() {
	clear(in.held)
	for k := range in.down {
		in.held[k] = true
	}
	in.Mouse.DX, in.Mouse.DY = 0, 0
	in.Mouse.ScrollDY = 0
	clear(in.Mouse.Clicked)
}

// ResetRaw clears the per-frame raw mouse delta.
func (in *Input) ResetRaw() {
	in.Mouse.RawDX, in.Mouse.RawDY = 0, 0
}

// ClearKeys releases every key, used when the window loses focus.
func (in *Input) ClearKeys() {
	clear(in.down)
	clear(in.held)
	clear(in.pressed)
}

// ZeroMouse resets the mouse to a blank state.
func (in *Input) ZeroMouse() {
	in.Mouse = Mouse{
		Down:    make(map[MouseButton]bool),
		Clicked: make(map[MouseButton]bool),
	}
}

// MouseMove records a new pointer position and accumulates deltas.
func (in *Input) MouseMove(x, y float64) {
	m := &in.Mouse
	if m.hasFirstSample {
		dx, dy := x-m.X, y-m.Y
		m.DX += dx
		m.DY += dy
		m.RawDX += dx
		m.RawDY += dy
	}
	m.X, m.Y = x, y
	m.hasFirstSample = true
}

// MouseButtonDown records a button press.
func (in *Input) MouseButtonDown(b MouseButton) {
	in.Mouse.Down[b] = true
	in.Mouse.Clicked[b] = true
}

// MouseButtonUp records a button release.
func (in *Input) MouseButtonUp(b MouseButton) {
	delete(in.Mouse.Down, b)
}

// MouseScroll accumulates wheel movement.
func (in *Input) MouseScroll(dy float64) {
	in.Mouse.ScrollDY += dy
}
