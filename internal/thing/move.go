package thing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/core"
)

// Pushback is subtracted after snapping to an integer on contact so the
// thing rests just outside the obstacle.
const Pushback = 0.0001

// movePrecision is the number of decimal places below which a remaining
// displacement counts as zero.
const movePrecision = 3

const (
	axisX = 0
	axisY = 1
)

// Move resolves a displacement against solid things.
// X is swept to completion first, then Y from the resolved X position.
// Each sweep advances at most stepSize per probe; on the first solid overlap
// the axis velocity is zeroed, the position snaps to the last free integer
// minus Pushback, and the matching contact flag is set.
//
// Contacts are cleared at the start of every non-zero move. A zero move
// leaves position, velocity and contacts untouched.
func (t *Thing) Move(dx, dy, stepSize float64) {
	if core.RoundTo(dx, movePrecision) == 0 && core.RoundTo(dy, movePrecision) == 0 {
		return
	}
	if stepSize <= 0 {
		stepSize = DefaultStepSize
	}

	t.Contacts = Contacts{}
	t.sweep(axisX, dx, stepSize)
	t.sweep(axisY, dy, stepSize)
}

func (t *Thing) sweep(axis int, d, stepSize float64) {
	remaining := d
	for core.RoundTo(remaining, movePrecision) != 0 {
		step := math.Copysign(math.Min(stepSize, math.Abs(remaining)), remaining)
		lastFree := t.Pos[axis]
		t.Pos[axis] += step

		if !t.CheckCollision(t.Pos.X(), t.Pos.Y()) {
			remaining -= step
			continue
		}

		sign := core.Sign(step)
		t.Pos[axis] = math.Round(lastFree) - sign*Pushback
		if t.CheckCollision(t.Pos.X(), t.Pos.Y()) {
			t.Pos[axis] = lastFree
		}
		t.Vel[axis] = 0
		t.setContact(axis, sign)
		return
	}
}

func (t *Thing) setContact(axis int, sign float64) {
	switch {
	case axis == axisX && sign > 0:
		t.Contacts.Right = true
	case axis == axisX && sign < 0:
		t.Contacts.Left = true
	case axis == axisY && sign > 0:
		t.Contacts.Down = true
	case axis == axisY && sign < 0:
		t.Contacts.Up = true
	}
}

// CheckCollision reports whether a solid thing would overlap this one if it
// stood at (x, y). Passing z as well switches to a 3D test when both boxes
// are 3D.
func (t *Thing) CheckCollision(x, y float64, z ...float64) bool {
	p, use3D := t.probe(x, y, z)
	return t.firstAt(p, use3D, true) != nil
}

// IsOverlapping reports whether any overlap-enabled thing intersects this one.
func (t *Thing) IsOverlapping() bool {
	return t.FirstOverlap() != nil
}

// FirstOverlap returns the first overlapping thing in broad-phase order, or nil.
func (t *Thing) FirstOverlap() *Thing {
	return t.firstAt(t.Pos, t.Box.Is3D, false)
}

// AllOverlaps returns every overlapping thing at the current position.
func (t *Thing) AllOverlaps() []*Thing {
	return t.collect(t.Pos, t.Box.Is3D, false)
}

func (t *Thing) probe(x, y float64, z []float64) (mgl64.Vec3, bool) {
	p := mgl64.Vec3{x, y, t.Pos.Z()}
	if len(z) > 0 {
		p[2] = z[0]
		return p, true
	}
	return p, false
}

func (t *Thing) firstAt(p mgl64.Vec3, use3D, solidOnly bool) *Thing {
	if t.world == nil {
		return nil
	}
	for _, o := range t.world.QueryRect(t.Box.RectAt(p.X(), p.Y())) {
		if t.hits(o, p, use3D, solidOnly) {
			return o
		}
	}
	return nil
}

func (t *Thing) collect(p mgl64.Vec3, use3D, solidOnly bool) []*Thing {
	if t.world == nil {
		return nil
	}
	var out []*Thing
	for _, o := range t.world.QueryRect(t.Box.RectAt(p.X(), p.Y())) {
		if t.hits(o, p, use3D, solidOnly) {
			out = append(out, o)
		}
	}
	return out
}

// hits is the narrow phase shared by collision and overlap queries.
func (t *Thing) hits(o *Thing, p mgl64.Vec3, use3D, solidOnly bool) bool {
	if o == nil || o == t || o.Dead || !o.Overlaps {
		return false
	}
	if solidOnly && !o.Solid {
		return false
	}
	a := t.Box
	if !use3D {
		a.Is3D = false
	}
	return core.Overlaps(a, p, o.Box, o.Pos)
}
