// Package core provides fundamental types and utilities for the scene engine.
// It holds geometry, the character framebuffer and input state, and has no
// dependency on the terminal layer so that simulation code stays testable.
package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// AABB is a bounding box expressed as offsets from an owner's position.
// A 2D box uses MinX,MinY,MaxX,MaxY; a 3D box also carries MinZ,MaxZ.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
	Is3D             bool
}

// NewAABB builds a box from 4 values (minX, minY, maxX, maxY) or
// 6 values (minX, minY, minZ, maxX, maxY, maxZ).
// Any other arity, or a max below its min, is a structural bug in the
// caller and panics.
func NewAABB(v ...float64) AABB {
	switch len(v) {
	case 4:
		return AABB{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}.mustValid()
	case 6:
		return AABB{MinX: v[0], MinY: v[1], MinZ: v[2], MaxX: v[3], MaxY: v[4], MaxZ: v[5], Is3D: true}.mustValid()
	default:
		panic(fmt.Sprintf("core: AABB needs 4 or 6 values, got %d", len(v)))
	}
}

// Box2 is shorthand for NewAABB with four values.
func Box2(minX, minY, maxX, maxY float64) AABB {
	return AABB{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}.mustValid()
}

func (b AABB) mustValid() AABB {
	if b.MaxX < b.MinX || b.MaxY < b.MinY || (b.Is3D && b.MaxZ < b.MinZ) {
		panic(fmt.Sprintf("core: inverted AABB %+v", b))
	}
	return b
}

// Width returns the X extent of the box.
func (b AABB) Width() float64 { return b.MaxX - b.MinX }

// Height returns the Y extent of the box.
func (b AABB) Height() float64 { return b.MaxY - b.MinY }

// Depth returns the Z extent of the box (0 for 2D boxes).
func (b AABB) Depth() float64 { return b.MaxZ - b.MinZ }

// RectAt returns the world rectangle the box covers when its owner stands at (x, y).
func (b AABB) RectAt(x, y float64) Rect {
	return Rect{X: x + b.MinX, Y: y + b.MinY, W: b.Width(), H: b.Height()}
}

// Overlaps reports whether box a at position pa intersects box b at pb.
// When both boxes are 3D the Z axis is tested too; otherwise the 2D test is used.
func Overlaps(a AABB, pa mgl64.Vec3, b AABB, pb mgl64.Vec3) bool {
	if !a.RectAt(pa.X(), pa.Y()).Intersects(b.RectAt(pb.X(), pb.Y())) {
		return false
	}
	if a.Is3D && b.Is3D {
		aMin, aMax := pa.Z()+a.MinZ, pa.Z()+a.MaxZ
		bMin, bMax := pb.Z()+b.MinZ, pb.Z()+b.MaxZ
		if aMin >= bMax || bMin >= aMax {
			return false
		}
	}
	return true
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0, or 1.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
