package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/core"
)

// Camera defaults.
const (
	DefaultFOV  = 60.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Camera2D places the world in the viewport. Pos is the world point shown
// at the viewport centre.
type Camera2D struct {
	Pos      mgl64.Vec2
	Rotation float64 // Radians
	Scale    float64
}

// NewCamera2D returns a camera centred on the origin at unit scale.
func NewCamera2D() Camera2D {
	return Camera2D{Scale: 1}
}

// ScreenToWorld maps a viewport cell to world coordinates.
func (c Camera2D) ScreenToWorld(sx, sy float64, viewW, viewH int) mgl64.Vec2 {
	p := mgl64.Vec2{sx - float64(viewW)/2, sy - float64(viewH)/2}
	if c.Scale != 0 {
		p = p.Mul(1 / c.Scale)
	}
	rot := mgl64.Rotate2D(-c.Rotation)
	return rot.Mul2x1(p).Add(c.Pos)
}

// Camera3D is a perspective camera. View and Projection are only valid
// after UpdateMatrices.
type Camera3D struct {
	Pos    mgl64.Vec3
	Look   mgl64.Vec3 // Direction, not target
	Up     mgl64.Vec3
	FOV    float64 // Vertical, degrees
	Near   float64
	Far    float64
	Aspect float64

	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// NewCamera3D returns a camera at the origin looking down -Z. Zero
// parameters fall back to the package defaults.
func NewCamera3D(fov, near, far float64) Camera3D {
	if fov <= 0 {
		fov = DefaultFOV
	}
	if near <= 0 {
		near = DefaultNear
	}
	if far <= near {
		far = DefaultFar
	}
	return Camera3D{
		Look:       mgl64.Vec3{0, 0, -1},
		Up:         mgl64.Vec3{0, 1, 0},
		FOV:        fov,
		Near:       near,
		Far:        far,
		Aspect:     1,
		View:       mgl64.Ident4(),
		Projection: mgl64.Ident4(),
	}
}

// SetAspect derives the aspect ratio from a viewport size. Terminal cells
// are about twice as tall as wide, so the width is halved.
func (c *Camera3D) SetAspect(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float64(w) / 2 / float64(h)
}

// UpdateMatrices recomputes View and Projection. Call after every mutation.
func (c *Camera3D) UpdateMatrices() {
	c.View = mgl64.LookAtV(c.Pos, c.Pos.Add(c.Look), c.Up)
	c.Projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// SetUniforms hands the matrices to a renderer.
func (c *Camera3D) SetUniforms(u core.UniformSetter) {
	u.SetMat4(core.UniformView, c.View)
	u.SetMat4(core.UniformProjection, c.Projection)
}
