package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Renderer is the drawing surface handed to thing draw hooks.
// Coordinates pass through the current affine transform before they land
// on the underlying target.
type Renderer interface {
	Clear()
	Size() (w, h int)

	// Push saves the current transform; Pop restores the last saved one.
	Push()
	Pop()
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(radians float64)

	Plot(x, y float64, r rune, c Color)
	Text(x, y float64, s string, c Color)
	Sprite(x, y float64, sp *Sprite, frame int)

	// Plot3D projects a world point through the view and projection
	// uniforms. It ignores the 2D transform stack.
	Plot3D(v mgl64.Vec3, r rune, c Color)
}

// UniformSetter receives named camera matrices.
type UniformSetter interface {
	SetMat4(name string, m mgl64.Mat4)
}

// Uniform names understood by Canvas.
const (
	UniformView       = "view"
	UniformProjection = "projection"
)

// Sprite is a sheet of equally sized character frames.
type Sprite struct {
	Name    string
	W, H    int
	OriginX int // Frame column drawn at the owner's position
	OriginY int
	Color   Color
	Frames  [][]string // Frames[i] is a list of H rows
}

// FrameCount returns the number of frames in the sheet.
func (s *Sprite) FrameCount() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Canvas renders onto a Screen through a stack of 2D affine transforms.
type Canvas struct {
	screen *Screen
	m      mgl64.Mat3
	stack  []mgl64.Mat3

	view, proj mgl64.Mat4
	hasProj    bool
}

// NewCanvas wraps a screen with an identity transform.
func NewCanvas(s *Screen) *Canvas {
	return &Canvas{screen: s, m: mgl64.Ident3(), view: mgl64.Ident4(), proj: mgl64.Ident4()}
}

// SetMat4 stores a camera uniform. Unknown names are ignored.
func (c *Canvas) SetMat4(name string, m mgl64.Mat4) {
	switch name {
	case UniformView:
		c.view = m
	case UniformProjection:
		c.proj = m
		c.hasProj = true
	}
}

// Screen returns the underlying character buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Clear blanks the screen and resets the transform stack.
func (c *Canvas) Clear() {
	c.screen.Clear()
	c.m = mgl64.Ident3()
	c.stack = c.stack[:0]
}

// Size returns the screen size in cells.
func (c *Canvas) Size() (int, int) {
	return c.screen.Width(), c.screen.Height()
}

// Push saves the current transform.
func (c *Canvas) Push() {
	c.stack = append(c.stack, c.m)
}

// Pop restores the last pushed transform. Popping an empty stack resets to identity.
func (c *Canvas) Pop() {
	if len(c.stack) == 0 {
		c.m = mgl64.Ident3()
		return
	}
	c.m = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate post-multiplies a translation.
func (c *Canvas) Translate(x, y float64) {
	c.m = c.m.Mul3(mgl64.Translate2D(x, y))
}

// Scale post-multiplies a scale.
func (c *Canvas) Scale(sx, sy float64) {
	c.m = c.m.Mul3(mgl64.Scale2D(sx, sy))
}

// Rotate post-multiplies a rotation about the current origin.
func (c *Canvas) Rotate(radians float64) {
	c.m = c.m.Mul3(mgl64.HomogRotate2D(radians))
}

// Transform maps a point through the current transform to screen cells.
func (c *Canvas) Transform(x, y float64) (int, int) {
	p := c.m.Mul3x1(mgl64.Vec3{x, y, 1})
	return int(math.Floor(p.X())), int(math.Floor(p.Y()))
}

// Plot draws one character.
func (c *Canvas) Plot(x, y float64, r rune, col Color) {
	sx, sy := c.Transform(x, y)
	c.screen.SetColor(sx, sy, r, col)
}

// Text draws a string left to right starting at (x, y) in transformed space.
func (c *Canvas) Text(x, y float64, s string, col Color) {
	i := 0
	for _, r := range s {
		c.Plot(x+float64(i), y, r, col)
		i++
	}
}

// Sprite draws one frame of a sheet with its origin at (x, y).
// Spaces are transparent. A nil sprite or out-of-range frame draws nothing.
func (c *Canvas) Sprite(x, y float64, sp *Sprite, frame int) {
	if sp == nil || frame < 0 || frame >= len(sp.Frames) {
		return
	}
	for row, line := range sp.Frames[frame] {
		col := 0
		for _, r := range line {
			if r != ' ' {
				c.Plot(x+float64(col-sp.OriginX), y+float64(row-sp.OriginY), r, sp.Color)
			}
			col++
		}
	}
}

// Plot3D draws one character at the projection of v. Points behind the
// camera or outside the depth range are dropped. Without a projection
// uniform nothing is drawn.
func (c *Canvas) Plot3D(v mgl64.Vec3, r rune, col Color) {
	if !c.hasProj {
		return
	}
	clip := c.proj.Mul4(c.view).Mul4x1(v.Vec4(1))
	if clip.W() <= 0 {
		return
	}
	w, h := c.Size()
	win := mgl64.Project(v, c.view, c.proj, 0, 0, w, h)
	if win.Z() < 0 || win.Z() > 1 {
		return
	}
	// Window space grows upwards; rows grow downwards.
	c.screen.SetColor(int(math.Floor(win.X())), h-1-int(math.Floor(win.Y())), r, col)
}
