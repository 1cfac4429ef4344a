package core

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCanvasTranslatePushPop(t *testing.T) {
	c := NewCanvas(NewScreen(20, 10))

	c.Push()
	c.Translate(5, 2)
	c.Plot(1, 1, 'X', ColorRed)
	c.Pop()
	c.Plot(1, 1, 'Y', ColorDefault)

	if got := c.Screen().GetCell(6, 3); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("translated plot = %+v, expected red X at (6,3)", got)
	}
	if c.Screen().Get(1, 1) != 'Y' {
		t.Error("Pop should restore identity transform")
	}
}

func TestCanvasScaleRotate(t *testing.T) {
	c := NewCanvas(NewScreen(20, 20))
	c.Translate(10, 10)
	c.Scale(2, 2)
	if x, y := c.Transform(1, 1); x != 12 || y != 12 {
		t.Errorf("scaled Transform(1,1) = (%d,%d), expected (12,12)", x, y)
	}

	c.Clear()
	c.Translate(10, 10)
	c.Rotate(math.Pi / 2)
	// (3, 0) rotated by +90 degrees lands on (0, 3); add a small bias against floor rounding.
	if x, y := c.Transform(3, 0.01); x != 9 || y != 13 {
		t.Errorf("rotated Transform = (%d,%d), expected (9,13)", x, y)
	}
}

func TestCanvasSpriteTransparency(t *testing.T) {
	c := NewCanvas(NewScreen(10, 5))
	sp := &Sprite{
		W: 3, H: 2, OriginX: 1, OriginY: 1, Color: ColorGreen,
		Frames: [][]string{{"a b", "ccc"}},
	}
	c.Screen().Set(4, 1, '#')
	c.Sprite(4, 2, sp, 0)

	if c.Screen().Get(3, 1) != 'a' || c.Screen().Get(5, 1) != 'b' {
		t.Errorf("top row = %q", c.Screen().Row(1))
	}
	if c.Screen().Get(4, 1) != '#' {
		t.Error("space in sprite should be transparent")
	}
	if c.Screen().Row(2)[3:6] != "ccc" {
		t.Errorf("bottom row = %q", c.Screen().Row(2))
	}

	// Out of range frames and nil sprites draw nothing
	c.Sprite(0, 0, sp, 3)
	c.Sprite(0, 0, nil, 0)
	if sp.FrameCount() != 1 || (*Sprite)(nil).FrameCount() != 0 {
		t.Error("FrameCount mismatch")
	}
}

func TestCanvasPlot3D(t *testing.T) {
	c := NewCanvas(NewScreen(20, 10))
	c.Plot3D(mgl64.Vec3{0, 0, 0}, 'o', ColorDefault)
	if strings.ContainsRune(c.Screen().String(), 'o') {
		t.Fatal("Plot3D without a projection should draw nothing")
	}

	c.SetMat4(UniformView, mgl64.LookAtV(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}))
	c.SetMat4(UniformProjection, mgl64.Perspective(mgl64.DegToRad(90), 2, 0.1, 100))

	c.Plot3D(mgl64.Vec3{0, 0, 0}, 'o', ColorDefault)
	c.Plot3D(mgl64.Vec3{0, 0, 10}, 'x', ColorDefault) // behind the camera

	found := false
	for y := 3; y <= 5; y++ {
		for x := 9; x <= 10; x++ {
			if c.Screen().Get(x, y) == 'o' {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("projected origin not near centre:\n%s", c.Screen().String())
	}
	if strings.ContainsRune(c.Screen().String(), 'x') {
		t.Error("point behind the camera should be dropped")
	}
}
