package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.999, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestNewAABBArity(t *testing.T) {
	b := NewAABB(-8, -8, 8, 8)
	if b.Is3D || b.Width() != 16 || b.Height() != 16 {
		t.Errorf("2D box = %+v", b)
	}

	b3 := NewAABB(-1, -2, -3, 1, 2, 3)
	if !b3.Is3D || b3.Depth() != 6 {
		t.Errorf("3D box = %+v", b3)
	}

	defer func() {
		if recover() == nil {
			t.Error("NewAABB with 5 values should panic")
		}
	}()
	NewAABB(1, 2, 3, 4, 5)
}

func TestInvertedAABBPanics(t *testing.T) {
	tests := []struct {
		name  string
		build func() AABB
	}{
		{"Box2 inverted X", func() AABB { return Box2(200, 0, -200, 8) }},
		{"Box2 inverted Y", func() AABB { return Box2(0, 8, 8, 7) }},
		{"NewAABB inverted X", func() AABB { return NewAABB(1, 0, 0, 1) }},
		{"NewAABB inverted Z", func() AABB { return NewAABB(0, 0, 1, 1, 1, 0) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("inverted box should panic")
				}
			}()
			tc.build()
		})
	}

	if b := Box2(0, 0, 0, 0); b.Width() != 0 || b.Height() != 0 {
		t.Errorf("empty box = %+v, expected zero size", b)
	}
}

func TestOverlaps(t *testing.T) {
	box := NewAABB(-8, -8, 8, 8)
	if !Overlaps(box, mgl64.Vec3{0, 0, 0}, box, mgl64.Vec3{15, 0, 0}) {
		t.Error("boxes 15 apart should overlap")
	}
	if Overlaps(box, mgl64.Vec3{0, 0, 0}, box, mgl64.Vec3{16, 0, 0}) {
		t.Error("touching boxes should not overlap")
	}

	cube := NewAABB(-1, -1, -1, 1, 1, 1)
	if Overlaps(cube, mgl64.Vec3{0, 0, 0}, cube, mgl64.Vec3{0, 0, 5}) {
		t.Error("cubes separated on Z should not overlap")
	}
	// Mixed dimensionality falls back to 2D
	if !Overlaps(cube, mgl64.Vec3{0, 0, 0}, box, mgl64.Vec3{0, 0, 50}) {
		t.Error("2D fallback should ignore Z")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestSignRound(t *testing.T) {
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(2) != 1 {
		t.Error("Sign returned wrong values")
	}
	if RoundTo(0.0004, 3) != 0 {
		t.Errorf("RoundTo(0.0004, 3) = %v", RoundTo(0.0004, 3))
	}
	if RoundTo(1.2346, 3) != 1.235 {
		t.Errorf("RoundTo(1.2346, 3) = %v", RoundTo(1.2346, 3))
	}
}
