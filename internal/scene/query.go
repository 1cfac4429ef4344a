package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-scene/internal/core"
	"github.com/vovakirdan/tui-scene/internal/thing"
)

// QueryRect returns things whose grid cells intersect r. Broad phase only.
func (s *Scene) QueryRect(r core.Rect) []*thing.Thing {
	ids := s.hash.Query(r)
	out := make([]*thing.Thing, 0, len(ids))
	for _, id := range ids {
		if t := s.byID[id]; t != nil {
			out = append(out, t)
		}
	}
	return out
}

// QueryNear is the broad-phase candidate set around r.
func (s *Scene) QueryNear(r core.Rect) []*thing.Thing {
	return s.QueryRect(r)
}

// QueryNearPoint returns living things whose world rectangle comes within
// radius of (x, y).
func (s *Scene) QueryNearPoint(x, y, radius float64) []*thing.Thing {
	var out []*thing.Thing
	for _, t := range s.QueryRect(core.NewRect(x-radius, y-radius, radius*2, radius*2)) {
		if t.Dead {
			continue
		}
		r := t.WorldRect()
		dx := x - core.ClampF(x, r.X, r.Right())
		dy := y - core.ClampF(y, r.Y, r.Bottom())
		if dx*dx+dy*dy <= radius*radius {
			out = append(out, t)
		}
	}
	return out
}

// QueryInAABB returns living things whose box overlaps box placed at pos.
func (s *Scene) QueryInAABB(box core.AABB, pos mgl64.Vec3) []*thing.Thing {
	var out []*thing.Thing
	for _, t := range s.QueryRect(box.RectAt(pos.X(), pos.Y())) {
		if !t.Dead && core.Overlaps(box, pos, t.Box, t.Pos) {
			out = append(out, t)
		}
	}
	return out
}
