package scene

import (
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-scene/internal/core"
)

// ThingState is the serialisable view of one thing.
type ThingState struct {
	ID         uint64    `msgpack:"id"`
	Name       string    `msgpack:"name,omitempty"`
	Pos        []float64 `msgpack:"pos"`
	Vel        []float64 `msgpack:"vel"`
	Box        core.AABB `msgpack:"box"`
	Depth      float64   `msgpack:"depth"`
	Solid      bool      `msgpack:"solid"`
	Persistent bool      `msgpack:"persistent"`
	Paused     bool      `msgpack:"paused"`
	Animation  string    `msgpack:"anim,omitempty"`
	Frame      int       `msgpack:"frame"`
	Timers     []string  `msgpack:"timers,omitempty"`
}

// Snapshot is a point-in-time dump of a scene for debugging.
type Snapshot struct {
	Label     string            `msgpack:"label"`
	TakenAt   time.Time         `msgpack:"taken_at"`
	ViewW     int               `msgpack:"view_w"`
	ViewH     int               `msgpack:"view_h"`
	Camera    []float64         `msgpack:"camera"` // x, y, rotation, scale
	Layers    []int             `msgpack:"layers"`
	Names     map[string]uint64 `msgpack:"names"`
	Things    []ThingState      `msgpack:"things"`
	CellCount int               `msgpack:"cells"`
}

// Snapshot captures the current scene state.
func (s *Scene) Snapshot(label string) Snapshot {
	snap := Snapshot{
		Label:     label,
		TakenAt:   time.Now(),
		ViewW:     s.viewW,
		ViewH:     s.viewH,
		Camera:    []float64{s.Camera.Pos.X(), s.Camera.Pos.Y(), s.Camera.Rotation, s.Camera.Scale},
		Layers:    append([]int(nil), s.layerKeys...),
		Names:     make(map[string]uint64, len(s.names)),
		CellCount: s.hash.CellCount(),
	}
	for name, t := range s.names {
		snap.Names[name] = uint64(t.ID())
	}
	for _, t := range s.things {
		snap.Things = append(snap.Things, ThingState{
			ID:         uint64(t.ID()),
			Name:       t.Name,
			Pos:        []float64{t.Pos.X(), t.Pos.Y(), t.Pos.Z()},
			Vel:        []float64{t.Vel.X(), t.Vel.Y()},
			Box:        t.Box,
			Depth:      t.Depth,
			Solid:      t.Solid,
			Persistent: t.Persistent,
			Paused:     t.Paused,
			Animation:  t.Animation(),
			Frame:      t.Frame(),
			Timers:     t.Timers(),
		})
	}
	return snap
}

// EncodeSnapshot writes a snapshot as msgpack.
func EncodeSnapshot(w io.Writer, snap Snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("scene: cannot encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a msgpack snapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("scene: cannot decode snapshot: %w", err)
	}
	return snap, nil
}
