// Package spatial provides a uniform-grid broad-phase index.
package spatial

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-scene/internal/core"
)

// DefaultCellSize is used when a non-positive cell size is requested.
const DefaultCellSize = 64.0

// CellKey identifies one grid cell.
type CellKey struct {
	X, Y int
}

// Hash buckets handles by the grid cells their rectangle overlaps.
// A handle overlapping several cells appears in each of them.
// The grid is unbounded and never resized.
type Hash[T comparable] struct {
	cellSize float64
	cells    map[CellKey][]T
	objects  map[T][]CellKey // cells each handle currently occupies
	hitboxes map[T]core.Rect // last inserted world rectangle
	logger   *log.Logger
}

// New creates an empty hash. A nil logger discards warnings.
func New[T comparable](cellSize float64, logger *log.Logger) *Hash[T] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Hash[T]{
		cellSize: cellSize,
		cells:    make(map[CellKey][]T),
		objects:  make(map[T][]CellKey),
		hitboxes: make(map[T]core.Rect),
		logger:   logger,
	}
}

// CellSize returns the grid cell edge length.
func (h *Hash[T]) CellSize() float64 {
	return h.cellSize
}

// CellKeysFor returns the cells a rectangle covers, row-major.
// A rectangle with negative size covers no cells.
func (h *Hash[T]) CellKeysFor(r core.Rect) []CellKey {
	if r.W < 0 || r.H < 0 {
		return nil
	}
	minX := int(math.Floor(r.X / h.cellSize))
	minY := int(math.Floor(r.Y / h.cellSize))
	maxX := int(math.Floor(r.Right() / h.cellSize))
	maxY := int(math.Floor(r.Bottom() / h.cellSize))

	keys := make([]CellKey, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			keys = append(keys, CellKey{X: x, Y: y})
		}
	}
	return keys
}

// Add registers a handle with its world rectangle.
// Adding a handle that is already tracked is a caller bug and panics,
// since it would duplicate cell membership.
func (h *Hash[T]) Add(e T, r core.Rect) {
	if _, exists := h.objects[e]; exists {
		panic("spatial: handle added twice without remove")
	}

	keys := h.CellKeysFor(r)
	for _, k := range keys {
		h.cells[k] = append(h.cells[k], e)
	}
	h.objects[e] = keys
	h.hitboxes[e] = r
}

// Remove deletes every cell membership and the hitbox record of a handle.
// Removing an untracked handle logs a warning and returns false.
func (h *Hash[T]) Remove(e T) bool {
	keys, ok := h.objects[e]
	if !ok {
		if h.logger != nil {
			h.logger.Warn("spatial: remove of untracked handle", "handle", e)
		}
		return false
	}

	for _, k := range keys {
		bucket := h.cells[k]
		for i, other := range bucket {
			if other == e {
				last := len(bucket) - 1
				bucket[i] = bucket[last]
				var zero T
				bucket[last] = zero
				bucket = bucket[:last]
				break
			}
		}
		if len(bucket) == 0 {
			delete(h.cells, k)
		} else {
			h.cells[k] = bucket
		}
	}
	delete(h.objects, e)
	delete(h.hitboxes, e)
	return true
}

// Update moves a handle to a new rectangle. Callers skip this when the
// rectangle has not changed.
func (h *Hash[T]) Update(e T, r core.Rect) {
	if _, ok := h.objects[e]; ok {
		h.Remove(e)
	}
	h.Add(e, r)
}

// Query returns every handle occupying a cell covered by r.
// This is a broad-phase superset; callers narrow with an exact test.
// Results are deduplicated and ordered by first appearance.
func (h *Hash[T]) Query(r core.Rect) []T {
	seen := make(map[T]struct{})
	var out []T
	for _, k := range h.CellKeysFor(r) {
		for _, e := range h.cells[k] {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether a handle is tracked.
func (h *Hash[T]) Has(e T) bool {
	_, ok := h.objects[e]
	return ok
}

// Hitbox returns the last inserted rectangle of a handle.
func (h *Hash[T]) Hitbox(e T) (core.Rect, bool) {
	r, ok := h.hitboxes[e]
	return r, ok
}

// Cells returns a copy of the cells a handle occupies.
func (h *Hash[T]) Cells(e T) []CellKey {
	keys := h.objects[e]
	out := make([]CellKey, len(keys))
	copy(out, keys)
	return out
}

// At returns the handles in one cell.
func (h *Hash[T]) At(k CellKey) []T {
	return h.cells[k]
}

// Len returns the number of tracked handles.
func (h *Hash[T]) Len() int {
	return len(h.objects)
}

// CellCount returns the number of non-empty cells.
func (h *Hash[T]) CellCount() int {
	return len(h.cells)
}

// Clear drops every entry.
func (h *Hash[T]) Clear() {
	clear(h.cells)
	clear(h.objects)
	clear(h.hitboxes)
}
