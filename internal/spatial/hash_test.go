package spatial

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-scene/internal/core"
)

func TestCellKeysFor(t *testing.T) {
	h := New[int](64, nil)

	tests := []struct {
		name     string
		r        core.Rect
		expected []CellKey
	}{
		{"single cell", core.NewRect(1, 1, 10, 10), []CellKey{{0, 0}}},
		{"spans two columns", core.NewRect(60, 0, 10, 10), []CellKey{{0, 0}, {1, 0}}},
		{"negative coords", core.NewRect(-10, -10, 5, 5), []CellKey{{-1, -1}}},
		{"four cells", core.NewRect(-1, -1, 2, 2), []CellKey{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}}},
		{"negative width", core.Rect{X: 200, W: -400, H: 8}, nil},
		{"negative height", core.Rect{X: 0, Y: 5, W: 8, H: -1}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := h.CellKeysFor(tc.r)
			if len(got) != len(tc.expected) {
				t.Fatalf("CellKeysFor() = %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("CellKeysFor()[%d] = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestDefaultCellSize(t *testing.T) {
	if h := New[int](0, nil); h.CellSize() != DefaultCellSize {
		t.Errorf("CellSize() = %v, expected %v", h.CellSize(), DefaultCellSize)
	}
}

func TestQueryCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := New[int](32, nil)
	rects := make(map[int]core.Rect)

	for i := 0; i < 200; i++ {
		r := core.NewRect(rng.Float64()*1000-500, rng.Float64()*1000-500, 1+rng.Float64()*80, 1+rng.Float64()*80)
		rects[i] = r
		h.Add(i, r)
	}

	for i := 0; i < 500; i++ {
		q := core.NewRect(rng.Float64()*1000-500, rng.Float64()*1000-500, 1+rng.Float64()*120, 1+rng.Float64()*120)
		found := make(map[int]bool)
		for _, e := range h.Query(q) {
			if found[e] {
				t.Fatalf("Query returned duplicate handle %d", e)
			}
			found[e] = true
		}
		for id, r := range rects {
			if r.Intersects(q) && !found[id] {
				t.Fatalf("Query(%v) missed handle %d at %v", q, id, r)
			}
		}
	}
}

func TestQueryDisjointIsEmpty(t *testing.T) {
	h := New[string](64, nil)
	h.Add("a", core.NewRect(0, 0, 10, 10))
	h.Add("b", core.NewRect(100, 100, 10, 10))

	if got := h.Query(core.NewRect(1000, 1000, 50, 50)); len(got) != 0 {
		t.Errorf("Query over empty region = %v, expected none", got)
	}
}

func TestChurnConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := New[int](16, nil)
	live := make(map[int]bool)

	for step := 0; step < 3000; step++ {
		id := rng.Intn(40)
		r := core.NewRect(rng.Float64()*300, rng.Float64()*300, 1+rng.Float64()*40, 1+rng.Float64()*40)
		switch op := rng.Intn(3); {
		case op == 0 && !live[id]:
			h.Add(id, r)
			live[id] = true
		case op == 1 && live[id]:
			h.Update(id, r)
		case op == 2 && live[id]:
			if !h.Remove(id) {
				t.Fatalf("Remove(%d) of live handle returned false", id)
			}
			delete(live, id)
		}
	}

	if h.Len() != len(live) {
		t.Fatalf("Len() = %d, expected %d", h.Len(), len(live))
	}

	// Every (handle, cell) pair must match coverage recomputed from the hitbox.
	pairs := 0
	for id := range live {
		hitbox, ok := h.Hitbox(id)
		if !ok {
			t.Fatalf("live handle %d has no hitbox", id)
		}
		want := h.CellKeysFor(hitbox)
		got := h.Cells(id)
		if len(want) != len(got) {
			t.Fatalf("handle %d cells = %v, expected %v", id, got, want)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("handle %d cell %d = %v, expected %v", id, i, got[i], want[i])
			}
			count := 0
			for _, e := range h.At(want[i]) {
				if e == id {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("handle %d appears %d times in cell %v", id, count, want[i])
			}
			pairs++
		}
	}

	total := 0
	for _, id := range allHandles(h) {
		if !live[id] {
			t.Fatalf("dead handle %d still in a cell", id)
		}
		total++
	}
	if total != pairs {
		t.Errorf("cell membership count = %d, expected %d", total, pairs)
	}
}

// allHandles lists every (handle, cell) membership, one entry per pair.
func allHandles(h *Hash[int]) []int {
	var out []int
	for _, bucket := range h.cells {
		out = append(out, bucket...)
	}
	return out
}

func TestRemoveUntrackedWarns(t *testing.T) {
	var buf bytes.Buffer
	h := New[int](64, log.New(&buf))

	if h.Remove(99) {
		t.Error("Remove of untracked handle should return false")
	}
	if !strings.Contains(buf.String(), "untracked") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestAddTwicePanics(t *testing.T) {
	h := New[int](64, nil)
	h.Add(1, core.NewRect(0, 0, 1, 1))

	defer func() {
		if recover() == nil {
			t.Error("second Add should panic")
		}
	}()
	h.Add(1, core.NewRect(0, 0, 1, 1))
}

func TestRemoveDeletesEmptyCells(t *testing.T) {
	h := New[int](10, nil)
	h.Add(1, core.NewRect(0, 0, 25, 5))
	if h.CellCount() != 3 {
		t.Fatalf("CellCount() = %d, expected 3", h.CellCount())
	}
	h.Remove(1)
	if h.CellCount() != 0 || h.Has(1) {
		t.Error("Remove should leave no empty cells behind")
	}

	h.Add(2, core.NewRect(0, 0, 1, 1))
	h.Clear()
	if h.Len() != 0 || h.CellCount() != 0 {
		t.Error("Clear should drop all entries")
	}
}
