package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-scene/internal/storage"
)

func boardStore(t *testing.T) (*storage.Store, *storage.Run) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	run, err := store.StartRun(stubID, "carol", 1)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if _, err := store.SaveScore(stubID, run.ID, 42); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}
	run.Steps, run.Frames, run.AvgFPS, run.EndReason = 321, 300, 58.5, storage.EndGameOver
	if err := store.FinishRun(run); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}
	return store, run
}

func renderBoard(t *testing.T, m tea.Model) string {
	t.Helper()
	b, ok := m.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected ScoreboardModel", m)
	}
	return b.View()
}

func TestScoreboardShowsRunOfEachScore(t *testing.T) {
	store, _ := boardStore(t)
	m := NewScoreboardModel(store, 120, 30)
	view := m.View()

	for _, want := range []string{"SCORES", "Stub", "42", "321", "58.5", storage.EndGameOver, "1 games  best 42"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardToggleRuns(t *testing.T) {
	store, run := boardStore(t)
	m := NewScoreboardModel(store, 120, 30)

	next, _ := m.Update(runeKey("r"))
	view := renderBoard(t, next)
	for _, want := range []string{"RUNS", run.ID[:8], "carol", "300"} {
		if !strings.Contains(view, want) {
			t.Errorf("runs View() missing %q:\n%s", want, view)
		}
	}

	next, _ = next.Update(runeKey("r"))
	if view := renderBoard(t, next); !strings.Contains(view, "SCORES") {
		t.Errorf("second toggle should return to scores:\n%s", view)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if view := m.View(); !strings.Contains(view, "Nothing recorded yet") {
		t.Errorf("View() = %q, expected the empty message", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	b := next.(ScoreboardModel)
	if !b.IsGoingBack() || b.IsQuitting() {
		t.Errorf("IsGoingBack() = %v, IsQuitting() = %v, expected true, false", b.IsGoingBack(), b.IsQuitting())
	}
	if b.View() != "" {
		t.Error("View() should be empty after leaving")
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "-"},
		{-time.Second, "-"},
		{59 * time.Second, "0:59"},
		{125*time.Second + 400*time.Millisecond, "2:05"},
	}
	for _, tc := range tests {
		t.Run(tc.in.String(), func(t *testing.T) {
			if got := clock(tc.in); got != tc.expected {
				t.Errorf("clock(%v) = %q, expected %q", tc.in, got, tc.expected)
			}
		})
	}
}
