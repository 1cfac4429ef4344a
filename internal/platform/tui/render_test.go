package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-scene/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d width = %d, expected 6", i, w)
		}
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "xyz") {
		t.Errorf("RenderScreen() = %q, missing text", out)
	}
}

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name string
		st   Status
		want string
	}{
		{"running", Status{Title: "Bounce", Score: 42, FPS: 59.6, Speed: 1}, "score 42"},
		{"paused", Status{Title: "Bounce", Speed: 0, Paused: true}, "PAUSED"},
		{"fast", Status{Title: "Bounce", Speed: 2}, "x2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderStatus(tt.st, 120)
			if !strings.Contains(got, tt.want) {
				t.Errorf("RenderStatus() = %q, expected it to contain %q", got, tt.want)
			}
			if w := lipgloss.Width(got); w != 120 {
				t.Errorf("RenderStatus() width = %d, expected 120", w)
			}
		})
	}

	if w := lipgloss.Width(RenderStatus(Status{Title: "Bounce"}, 10)); w != 10 {
		t.Errorf("truncated status width = %d, expected 10", w)
	}
}
