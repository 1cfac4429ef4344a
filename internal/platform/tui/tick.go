// Package tui provides the Bubble Tea integration for the scene engine.
// It feeds terminal input into an engine, drives it from a display tick
// and paints the engine's screen buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is one display refresh callback.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after a frame
// interval. Each handled tick re-arms the next.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
