package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/scene"
)

// CaptureDir returns the default screenshot directory.
func CaptureDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, config.AppDir, "screenshots"), nil
}

// capture writes the last frame as text and, when a scene is live, its
// state as a msgpack snapshot next to it. Returns the path without extension.
func (m *GameModel) capture(now time.Time) (string, error) {
	dir := m.captures
	if dir == "" {
		var err error
		if dir, err = CaptureDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create capture directory: %w", err)
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.demo.ID(), now.Format("20060102_150405.000")))
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}

	s := m.engine.Scene()
	if s == nil {
		return base, nil
	}
	f, err := os.OpenFile(base+".msgpack", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("cannot write snapshot: %w", err)
	}
	defer f.Close()
	if err := scene.EncodeSnapshot(f, s.Snapshot(m.demo.ID())); err != nil {
		return "", err
	}
	return base, nil
}
