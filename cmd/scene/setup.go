package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/demos/bounce"
	"github.com/vovakirdan/tui-scene/internal/demos/platformer"
	"github.com/vovakirdan/tui-scene/internal/sound"
	"github.com/vovakirdan/tui-scene/internal/storage"
)

// engineConfig loads the engine config and applies command-line overrides.
func engineConfig() (config.Engine, error) {
	cfg, err := config.LoadEngine(flagEngineConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.DisplayFPS = flagFPS
	}
	if flagSpeed > 0 {
		cfg.UpdateSpeed = flagSpeed
	}
	if flagUncapped {
		cfg.Uncapped = true
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid engine config: %w", err)
	}
	return cfg, nil
}

// openLogger logs to ~/.tui-scene/scene.log; the terminal belongs to the UI.
func openLogger(cfg config.Engine) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = log.InfoLevel
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, config.AppDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "scene.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "scene",
		Level:           level,
	})
	return logger, f, nil
}

// newSound creates the process-wide sound manager and opens the speaker
// when audio is enabled.
func newSound(cfg config.Engine, logger *log.Logger) *sound.Manager {
	mgr := sound.NewManager(logger)
	mgr.SetVolume(cfg.Audio.Volume)
	if !cfg.Audio.Enabled {
		return mgr
	}
	if err := mgr.InitSpeaker(); err != nil {
		logger.Warn("audio disabled", "err", err)
	}
	return mgr
}

// openStore opens the scores database. Demos still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// configureDemo passes demo-specific flags before the demo is created.
func configureDemo(id string) {
	switch id {
	case "bounce":
		bounce.SetConfigPath(flagConfig)
		bounce.SetDifficultyPreset(flagDifficulty)
	case "platformer":
		platformer.SetConfigPath(flagConfig)
	}
}

func termSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
