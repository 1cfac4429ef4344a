package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points $HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, p, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolate(t)

	eng, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine() error = %v", err)
	}
	if eng != DefaultEngine() {
		t.Errorf("embedded engine.yaml = %+v, expected %+v", eng, DefaultEngine())
	}

	bounce, err := LoadBounce("")
	if err != nil {
		t.Fatalf("LoadBounce() error = %v", err)
	}
	if bounce != DefaultBounceConfig() {
		t.Errorf("embedded bounce.yaml = %+v, expected %+v", bounce, DefaultBounceConfig())
	}

	plat, err := LoadPlatformer("")
	if err != nil {
		t.Fatalf("LoadPlatformer() error = %v", err)
	}
	if len(plat.Levels) != 2 || plat.Physics != DefaultPlatformerConfig().Physics {
		t.Errorf("embedded platformer.yaml: %d levels, physics %+v", len(plat.Levels), plat.Physics)
	}
}

func TestSearchOrder(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", "engine.yaml"), "update_speed: 2\n")

	cfg, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine() error = %v", err)
	}
	if cfg.UpdateSpeed != 2 {
		t.Errorf("local config: UpdateSpeed = %v, expected 2", cfg.UpdateSpeed)
	}

	writeFile(t, filepath.Join(home, AppDir, "configs", "engine.yaml"), "update_speed: 3\n")
	cfg, _ = LoadEngine("")
	if cfg.UpdateSpeed != 3 {
		t.Errorf("user config should win over local: UpdateSpeed = %v", cfg.UpdateSpeed)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "update_speed: 0.5\nuncapped: true\n")
	cfg, _ = LoadEngine(custom)
	if cfg.UpdateSpeed != 0.5 || !cfg.Uncapped {
		t.Errorf("custom config: %+v", cfg)
	}
	if cfg.MaxStepsPerFrame != 5 || cfg.CellSize != 64 {
		t.Errorf("partial file should keep defaults, got %+v", cfg)
	}
}

func TestBrokenUserConfigFallsThrough(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, AppDir, "configs", "bounce.yaml"), "balls: [oops\n")

	cfg, err := LoadBounce("")
	if err != nil {
		t.Fatalf("LoadBounce() error = %v", err)
	}
	if cfg != DefaultBounceConfig() {
		t.Error("unparsable user config should fall through to the embedded default")
	}
}

func TestCustomPathErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := LoadEngine(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("LoadEngine() with missing custom file should fail")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "steps_per_second: [\n")
	if _, err := LoadEngine(bad); err == nil || !strings.Contains(err.Error(), "cannot parse") {
		t.Errorf("LoadEngine() error = %v, expected parse error", err)
	}

	invalid := filepath.Join(work, "invalid.yaml")
	writeFile(t, invalid, "max_steps_per_frame: 0\n")
	if _, err := LoadEngine(invalid); err == nil || !strings.Contains(err.Error(), "max_steps_per_frame") {
		t.Errorf("LoadEngine() error = %v, expected validation error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Engine)
		field  string
	}{
		{"steps per second", func(e *Engine) { e.StepsPerSecond = 0 }, "steps_per_second"},
		{"negative speed", func(e *Engine) { e.UpdateSpeed = -1 }, "update_speed"},
		{"display fps", func(e *Engine) { e.DisplayFPS = 0 }, "display_fps"},
		{"cell size", func(e *Engine) { e.CellSize = -4 }, "cell_size"},
		{"step size", func(e *Engine) { e.StepSize = 0 }, "step_size"},
		{"camera range", func(e *Engine) { e.Camera.Far = 0.01 }, "near/far"},
	}

	if err := DefaultEngine().Validate(); err != nil {
		t.Fatalf("DefaultEngine().Validate() error = %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := DefaultEngine()
			tc.mutate(&e)
			err := e.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() error = %v, expected mention of %s", err, tc.field)
			}
		})
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultBounceConfig().Difficulty
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score    int
		level    float64
		interval int
	}{
		{0, 0, 600},
		{150, 0.5, 420},
		{300, 1, 240},
		{9000, 1, 240},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got != tc.level {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.level)
		}
		if got := d.Interval(600, 60, tc.score, 0); got != tc.interval {
			t.Errorf("Interval(600, score %d) = %d, expected %d", tc.score, got, tc.interval)
		}
	}
	if got := d.Speed(0.5, 300, 0); got != 1.0 {
		t.Errorf("Speed() at max = %v, expected 1.0", got)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if NewDifficultyManager(cfg).IsEnabled() {
		t.Error("fixed preset should disable progression")
	}
	ApplyPreset(&cfg, DifficultyHard)
	if got := NewDifficultyManager(cfg).Level(0, 0); got != 0.7 {
		t.Errorf("hard preset Level(0) = %v, expected 0.7", got)
	}
}
