package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME for configs, logs and data.
const AppDir = ".tui-scene"

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.tui-scene/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func LoadEngine(customPath string) (Engine, error) {
	cfg, err := load("engine.yaml", customPath, defaultEngineYAML, DefaultEngine)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadBounce loads Bounce demo configuration.
func LoadBounce(customPath string) (BounceConfig, error) {
	return load("bounce.yaml", customPath, defaultBounceYAML, DefaultBounceConfig)
}

// LoadPlatformer loads Platformer demo configuration.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	return load("platformer.yaml", customPath, defaultPlatformerYAML, DefaultPlatformerConfig)
}

// load applies the search order for one file. Each layer decodes on top of
// the hardcoded defaults, so a partial file keeps the remaining values.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Custom path is explicit, so failures are reported
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		next := fallback()
		if err := yaml.Unmarshal(data, &next); err == nil {
			return next, nil
		}
	}

	next := fallback()
	if err := yaml.Unmarshal(embedded, &next); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	return next, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}
