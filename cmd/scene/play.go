package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/platform/tui"
	"github.com/vovakirdan/tui-scene/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <demo>",
	Short: "Play a demo",
	Long: `Start playing the specified demo.

Controls:
  Arrows/WASD - Move
  Space/Up    - Jump (platformer)
  P           - Pause
  Esc         - Back to the previous scene, or leave
  R           - Restart (after game over)
  Ctrl+S      - Capture screenshot and scene snapshot
  Q/Ctrl+C    - Quit

Difficulty options (bounce):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  scene play bounce
  scene play bounce --difficulty hard
  scene play platformer --config ./my-levels.yaml
  scene play platformer --speed 0.5 --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom demo config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	demoID := args[0]

	if !registry.Exists(demoID) {
		fmt.Fprintln(os.Stderr, "Run 'scene list' to see available demos.")
		return fmt.Errorf("unknown demo %q", demoID)
	}

	cfg, err := engineConfig()
	if err != nil {
		return err
	}
	logger, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	configureDemo(demoID)
	demo, err := registry.Create(demoID)
	if err != nil {
		return fmt.Errorf("creating demo: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	mgr := newSound(cfg, logger)
	defer mgr.Close()

	width, height := termSize()
	logger.Info("play", "demo", demoID, "seed", flagSeed, "size", fmt.Sprintf("%dx%d", width, height))

	if _, err := tui.Run(demo, tui.GameOptions{
		Engine: cfg,
		Store:  store,
		Logger: logger,
		Sound:  mgr,
		Seed:   flagSeed,
		Width:  width,
		Height: height,
	}); err != nil {
		return fmt.Errorf("running demo: %w", err)
	}
	return nil
}
