package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/platform/tui"
	"github.com/vovakirdan/tui-scene/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a demo picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a demo.
Press Esc in a demo to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select demo
  Tab          - High scores
  Q            - Quit

Examples:
  scene menu
  scene menu --fps 30
  scene menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := engineConfig()
	if err != nil {
		return err
	}
	logger, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	mgr := newSound(cfg, logger)
	defer mgr.Close()

	width, height := termSize()

	for {
		result, err := tui.RunMenu(width, height)
		if err != nil {
			return err
		}
		width, height = result.Width, result.Height

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		if result.DemoID == "" {
			return nil
		}

		configureDemo(result.DemoID)
		demo, err := registry.Create(result.DemoID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
			continue
		}

		back, err := tui.Run(demo, tui.GameOptions{
			Engine: cfg,
			Store:  store,
			Logger: logger,
			Sound:  mgr,
			Seed:   flagSeed,
			Width:  width,
			Height: height,
		})
		if err != nil {
			logger.Error("demo failed", "demo", result.DemoID, "err", err)
			fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
			continue
		}
		if !back {
			return nil
		}
	}
}
