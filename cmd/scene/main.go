// scene runs fixed-timestep scene-graph demos in the terminal.
//
// Usage:
//
//	scene list               - List available demos
//	scene play <demo>        - Play a demo
//	scene menu               - Start menu to pick demos interactively
//	scene serve              - Start SSH server for remote play
//	scene scores <demo>      - Show high scores for a demo
//	scene runs [demo]        - Show recent runs
//	scene inspect <file>     - Print a captured scene snapshot
//	scene config dump <name> - Print a default config file
//
// Global flags:
//
//	--fps <rate>        - Display refresh rate (default: from engine config)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.tui-scene/scores.db)
//	--engine-config     - Path to a custom engine config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/config"

	// Import demos to register them
	_ "github.com/vovakirdan/tui-scene/internal/demos/bounce"
	_ "github.com/vovakirdan/tui-scene/internal/demos/platformer"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagEngineConfig string
	flagSpeed        float64
	flagUncapped     bool
	flagMute         bool
	flagLogLevel     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scene",
	Short: "TUI Scene - fixed-timestep scene demos in your terminal",
	Long: `TUI Scene runs small games built on a scene-graph engine with a
fixed-timestep scheduler, spatial-hash collision and sprite animation.

Available commands:
  list     - Show all available demos
  play     - Play a specific demo directly
  menu     - Interactive demo picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  runs     - View recent runs
  inspect  - Print a captured scene snapshot
  config   - Print default configuration files

Examples:
  scene list
  scene play bounce
  scene play platformer --speed 0.5
  scene menu
  scene serve --ssh :2222
  scene scores bounce`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Display refresh rate (0 = from engine config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/"+config.AppDir+"/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagEngineConfig, "engine-config", "", "Path to custom engine config YAML")
	rootCmd.PersistentFlags().Float64Var(&flagSpeed, "speed", 0, "Simulation speed multiplier (0 = from engine config)")
	rootCmd.PersistentFlags().BoolVar(&flagUncapped, "uncapped", false, "Render on every display refresh")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable audio output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
}
