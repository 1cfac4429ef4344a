package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/config"
)

var configNames = []string{"engine", "bounce", "platformer"}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration files",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump <engine|bounce|platformer>",
	Short: "Print a default config file",
	Long: `Print the built-in default YAML for a config.

User overrides are read from ~/.tui-scene/configs/<name>.yaml, then
./configs/<name>.yaml, before falling back to the defaults.

Examples:
  scene config dump engine
  scene config dump bounce > ~/.tui-scene/configs/bounce.yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: configNames,
	RunE: func(_ *cobra.Command, args []string) error {
		data := config.GetDefaultYAML(args[0])
		if data == nil {
			return fmt.Errorf("unknown config %q (have %v)", args[0], configNames)
		}
		_, err := os.Stdout.Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where user config files are read from",
	RunE: func(_ *cobra.Command, _ []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		for _, name := range configNames {
			fmt.Println(filepath.Join(home, config.AppDir, "configs", name+".yaml"))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configPathCmd)
}
