package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available demos",
	Long:  `Shows a list of all demos registered with the engine.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	demos := registry.List()

	if len(demos) == 0 {
		fmt.Println("No demos available.")
		return
	}

	fmt.Println("Available demos:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, d := range demos {
		maxIDLen = max(maxIDLen, len(d.ID))
		maxTitleLen = max(maxTitleLen, len(d.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, d := range demos {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, d.ID, maxTitleLen, d.Title, d.Description)
	}

	fmt.Println()
	fmt.Println("Run 'scene play <id>' to play a demo.")
}
