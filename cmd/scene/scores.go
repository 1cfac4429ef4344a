package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/registry"
	"github.com/vovakirdan/tui-scene/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <demo>",
	Short: "Show high scores for a demo",
	Long: `Display the top 10 high scores for the specified demo.

Examples:
  scene scores bounce
  scene scores platformer`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	demoID := args[0]

	if !registry.Exists(demoID) {
		fmt.Fprintln(os.Stderr, "Run 'scene list' to see available demos.")
		return fmt.Errorf("unknown demo %q", demoID)
	}

	demo, err := registry.Create(demoID)
	if err != nil {
		return fmt.Errorf("creating demo: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(demoID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", demo.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'scene play %s' to set the first high score!\n", demoID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Date", "Run")
	fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "----", "-----", "----", "---")

	for i, entry := range scores {
		run := entry.RunID
		if run == "" {
			run = "-"
		}
		fmt.Printf("  %-4d  %-10d  %-16s  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"), run)
	}

	fmt.Println()
	if highScore, err := store.HighScore(demoID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	return nil
}
