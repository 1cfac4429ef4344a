package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [demo]",
	Short: "Show recent runs",
	Long: `List recent play sessions with their step and frame counters.

Examples:
  scene runs
  scene runs bounce --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) error {
	var demoID string
	if len(args) == 1 {
		demoID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(demoID, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Run", "Demo", "Session", "Started", "Duration", "Steps", "Frames", "FPS", "End")
	for _, r := range runs {
		t.Row(
			r.ID[:min(8, len(r.ID))],
			r.DemoID,
			r.Session,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			duration(r),
			fmt.Sprint(r.Steps),
			fmt.Sprint(r.Frames),
			fmt.Sprintf("%.1f", r.AvgFPS),
			r.Status(),
		)
	}
	fmt.Fprintln(os.Stdout, t.Render())
	return nil
}

func duration(r storage.Run) string {
	if r.EndedAt.IsZero() {
		return "-"
	}
	return r.Duration().Round(time.Second).String()
}
