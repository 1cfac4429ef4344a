package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scene/internal/scene"
)

var flagInspectAll bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.msgpack>",
	Short: "Print a captured scene snapshot",
	Long: `Decode a scene snapshot written by Ctrl+S during play and print
its camera, layers, names and things.

Snapshots are saved next to screenshots in ~/.tui-scene/screenshots.

Examples:
  scene inspect ~/.tui-scene/screenshots/bounce_20250101_120000.000.msgpack
  scene inspect snap.msgpack --all`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectAll, "all", false, "List every thing, not just the first 50")
}

func runInspect(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := scene.DecodeSnapshot(f)
	if err != nil {
		return err
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	fmt.Println(title.Render(fmt.Sprintf("Snapshot %q", snap.Label)))
	fmt.Printf("  taken:   %s\n", snap.TakenAt.Local().Format("2006-01-02 15:04:05.000"))
	fmt.Printf("  view:    %dx%d\n", snap.ViewW, snap.ViewH)
	if len(snap.Camera) == 4 {
		fmt.Printf("  camera:  pos (%.2f, %.2f)  rotation %.2f  scale %.2f\n",
			snap.Camera[0], snap.Camera[1], snap.Camera[2], snap.Camera[3])
	}
	fmt.Printf("  layers:  %v\n", snap.Layers)
	fmt.Printf("  cells:   %d\n", snap.CellCount)
	fmt.Printf("  things:  %d\n", len(snap.Things))

	if len(snap.Names) > 0 {
		names := make([]string, 0, len(snap.Names))
		for name, id := range snap.Names {
			names = append(names, fmt.Sprintf("%s=#%d", name, id))
		}
		sort.Strings(names)
		fmt.Printf("  names:   %s\n", strings.Join(names, " "))
	}
	fmt.Println()

	things := snap.Things
	if !flagInspectAll && len(things) > 50 {
		things = things[:50]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Name", "Pos", "Vel", "Depth", "Flags", "Anim", "Timers")
	for _, th := range things {
		t.Row(
			fmt.Sprintf("#%d", th.ID),
			th.Name,
			vec(th.Pos),
			vec(th.Vel),
			fmt.Sprintf("%g", th.Depth),
			flags(th),
			anim(th),
			strings.Join(th.Timers, ","),
		)
	}
	fmt.Println(t.Render())
	if len(things) < len(snap.Things) {
		fmt.Printf("... %d more (use --all)\n", len(snap.Things)-len(things))
	}
	return nil
}

func vec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return strings.Join(parts, ",")
}

func flags(th scene.ThingState) string {
	var f []string
	if th.Solid {
		f = append(f, "solid")
	}
	if th.Persistent {
		f = append(f, "persistent")
	}
	if th.Paused {
		f = append(f, "paused")
	}
	return strings.Join(f, " ")
}

func anim(th scene.ThingState) string {
	if th.Animation == "" {
		return ""
	}
	return fmt.Sprintf("%s[%d]", th.Animation, th.Frame)
}
