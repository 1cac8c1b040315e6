package cmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/blurimg/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := manifest.Find(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Thumbnail:        %dpx\n", m.BuildInfo.ThumbSize)
		if m.BuildInfo.Encoding != "" {
			fmt.Printf("  Encoding:         %s\n", m.BuildInfo.Encoding)
		}
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total entries:    %d\n", s.TotalEntries)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Hash bytes:       %s\n", formatBytes(int64(s.TotalHashBytes)))
	if s.TotalEntries > 0 {
		fmt.Printf("  Avg hash length:  %.1f chars\n", float64(s.TotalHashBytes)/float64(s.TotalEntries))
	}
	if s.Reused > 0 || s.Failed > 0 {
		fmt.Printf("  Reused / failed:  %d / %d\n", s.Reused, s.Failed)
	}
	fmt.Println()

	// Per-format breakdown.
	formats := map[string]int{}
	for _, e := range m.Entries {
		formats[e.Source.Format]++
	}
	fmt.Println("  Format breakdown:")
	for _, f := range sortedKeys(formats) {
		fmt.Printf("    %-6s  %4d files\n", f, formats[f])
	}
	fmt.Println()

	// Component grid breakdown.
	grids := map[string]int{}
	alpha := 0
	for _, e := range m.Entries {
		grids[fmt.Sprintf("%dx%d", e.Components.X, e.Components.Y)]++
		if e.Source.HasAlpha {
			alpha++
		}
	}
	fmt.Println("  Components:")
	for _, g := range sortedKeys(grids) {
		fmt.Printf("    %-5s  %4d entries\n", g, grids[g])
	}
	fmt.Println()

	if alpha > 0 {
		// Placeholders carry no alpha channel.
		color.New(color.FgYellow).Printf("  %d source(s) have transparency that the placeholder drops\n\n", alpha)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
