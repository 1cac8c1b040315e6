package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/blurimg/internal/compress"
	"github.com/AnyUserName/blurimg/internal/config"
	"github.com/AnyUserName/blurimg/internal/manifest"
	"github.com/AnyUserName/blurimg/internal/pipeline"
	"github.com/AnyUserName/blurimg/internal/profile"
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Compute placeholders for a directory of images and write a manifest",
	Long: `Scans the input directory for images (png, jpg, jpeg, gif, webp, bmp,
tiff), computes a blurhash for each one from a small thumbnail, and writes
blurimg.manifest.json (optionally compressed) to the output directory.

With --incremental, entries of an existing manifest are reused for files
whose content and encoding parameters did not change.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	b := &config.Config.Build
	buildCmd.Flags().StringVarP(&b.OutDir, "out", "o", b.OutDir, "output directory")
	buildCmd.Flags().StringVarP(&b.Profile, "profile", "p", b.Profile, profileUsage())
	buildCmd.Flags().IntVarP(&b.Workers, "workers", "w", b.Workers, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVar(&b.ComponentsX, "cx", b.ComponentsX, "horizontal components 1-9 (0 = profile)")
	buildCmd.Flags().IntVar(&b.ComponentsY, "cy", b.ComponentsY, "vertical components 1-9 (0 = profile)")
	buildCmd.Flags().IntVar(&b.ThumbSize, "thumb", b.ThumbSize, "thumbnail size in px (0 = profile)")
	buildCmd.Flags().StringVar(&b.Compression, "compress", b.Compression, "manifest compression: none, zstd, s2, gzip, lz4")
	buildCmd.Flags().BoolVar(&b.Incremental, "incremental", b.Incremental, "reuse entries of an existing manifest")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	b := config.Config.Build
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(b.OutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := checkComponents(b.ComponentsX, b.ComponentsY); err != nil {
		return err
	}
	codec, err := compress.Parse(b.Compression)
	if err != nil {
		return err
	}

	prof := profile.Get(b.Profile)
	log.WithFields(log.Fields{
		"input":   absInput,
		"output":  absOutput,
		"profile": prof.Name,
	}).Debug("build")

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var previous *manifest.Manifest
	if b.Incremental {
		previous = loadPrevious(absOutput)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:    absInput,
		Profile:     prof,
		Workers:     b.Workers,
		ComponentsX: b.ComponentsX,
		ComponentsY: b.ComponentsY,
		ThumbSize:   b.ThumbSize,
		Previous:    previous,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if codec.Type() != compress.None {
		m.BuildInfo.Encoding = string(codec.Type())
	}

	manifestPath := manifest.PathIn(absOutput, codec)
	if err := manifest.Write(m, manifestPath, codec); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, manifestPath, time.Since(start))
	return nil
}

func profileUsage() string {
	return "placeholder profile (" + strings.Join(profile.Names(), ", ") + ")"
}

// checkComponents accepts 0/0 (profile decides) or both counts in 1..9.
func checkComponents(cx, cy int) error {
	if cx == 0 && cy == 0 {
		return nil
	}
	if cx < 1 || cx > 9 || cy < 1 || cy > 9 {
		return fmt.Errorf("--cx and --cy must both be set to 1-9, got %d and %d", cx, cy)
	}
	return nil
}

// loadPrevious reads an existing manifest from the output directory.  Any
// problem just disables reuse.
func loadPrevious(dir string) *manifest.Manifest {
	path, err := manifest.Find(dir)
	if err != nil {
		log.WithError(err).Debug("no previous manifest")
		return nil
	}
	m, err := manifest.Read(path)
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable previous manifest")
		return nil
	}
	log.WithField("entries", len(m.Entries)).Debug("loaded previous manifest")
	return m
}

func printBuildReport(m *manifest.Manifest, manifestPath string, elapsed time.Duration) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println()
	fmt.Println(bold("  blurimg build complete"))
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Images:      %s\n", green(s.TotalEntries))
	if s.Reused > 0 {
		fmt.Printf("  Reused:      %d (unchanged)\n", s.Reused)
	}
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %s\n", yellow(s.Failed))
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Hash bytes:  %s\n", formatBytes(int64(s.TotalHashBytes)))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d  (thumbnail %dpx)\n", m.BuildInfo.Workers, m.BuildInfo.ThumbSize)
	}
	fmt.Println()

	// First few entries as a preview.
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n := len(keys)
	if n > 10 {
		n = 10
	}
	for _, k := range keys[:n] {
		e := m.Entries[k]
		fmt.Printf("    %-40s %dx%d  %s\n", truncKey(k, 40), e.Components.X, e.Components.Y, e.BlurHash)
	}
	if len(keys) > n {
		fmt.Printf("    ... and %d more\n", len(keys)-n)
	}
	fmt.Println()

	if info, err := os.Stat(manifestPath); err == nil {
		fmt.Printf("  Manifest:    %s (%s)\n", filepath.Base(manifestPath), formatBytes(info.Size()))
	}
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
