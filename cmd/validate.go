package cmd

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/blurimg/internal/blurhash"
	"github.com/AnyUserName/blurimg/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Validate a blurimg manifest and every hash it contains",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path, err := manifest.Find(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	errs := validateManifest(m)
	if len(errs) == 0 {
		color.Green("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d entries, all hashes decode\n", m.Stats.TotalEntries)
		return nil
	}

	color.Red("  ✗ Manifest has %d error(s):", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	hashBytes := 0
	var inputBytes int64
	for key, e := range m.Entries {
		hashBytes += len(e.BlurHash)
		inputBytes += e.Source.Size

		if e.Source.Width <= 0 || e.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid source dimensions %dx%d",
				key, e.Source.Width, e.Source.Height))
		} else {
			want := float64(e.Source.Width) / float64(e.Source.Height)
			if math.Abs(want-e.AspectRatio) > 1e-3 {
				errs = append(errs, fmt.Sprintf("entry %q: aspect ratio %.4f, expected %.4f",
					key, e.AspectRatio, want))
			}
		}
		if e.Source.Hash == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing source hash", key))
		}

		hdr, err := blurhash.ParseHeader(e.BlurHash)
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry %q: bad blurhash: %v", key, err))
			continue
		}
		if hdr.ComponentsX != e.Components.X || hdr.ComponentsY != e.Components.Y {
			errs = append(errs, fmt.Sprintf("entry %q: components %dx%d, hash encodes %dx%d",
				key, e.Components.X, e.Components.Y, hdr.ComponentsX, hdr.ComponentsY))
		}
		if e.AvgColor != nil && *e.AvgColor != hdr.DC {
			errs = append(errs, fmt.Sprintf("entry %q: avg_color %v, hash DC %v", key, *e.AvgColor, hdr.DC))
		}
	}

	// Verify stats consistency.
	if m.Stats.TotalEntries != len(m.Entries) {
		errs = append(errs, fmt.Sprintf("stats.total_entries mismatch: %d != %d", m.Stats.TotalEntries, len(m.Entries)))
	}
	if m.Stats.TotalHashBytes != hashBytes {
		errs = append(errs, fmt.Sprintf("stats.total_hash_bytes mismatch: %d != %d", m.Stats.TotalHashBytes, hashBytes))
	}
	if m.Stats.TotalInputBytes != inputBytes {
		errs = append(errs, fmt.Sprintf("stats.total_input_bytes mismatch: %d != %d", m.Stats.TotalInputBytes, inputBytes))
	}

	return errs
}
