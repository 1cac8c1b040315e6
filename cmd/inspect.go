package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/blurimg/internal/blurhash"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <blurhash>...",
	Short: "Decode and print the header fields of blurhash strings",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	failed := 0
	for _, hash := range args {
		hdr, err := blurhash.ParseHeader(hash)
		if err != nil {
			color.Red("  ✗ %s: %v", hash, err)
			failed++
			continue
		}
		printHeader(hash, hdr)
	}
	if failed > 0 {
		return fmt.Errorf("%d invalid hash(es)", failed)
	}
	return nil
}

func printHeader(hash string, hdr blurhash.Header) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Println()
	fmt.Printf("  %s\n", bold(hash))
	fmt.Printf("    Length:      %d\n", len(hash))
	fmt.Printf("    Components:  %dx%d\n", hdr.ComponentsX, hdr.ComponentsY)
	fmt.Printf("    Max AC:      %.4f (q=%d)\n", hdr.MaxAC, hdr.QuantizedMaxAC)
	fmt.Printf("    Avg color:   #%02x%02x%02x  rgb(%d, %d, %d)\n",
		hdr.DC[0], hdr.DC[1], hdr.DC[2], hdr.DC[0], hdr.DC[1], hdr.DC[2])
	fmt.Println()
}
