package cmd

import (
	"fmt"
	"image"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/blurimg/internal/blurhash"
	"github.com/AnyUserName/blurimg/internal/config"
	"github.com/AnyUserName/blurimg/internal/pipeline"
	"github.com/AnyUserName/blurimg/internal/profile"
)

var encodeFlags struct {
	cx, cy int
	thumb  int
}

var encodeCmd = &cobra.Command{
	Use:   "encode <image>...",
	Short: "Print the blurhash of one or more image files",
	Long: `Decodes each image, downsizes it to a thumbnail and prints its
blurhash.  Without --cx/--cy the component grid follows the aspect ratio
of the image, as in the selected profile.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().IntVar(&encodeFlags.cx, "cx", 0, "horizontal components 1-9 (0 = profile)")
	encodeCmd.Flags().IntVar(&encodeFlags.cy, "cy", 0, "vertical components 1-9 (0 = profile)")
	encodeCmd.Flags().IntVar(&encodeFlags.thumb, "thumb", 0, "thumbnail size in px (0 = profile)")
	encodeCmd.Flags().StringVarP(&config.Config.Build.Profile, "profile", "p",
		config.Config.Build.Profile, profileUsage())
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(_ *cobra.Command, args []string) error {
	if err := checkComponents(encodeFlags.cx, encodeFlags.cy); err != nil {
		return err
	}
	prof := profile.Get(config.Config.Build.Profile)
	thumb := encodeFlags.thumb
	if thumb <= 0 {
		thumb = prof.ThumbSize
	}

	for _, path := range args {
		hash, err := encodeFile(path, prof, thumb)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(args) > 1 {
			fmt.Printf("%s\t%s\n", hash, path)
		} else {
			fmt.Println(hash)
		}
	}
	return nil
}

func encodeFile(path string, prof profile.Profile, thumb int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	cx, cy := encodeFlags.cx, encodeFlags.cy
	if cx == 0 {
		cx, cy = prof.Components(b.Dx(), b.Dy())
	}
	log.WithFields(log.Fields{
		"path":       path,
		"format":     format,
		"size":       fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"components": fmt.Sprintf("%dx%d", cx, cy),
	}).Debug("encode")

	return blurhash.EncodeImage(pipeline.Thumbnail(img, thumb), cx, cy)
}
