package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/blurimg/internal/blurhash"
	"github.com/AnyUserName/blurimg/internal/hasher"
	"github.com/AnyUserName/blurimg/internal/manifest"
)

// maxPixels bounds decoded image size (30 Mpx).
const maxPixels = 30_000_000

// processResult holds the result of processing a single source image.
type processResult struct {
	key    string
	entry  manifest.Entry
	err    error
	reused bool // carried over from the previous manifest
}

// processImage handles a single source image: read, fingerprint, decode,
// thumbnail, blurhash.
func processImage(src Source, cfg Config) processResult {
	result := processResult{key: src.Key}
	logger := log.WithField("key", src.Key)

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}
	fingerprint := hasher.Fingerprint(data, hasher.DefaultLen)

	if prev, ok := reusable(cfg, src.Key, fingerprint); ok {
		logger.Debug("unchanged, reusing previous entry")
		result.entry = prev
		result.reused = true
		return result
	}

	conf, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}
	if conf.Width*conf.Height > maxPixels {
		result.err = fmt.Errorf("decode %s: image is too big (%dx%d)", src.RelPath, conf.Width, conf.Height)
		return result
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW <= 0 || origH <= 0 {
		result.err = fmt.Errorf("decode %s: empty image", src.RelPath)
		return result
	}

	cx, cy := cfg.components(origW, origH)
	thumb := Thumbnail(img, cfg.thumbSize())
	hash, err := blurhash.EncodeImage(thumb, cx, cy)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}

	hdr, err := blurhash.ParseHeader(hash)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}
	avg := hdr.DC

	result.entry = manifest.Entry{
		Source: manifest.SourceInfo{
			Width:    origW,
			Height:   origH,
			Format:   src.Format,
			Size:     src.Size,
			Hash:     fingerprint,
			HasAlpha: blurhash.HasAlpha(img),
		},
		BlurHash:    hash,
		Components:  manifest.Components{X: cx, Y: cy},
		AspectRatio: float64(origW) / float64(origH),
		AvgColor:    &avg,
	}
	logger.WithField("blurhash", hash).Debug("encoded")
	return result
}

// Thumbnail shrinks img so its longest side is at most size.  Smaller
// images are used as is.  Box filtering averages every source pixel,
// which is what a low-frequency summary wants.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() <= size && b.Dy() <= size) {
		return img
	}
	return imaging.Fit(img, size, size, imaging.Box)
}

// reusable returns the previous manifest entry for key when the source
// fingerprint and the encoding parameters are unchanged.
func reusable(cfg Config, key, fingerprint string) (manifest.Entry, bool) {
	if cfg.Previous == nil {
		return manifest.Entry{}, false
	}
	prev, ok := cfg.Previous.Entries[key]
	if !ok || prev.Source.Hash != fingerprint {
		return manifest.Entry{}, false
	}
	if cfg.Previous.BuildInfo == nil || cfg.Previous.BuildInfo.ThumbSize != cfg.thumbSize() {
		return manifest.Entry{}, false
	}
	cx, cy := cfg.components(prev.Source.Width, prev.Source.Height)
	if prev.Components.X != cx || prev.Components.Y != cy {
		return manifest.Entry{}, false
	}
	if _, err := blurhash.ParseHeader(prev.BlurHash); err != nil {
		return manifest.Entry{}, false
	}
	return prev, true
}
