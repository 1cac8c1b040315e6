//go:build ignore

// gen_fixtures writes a small image tree for the blurimg smoke test:
// landscape, portrait and square sources in every decodable format the
// scanner picks up, plus a hidden directory that must be skipped.
//
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	for _, sub := range []string{"photos", "icons", ".thumbs"} {
		must(os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}

	write(filepath.Join(dir, "banner.jpg"), gradient(640, 240), encodeJPEG)
	write(filepath.Join(dir, "photos", "portrait.jpg"), rings(180, 320), encodeJPEG)
	write(filepath.Join(dir, "photos", "square.png"), rings(256, 256), encodePNG)
	write(filepath.Join(dir, "icons", "dot.png"), solid(1, 1, color.NRGBA{R: 12, G: 200, B: 99, A: 255}), encodePNG)
	write(filepath.Join(dir, "icons", "logo.png"), alphaGradient(96, 96), encodePNG)
	write(filepath.Join(dir, "icons", "stripes.gif"), stripes(120, 40), encodeGIF)
	write(filepath.Join(dir, ".thumbs", "ignored.png"), solid(8, 8, color.NRGBA{A: 255}), encodePNG)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 images (+1 hidden) in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// rings draws concentric bands, which puts energy into the higher
// components.
func rings(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			v := uint8(127 + 127*math.Cos(d/12))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: 255 - v, B: 90, A: 255})
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func stripes(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 30, G: 30, B: 160, A: 255}
			if (x/10)%2 == 0 {
				c = color.NRGBA{R: 250, G: 210, B: 40, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(f *os.File, img image.Image) error { return png.Encode(f, img) }

func encodeJPEG(f *os.File, img image.Image) error {
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
}

func encodeGIF(f *os.File, img image.Image) error {
	return gif.Encode(f, img, &gif.Options{NumColors: len(palette.Plan9)})
}

func write(path string, img image.Image, enc func(*os.File, image.Image) error) {
	f, err := os.Create(path)
	must(err)
	defer f.Close()
	must(enc(f, img))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
