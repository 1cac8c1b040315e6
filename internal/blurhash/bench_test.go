package blurhash

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
)

// ─── test image generators ───────────────────────────────────

func makeNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 251) % 256),
				G: uint8((y * 179) % 256),
				B: uint8(((x + y) * 113) % 256),
				A: 255,
			})
		}
	}
	return img
}

func makeRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x * 251) % 256),
				G: uint8((y * 179) % 256),
				B: uint8(((x + y) * 113) % 256),
				A: 255,
			})
		}
	}
	return img
}

func makeYCbCr(w, h int) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Y[y*img.YStride+x] = uint8((x*3 + y*7) % 256)
		}
	}
	cw := (w + 1) / 2
	ch := (h + 1) / 2
	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			ci := cy*img.CStride + cx
			img.Cb[ci] = uint8((cx*11 + cy*13) % 256)
			img.Cr[ci] = uint8((cx*17 + cy*19) % 256)
		}
	}
	return img
}

func makeGray(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x*7 + y*11) % 256)})
		}
	}
	return img
}

// ─── benchmarks: input-size scaling ──────────────────────────

func benchmarkEncode(b *testing.B, img image.Image, cx, cy int) {
	pix, w, h := Pixels(img)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(pix, w, h, cx, cy); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncode_32(b *testing.B)  { benchmarkEncode(b, makeNRGBA(32, 32), 4, 3) }
func BenchmarkEncode_64(b *testing.B)  { benchmarkEncode(b, makeNRGBA(64, 64), 4, 3) }
func BenchmarkEncode_128(b *testing.B) { benchmarkEncode(b, makeNRGBA(128, 128), 4, 3) }
func BenchmarkEncode_256(b *testing.B) { benchmarkEncode(b, makeNRGBA(256, 256), 4, 3) }

func BenchmarkEncode_256_9x9(b *testing.B) { benchmarkEncode(b, makeNRGBA(256, 256), 9, 9) }

// ─── benchmarks: pixel extraction ────────────────────────────

func benchmarkPixels(b *testing.B, img image.Image) {
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = Pixels(img)
	}
}

func BenchmarkPixels_NRGBA_512(b *testing.B) { benchmarkPixels(b, makeNRGBA(512, 512)) }
func BenchmarkPixels_RGBA_512(b *testing.B)  { benchmarkPixels(b, makeRGBA(512, 512)) }
func BenchmarkPixels_YCbCr_512(b *testing.B) { benchmarkPixels(b, makeYCbCr(512, 512)) }
func BenchmarkPixels_Gray_512(b *testing.B)  { benchmarkPixels(b, makeGray(512, 512)) }

// ─── determinism: concurrent ─────────────────────────────────

func TestDeterminism_Concurrent(t *testing.T) {
	img := makeNRGBA(128, 96)
	reference, err := EncodeImage(img, 6, 5)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 16
	const iterations = 10
	var wg sync.WaitGroup
	errCh := make(chan string, workers*iterations)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				result, err := EncodeImage(img, 6, 5)
				if err != nil || result != reference {
					errCh <- "mismatch"
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	mismatches := 0
	for range errCh {
		mismatches++
	}
	if mismatches > 0 {
		t.Fatalf("determinism failed: %d/%d mismatches across %d workers",
			mismatches, workers*iterations, workers)
	}
	t.Logf("OK: %d workers * %d iterations = %d hashes, all identical (%s)",
		workers, iterations, workers*iterations, reference)
}

// ─── determinism: image types produce identical hash ─────────

func TestDeterminism_ImageTypes(t *testing.T) {
	w, h := 64, 48
	nrgba := makeNRGBA(w, h)
	rgba := makeRGBA(w, h)

	h1, err := EncodeImage(nrgba, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := EncodeImage(rgba, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("NRGBA and RGBA produce different hashes for same opaque content\n  NRGBA: %s\n  RGBA:  %s", h1, h2)
	}
}

// ─── correctness: no panic on odd/edge sizes ─────────────────

func TestNoPanic_OddSizes(t *testing.T) {
	sizes := [][2]int{
		{1, 1}, {1, 2}, {2, 1}, {3, 3},
		{7, 13}, {13, 7}, {99, 1}, {1, 99},
		{101, 101}, {256, 1}, {1, 256},
		{0, 0}, {0, 100}, {100, 0},
	}

	for _, s := range sizes {
		w, h := s[0], s[1]
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("panic at %dx%d: %v", w, h, r)
				}
			}()
			img := image.NewNRGBA(image.Rect(0, 0, w, h))
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					img.SetNRGBA(x, y, color.NRGBA{
						R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255,
					})
				}
			}
			hash, err := EncodeImage(img, 4, 3)
			if w > 0 && h > 0 {
				if err != nil || len(hash) != EncodedLen(4, 3) {
					t.Errorf("%dx%d: got %q, %v", w, h, hash, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("%dx%d: expected ErrInvalidDimensions, got %v", w, h, err)
			}
		}()
	}
}
