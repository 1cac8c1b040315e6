package blurhash

import (
	"image"
	"image/color"
	"math"
)

// ─── YCbCr → RGB lookup tables ───────────────────────────────
// Pre-computed at init.  4 tables × 256 × 4 bytes = 4 KB.
var (
	ycbcrCrR [256]int32 // R = Y + ycbcrCrR[Cr]
	ycbcrCbG [256]int32 // G = Y - ycbcrCbG[Cb] - ycbcrCrG[Cr]
	ycbcrCrG [256]int32
	ycbcrCbB [256]int32 // B = Y + ycbcrCbB[Cb]
)

func init() {
	for i := 0; i < 256; i++ {
		v := float64(i) - 128.0
		ycbcrCrR[i] = int32(math.Round(1.40200 * v))
		ycbcrCbG[i] = int32(math.Round(0.34414 * v))
		ycbcrCrG[i] = int32(math.Round(0.71414 * v))
		ycbcrCbB[i] = int32(math.Round(1.77200 * v))
	}
}

// EncodeImage converts img to a pixel buffer and encodes it.
func EncodeImage(img image.Image, xComp, yComp int) (string, error) {
	pix, w, h := Pixels(img)
	return Encode(pix, w, h, xComp, yComp)
}

// Pixels flattens img into a row-major RGB buffer, three bytes per pixel.
// Alpha is dropped; premultiplied sources are un-premultiplied first.
func Pixels(img image.Image) ([]byte, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	out := make([]byte, w*h*3)

	switch src := img.(type) {
	case *image.NRGBA:
		pix, stride := src.Pix, src.Stride
		bY := bounds.Min.Y - src.Rect.Min.Y
		bX4 := (bounds.Min.X - src.Rect.Min.X) * 4
		di := 0
		for y := 0; y < h; y++ {
			off := (bY+y)*stride + bX4
			for x := 0; x < w; x++ {
				out[di] = pix[off]
				out[di+1] = pix[off+1]
				out[di+2] = pix[off+2]
				off += 4
				di += 3
			}
		}
	case *image.RGBA:
		pix, stride := src.Pix, src.Stride
		bY := bounds.Min.Y - src.Rect.Min.Y
		bX4 := (bounds.Min.X - src.Rect.Min.X) * 4
		di := 0
		for y := 0; y < h; y++ {
			off := (bY+y)*stride + bX4
			for x := 0; x < w; x++ {
				a := uint32(pix[off+3])
				switch a {
				case 255:
					out[di] = pix[off]
					out[di+1] = pix[off+1]
					out[di+2] = pix[off+2]
				case 0:
					// fully transparent stays black
				default:
					out[di] = uint8(uint32(pix[off]) * 255 / a)
					out[di+1] = uint8(uint32(pix[off+1]) * 255 / a)
					out[di+2] = uint8(uint32(pix[off+2]) * 255 / a)
				}
				off += 4
				di += 3
			}
		}
	case *image.YCbCr:
		yData, cbData, crData := src.Y, src.Cb, src.Cr
		minX, minY := bounds.Min.X, bounds.Min.Y
		ryBase := minY - src.Rect.Min.Y
		rxBase := minX - src.Rect.Min.X
		di := 0
		for y := 0; y < h; y++ {
			yOff := (ryBase+y)*src.YStride + rxBase
			for x := 0; x < w; x++ {
				yv := int32(yData[yOff+x])
				ci := src.COffset(minX+x, minY+y)
				cr, cb := crData[ci], cbData[ci]
				out[di] = uint8(clampByte(yv + ycbcrCrR[cr]))
				out[di+1] = uint8(clampByte(yv - ycbcrCbG[cb] - ycbcrCrG[cr]))
				out[di+2] = uint8(clampByte(yv + ycbcrCbB[cb]))
				di += 3
			}
		}
	case *image.Gray:
		pix, stride := src.Pix, src.Stride
		bY := bounds.Min.Y - src.Rect.Min.Y
		bX := bounds.Min.X - src.Rect.Min.X
		di := 0
		for y := 0; y < h; y++ {
			off := (bY+y)*stride + bX
			for x := 0; x < w; x++ {
				v := pix[off]
				out[di], out[di+1], out[di+2] = v, v, v
				off++
				di += 3
			}
		}
	default:
		di := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				out[di], out[di+1], out[di+2] = c.R, c.G, c.B
				di += 3
			}
		}
	}
	return out, w, h
}

// HasAlpha reports whether any pixel has alpha < fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		return anyBelowOpaque(src.Pix)
	case *image.RGBA:
		return anyBelowOpaque(src.Pix)
	case *image.YCbCr, *image.Gray:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}

// anyBelowOpaque scans the alpha byte of packed 4-byte pixels.
func anyBelowOpaque(pix []byte) bool {
	for i := 3; i < len(pix); i += 4 {
		if pix[i] < 255 {
			return true
		}
	}
	return false
}

// clampByte clamps an int32 to [0, 255].
func clampByte(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
