// Package blurhash encodes raw RGB pixel buffers into blurhash strings:
// compact base-83 placeholders carrying the average color and a handful of
// low-frequency cosine components of an image.
//
// Layout of an encoded hash:
//
//	size flag (1) | max AC (1) | DC (4) | AC (2 per non-DC component)
//
// Encoding is a single bounded CPU pass with no I/O.  Identical input
// always yields an identical string.
package blurhash

import (
	"errors"
	"fmt"
	"math"

	"github.com/AnyUserName/blurimg/internal/base83"
)

// MaxComponents is the upper bound for components on either axis.  The
// size flag packs both counts into one base-83 digit.
const MaxComponents = 9

var (
	// ErrInvalidDimensions is returned for a zero-sized image or a
	// component count outside 1..9.
	ErrInvalidDimensions = errors.New("blurhash: invalid dimensions")

	// ErrBufferLengthMismatch is returned when the pixel buffer is not
	// exactly width*height*3 bytes.
	ErrBufferLengthMismatch = errors.New("blurhash: pixel buffer length mismatch")
)

// EncodedLen returns the length of a hash with the given component counts.
func EncodedLen(xComp, yComp int) int {
	return 6 + 2*(xComp*yComp-1)
}

// Encode computes the blurhash of an RGB pixel buffer.
//
// pixels holds width*height pixels, row-major, three bytes (R, G, B) per
// pixel.  xComp and yComp select how many cosine components are kept
// horizontally and vertically (1..9 each).
func Encode(pixels []byte, width, height, xComp, yComp int) (string, error) {
	dst, err := Append(make([]byte, 0, EncodedLen(max(xComp, 1), max(yComp, 1))), pixels, width, height, xComp, yComp)
	if err != nil {
		return "", err
	}
	return string(dst), nil
}

// Append is Encode appending the hash to dst.  On error dst is returned
// unchanged.
func Append(dst []byte, pixels []byte, width, height, xComp, yComp int) ([]byte, error) {
	if err := validate(pixels, width, height, xComp, yComp); err != nil {
		return dst, err
	}
	comps := computeComponents(pixels, width, height, xComp, yComp)
	out, err := assemble(dst, comps, xComp, yComp)
	if err != nil {
		return dst, err
	}
	return out, nil
}

func validate(pixels []byte, width, height, xComp, yComp int) error {
	if xComp < 1 || xComp > MaxComponents || yComp < 1 || yComp > MaxComponents {
		return fmt.Errorf("%w: components %dx%d outside 1..%d", ErrInvalidDimensions, xComp, yComp, MaxComponents)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: image %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/3/height {
		return fmt.Errorf("%w: image %dx%d does not fit in memory", ErrBufferLengthMismatch, width, height)
	}
	if want := width * height * 3; len(pixels) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrBufferLengthMismatch, len(pixels), want, width, height)
	}
	return nil
}

// ─── hash assembly ─────────────────────────────────────────────

// assemble writes size flag, max-AC digit, DC and AC fields.  comps must be
// ordered as returned by Components.
func assemble(dst []byte, comps []Component, xComp, yComp int) ([]byte, error) {
	var err error
	if dst, err = base83.AppendNumber(dst, (xComp-1)+(yComp-1)*MaxComponents, 1); err != nil {
		return nil, fmt.Errorf("size flag: %w", err)
	}

	ac := comps[1:]
	scale := 1.0
	quantMax := 0
	if len(ac) > 0 {
		maxAC := -2.0
		for _, c := range ac {
			maxAC = math.Max(maxAC, math.Max(c.R, math.Max(c.G, c.B)))
		}
		quantMax = int(math.Floor(clamp(maxAC*166-0.5, 0, 82)))
		scale = float64(quantMax+1) / 166
	}
	if dst, err = base83.AppendNumber(dst, quantMax, 1); err != nil {
		return nil, fmt.Errorf("max AC: %w", err)
	}

	if dst, err = base83.AppendNumber(dst, encodeDC(comps[0]), 4); err != nil {
		return nil, fmt.Errorf("DC: %w", err)
	}

	for i, c := range ac {
		if dst, err = base83.AppendNumber(dst, encodeAC(c, scale), 2); err != nil {
			return nil, fmt.Errorf("AC %d: %w", i+1, err)
		}
	}
	return dst, nil
}

// encodeDC packs the average color as 24-bit sRGB.
func encodeDC(c Component) int {
	r := int(linearToSRGB(c.R))
	g := int(linearToSRGB(c.G))
	b := int(linearToSRGB(c.B))
	return r<<16 | g<<8 | b
}

// encodeAC quantizes each channel to 0..18 against scale and packs the
// three values in base 19.
func encodeAC(c Component, scale float64) int {
	return quantizeAC(c.R, scale)*19*19 + quantizeAC(c.G, scale)*19 + quantizeAC(c.B, scale)
}

// quantizeAC maps v in [-scale, +scale] onto 0..18 on a square-root curve;
// values beyond the range clamp to the ends.
func quantizeAC(v, scale float64) int {
	return int(math.Floor(clamp(signPow(v/scale, 0.5)*9+9.5, 0, 18)))
}
