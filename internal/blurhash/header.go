package blurhash

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/blurimg/internal/base83"
)

// ErrInvalidLength is returned when a hash is shorter than the fixed
// header or its length disagrees with its size flag.
var ErrInvalidLength = errors.New("blurhash: invalid hash length")

// Header holds the fixed fields of an encoded hash.
type Header struct {
	ComponentsX    int
	ComponentsY    int
	QuantizedMaxAC int
	// MaxAC is the AC scale the components were quantized against.
	MaxAC float64
	// DC is the average color as 8-bit sRGB.
	DC [3]uint8
}

// ParseHeader reads the size flag, max-AC digit and DC color of hash and
// checks that the hash length and symbols are consistent.  AC fields are
// only checked for validity, not decoded.
func ParseHeader(hash string) (Header, error) {
	var h Header
	if len(hash) < 6 {
		return h, fmt.Errorf("%w: %d < 6", ErrInvalidLength, len(hash))
	}
	if !base83.IsValid(hash) {
		return h, fmt.Errorf("%w in %q", base83.ErrInvalidDigit, hash)
	}

	size, rest, err := base83.DecodeNumber(hash, 1)
	if err != nil {
		return h, fmt.Errorf("size flag: %w", err)
	}
	if size >= MaxComponents*MaxComponents {
		return h, fmt.Errorf("%w: size flag %d", ErrInvalidDimensions, size)
	}
	h.ComponentsX = size%MaxComponents + 1
	h.ComponentsY = size/MaxComponents + 1
	if want := EncodedLen(h.ComponentsX, h.ComponentsY); len(hash) != want {
		return h, fmt.Errorf("%w: %d, want %d for %dx%d components",
			ErrInvalidLength, len(hash), want, h.ComponentsX, h.ComponentsY)
	}

	h.QuantizedMaxAC, rest, err = base83.DecodeNumber(rest, 1)
	if err != nil {
		return h, fmt.Errorf("max AC: %w", err)
	}
	h.MaxAC = float64(h.QuantizedMaxAC+1) / 166

	dc, _, err := base83.DecodeNumber(rest, 4)
	if err != nil {
		return h, fmt.Errorf("DC: %w", err)
	}
	if dc > 0xffffff {
		return h, fmt.Errorf("DC: %w: %d exceeds 24 bits", base83.ErrValueOutOfRange, dc)
	}
	h.DC = [3]uint8{uint8(dc >> 16), uint8(dc >> 8), uint8(dc)}
	return h, nil
}
