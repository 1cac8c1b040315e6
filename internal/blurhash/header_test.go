package blurhash

import (
	"testing"

	"github.com/AnyUserName/blurimg/internal/base83"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	hdr, err := ParseHeader("L4TI:j|cfQ|c|cjtfQjtfQfQfQfQ")
	require.NoError(t, err)
	assert.Equal(t, 4, hdr.ComponentsX)
	assert.Equal(t, 3, hdr.ComponentsY)
	assert.Equal(t, 4, hdr.QuantizedMaxAC)
	assert.InDelta(t, 5.0/166, hdr.MaxAC, 1e-12)
	assert.Equal(t, [3]uint8{255, 0, 0}, hdr.DC)
}

func TestParseHeader_RoundTripsEncode(t *testing.T) {
	pix := gradientPixels(24, 16)
	for _, c := range [][2]int{{1, 1}, {2, 7}, {9, 1}, {9, 9}, {5, 4}} {
		hash, err := Encode(pix, 24, 16, c[0], c[1])
		require.NoError(t, err)
		hdr, err := ParseHeader(hash)
		require.NoError(t, err)
		assert.Equal(t, c[0], hdr.ComponentsX)
		assert.Equal(t, c[1], hdr.ComponentsY)
	}
}

func TestParseHeader_Errors(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want error
	}{
		{"short", "L4TI", ErrInvalidLength},
		{"truncated AC", "L4TI:j|cfQ", ErrInvalidLength},
		{"extra AC", "00Ew5T00", ErrInvalidLength},
		{"bad symbol", "00Ew 5", base83.ErrInvalidDigit},
		{"size flag out of range", "}0Ew5T", ErrInvalidDimensions},
		{"DC beyond 24 bits", "00~~~~", base83.ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.hash)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
