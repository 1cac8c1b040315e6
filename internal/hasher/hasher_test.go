package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	assert.Equal(t, "ef46db3751d8e999", Fingerprint(nil, 0))
	assert.Equal(t, "ef46db37", Fingerprint(nil, 8))
	assert.Len(t, Fingerprint([]byte("abc"), DefaultLen), 16)
	assert.Len(t, Fingerprint([]byte("abc"), 99), 16)
	assert.NotEqual(t, Fingerprint([]byte("abc"), 0), Fingerprint([]byte("abd"), 0))
}

func TestFingerprintReaderMatches(t *testing.T) {
	data := strings.Repeat("blurhash placeholder ", 1000)
	got, err := FingerprintReader(strings.NewReader(data), DefaultLen)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint([]byte(data), DefaultLen), got)
	assert.Equal(t, got, FingerprintString(data, DefaultLen))
}
