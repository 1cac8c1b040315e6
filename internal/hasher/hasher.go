// Package hasher fingerprints source files so unchanged inputs can be
// recognised between builds.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// DefaultLen is the fingerprint length stored in manifests: 16 hex chars,
// the full 64 bits of xxHash64.
const DefaultLen = 16

// Fingerprint returns the xxHash64 of data as hex, truncated to hexLen
// characters (0 or out of range means the full 16).
func Fingerprint(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// FingerprintReader is Fingerprint over a stream.
func FingerprintReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// FingerprintString hashes a string without copying it.
func FingerprintString(s string, hexLen int) string {
	return format(xxhash.Sum64String(s), hexLen)
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
