package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/blurimg/internal/compress"
)

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Entries:     make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries.  Reused
// and Failed are build counters and are left untouched.
func (m *Manifest) ComputeStats() {
	s := m.Stats
	s.TotalEntries = len(m.Entries)
	s.TotalInputBytes = 0
	s.TotalHashBytes = 0
	for _, e := range m.Entries {
		s.TotalInputBytes += e.Source.Size
		s.TotalHashBytes += len(e.BlurHash)
	}
	m.Stats = s
}

// PathIn returns the manifest path inside dir for the given codec.
func PathIn(dir string, codec compress.Codec) string {
	return filepath.Join(dir, FileName+codec.Extension())
}

// Write serializes the manifest as indented JSON, compressed with codec.
// Map keys are emitted sorted, so identical manifests produce identical
// files.
func Write(m *Manifest, path string, codec compress.Codec) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	packed, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("compress manifest (%s): %w", codec.Type(), err)
	}
	return os.WriteFile(path, packed, 0o644)
}

// WriteJSON writes an uncompressed manifest.
func WriteJSON(m *Manifest, path string) error {
	return Write(m, path, compress.NoOpCodec{})
}
