package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/blurimg/internal/compress"
)

// Read loads a manifest, decompressing according to the file extension.
// Unknown JSON fields are ignored.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	codec := compress.FromPath(path)
	data, err = codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", filepath.Base(path), err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if m.Entries == nil {
		m.Entries = make(map[string]Entry)
	}
	return &m, nil
}

// Find locates the manifest inside dir, trying the plain name first and
// then each compressed variant.  A path to a file is returned unchanged.
func Find(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, t := range compress.Types() {
		codec, _ := compress.Get(t)
		candidate := PathIn(path, codec)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no %s found in %s", FileName, path)
}
