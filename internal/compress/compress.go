// Package compress wraps the codecs a manifest can be stored with.
package compress

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Type identifies a compression codec.
type Type string

// Supported codecs.
const (
	None Type = "none"
	Zstd Type = "zstd"
	S2   Type = "s2"
	Gzip Type = "gzip"
	LZ4  Type = "lz4"
)

// Codec compresses and decompresses whole payloads.  Implementations are
// safe for concurrent use.
type Codec interface {
	Type() Type
	// Extension returns the file suffix including the dot, or "" for None.
	Extension() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Type]Codec{
	None: NoOpCodec{},
	Zstd: ZstdCodec{},
	S2:   S2Codec{},
	Gzip: GzipCodec{},
	LZ4:  LZ4Codec{},
}

// Types lists the codec names in display order.
func Types() []Type {
	return []Type{None, Zstd, S2, Gzip, LZ4}
}

// Get returns the codec for t.
func Get(t Type) (Codec, error) {
	if c, ok := builtinCodecs[t]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unsupported compression type: %q", t)
}

// Parse resolves a user-supplied codec name.  The empty string means None.
func Parse(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return NoOpCodec{}, nil
	case "gz":
		name = string(Gzip)
	case "zst":
		name = string(Zstd)
	}
	return Get(Type(name))
}

// FromPath picks the codec matching a file extension, falling back to
// None for anything unrecognised.
func FromPath(path string) Codec {
	ext := strings.ToLower(filepath.Ext(path))
	for _, t := range Types() {
		c := builtinCodecs[t]
		if ext != "" && c.Extension() == ext {
			return c
		}
	}
	return NoOpCodec{}
}

// NoOpCodec stores data unchanged.
type NoOpCodec struct{}

func (NoOpCodec) Type() Type        { return None }
func (NoOpCodec) Extension() string { return "" }

func (NoOpCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
