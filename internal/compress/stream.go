package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

// S2Codec is the Snappy-compatible S2 block format.
type S2Codec struct{}

func (S2Codec) Type() Type        { return S2 }
func (S2Codec) Extension() string { return ".s2" }

func (S2Codec) Compress(data []byte) ([]byte, error) {
	return s2.EncodeBetter(nil, data), nil
}

func (S2Codec) Decompress(data []byte) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}
	return out, nil
}

// GzipCodec writes standard gzip files readable by any gunzip.
type GzipCodec struct{}

func (GzipCodec) Type() Type        { return Gzip }
func (GzipCodec) Extension() string { return ".gz" }

func (GzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	return finish(&buf, w, data)
}

func (GzipCodec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// LZ4Codec uses the LZ4 frame format, which records its own content size
// so no length prefix is needed.
type LZ4Codec struct{}

func (LZ4Codec) Type() Type        { return LZ4 }
func (LZ4Codec) Extension() string { return ".lz4" }

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return nil, err
	}
	return finish(&buf, w, data)
}

func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	return out, nil
}

func finish(buf *bytes.Buffer, w io.WriteCloser, data []byte) ([]byte, error) {
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
