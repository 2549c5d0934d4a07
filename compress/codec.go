// Package compress provides the compression codecs fog-pack's
// compression pipeline uses (spec.md §4.6): `None`, `General{algorithm,
// level}`, and `Dict{algorithm, level, dict}`. Only zstd is defined
// (spec.md §9); the package exists as its own layer, rather than being
// inlined into the document package, so the schema and document
// packages can share one Codec construction path for both document- and
// entry-key-scoped compression policies.
package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compressor compresses a canonical-encoded body. Compression operates
// on the body only, never on signatures (spec.md §4.6).
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a compressed body, refusing to produce more
// than maxSize bytes of output (spec.md §5's decompression bound).
type Decompressor interface {
	Decompress(data []byte, maxSize int) ([]byte, error)
}

// Codec combines both directions of one compression policy.
type Codec interface {
	Compressor
	Decompressor
}

// Algorithm identifies a compression algorithm. Zstd is the only one
// spec.md §9 defines.
type Algorithm byte

const (
	AlgorithmZstd Algorithm = 0
)

// Kind is the compression policy's shape: None, General, or Dict
// (spec.md §4.6).
type Kind byte

const (
	KindNone Kind = iota
	KindGeneral
	KindDict
)

// Policy is a schema's compression policy for one document or entry
// key: `None`, `General{algorithm, level}`, or `Dict{algorithm, level,
// dict}`.
type Policy struct {
	Kind      Kind
	Algorithm Algorithm
	Level     int
	Dict      []byte
}

// NewCodec builds the Codec a Policy describes.
func NewCodec(p Policy) (Codec, error) {
	switch p.Kind {
	case KindNone:
		return NewNoOpCompressor(), nil
	case KindGeneral:
		if p.Algorithm != AlgorithmZstd {
			return nil, fmt.Errorf("compress: unsupported algorithm %d", p.Algorithm)
		}

		return NewZstdCompressor(zstdLevel(p.Level)), nil
	case KindDict:
		if p.Algorithm != AlgorithmZstd {
			return nil, fmt.Errorf("compress: unsupported algorithm %d", p.Algorithm)
		}

		return NewZstdDictCompressor(zstdLevel(p.Level), p.Dict), nil
	default:
		return nil, fmt.Errorf("compress: unknown policy kind %d", p.Kind)
	}
}

// zstdLevel maps a schema-declared level (0 meaning "library default")
// onto zstd's EncoderLevel scale.
func zstdLevel(level int) zstd.EncoderLevel {
	if level <= 0 {
		return 0
	}

	return zstd.EncoderLevel(level)
}
