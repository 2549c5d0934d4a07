package compress

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression for a document or entry
// body (spec.md §4.6): it operates on the canonical-encoded bytes,
// never on signatures, and is the only compression algorithm spec.md §9
// defines. A zero-dict ZstdCompressor behaves as the `General{algorithm,
// level}` policy; a non-empty dict makes it a `Dict{algorithm, level,
// dict}` policy. The dict is used as raw content, tagged in each frame
// with the CRC-32 of its bytes as the dictionary id, so a frame written
// with one dict does not decode under a different one.
type ZstdCompressor struct {
	level zstd.EncoderLevel
	dict  []byte

	encoderOnce sync.Once
	encoder     *zstd.Encoder
	encoderErr  error
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a General-policy zstd codec at the given
// level (zstd.SpeedDefault etc; 0 selects the library default).
func NewZstdCompressor(level zstd.EncoderLevel) *ZstdCompressor {
	return &ZstdCompressor{level: level}
}

// NewZstdDictCompressor creates a Dict-policy zstd codec. Checking dict's
// hash against a schema's declared dictionary hash (spec.md §4.6) is the
// schema package's responsibility, one level above this one.
func NewZstdDictCompressor(level zstd.EncoderLevel, dict []byte) *ZstdCompressor {
	return &ZstdCompressor{level: level, dict: dict}
}

func (c *ZstdCompressor) encoderOpts() []zstd.EOption {
	opts := []zstd.EOption{zstd.WithEncoderCRC(false)}
	if c.level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(c.level))
	}
	if len(c.dict) > 0 {
		opts = append(opts, zstd.WithEncoderDictRaw(crc32.ChecksumIEEE(c.dict), c.dict))
	}

	return opts
}

func (c *ZstdCompressor) decoderOpts() []zstd.DOption {
	opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if len(c.dict) > 0 {
		opts = append(opts, zstd.WithDecoderDictRaw(crc32.ChecksumIEEE(c.dict), c.dict))
	}

	return opts
}

// Compress compresses data, lazily building this compressor's encoder on
// first use (one warm encoder per ZstdCompressor instance, per
// klauspost/compress's guidance to reuse encoders rather than build one
// per call).
func (c *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	c.encoderOnce.Do(func() {
		c.encoder, c.encoderErr = zstd.NewWriter(nil, c.encoderOpts()...)
	})
	if c.encoderErr != nil {
		return nil, fmt.Errorf("compress: build zstd encoder: %w", c.encoderErr)
	}

	return c.encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses data, refusing to produce more than maxSize
// bytes (spec.md §5: decompressed size must never exceed the configured
// maximum document size). Unlike Compress, this does not reuse a warm
// decoder: it streams through zstd's Reader interface and stops pulling
// output as soon as maxSize is exceeded, so a crafted "decompression
// bomb" input is cut off after at most maxSize+1 bytes of work rather
// than being fully materialized first. A shared *zstd.Decoder's
// streaming Read/Reset methods aren't safe for concurrent use (unlike
// DecodeAll), so a fresh decoder is built per call.
func (c *ZstdCompressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, err := zstd.NewReader(bytes.NewReader(data), c.decoderOpts()...)
	if err != nil {
		return nil, fmt.Errorf("compress: build zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := io.ReadAll(io.LimitReader(dec, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("compress: zstd decompression failed: %w", err)
	}
	if len(out) > maxSize {
		return nil, fmt.Errorf("compress: decompressed size exceeds limit %d", maxSize)
	}

	return out, nil
}
