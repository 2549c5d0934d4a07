package compress

import "fmt"

// NoOpCompressor implements the `None` compression policy (spec.md
// §4.6): the body passes through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a no-operation codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged. The returned slice shares the input's
// backing array; callers must not mutate data afterward.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged, still enforcing maxSize so a
// None-policy body is bound by the same resource limit as a compressed
// one.
func (c NoOpCompressor) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) > maxSize {
		return nil, fmt.Errorf("compress: body size %d exceeds limit %d", len(data), maxSize)
	}

	return data, nil
}
