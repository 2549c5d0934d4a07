package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpRoundTrip(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte("not actually compressed")

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)

	out, err := codec.Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestNoOpDecompressEnforcesMaxSize(t *testing.T) {
	codec := NewNoOpCompressor()
	_, err := codec.Decompress([]byte("0123456789"), 5)
	require.Error(t, err)
}

func TestZstdRoundTrip(t *testing.T) {
	codec := NewZstdCompressor(0)
	data := bytes.Repeat([]byte("fog-pack document body "), 64)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	out, err := codec.Decompress(compressed, len(data)+1)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestZstdDecompressEnforcesMaxSize(t *testing.T) {
	codec := NewZstdCompressor(0)
	data := bytes.Repeat([]byte("x"), 4096)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	_, err = codec.Decompress(compressed, len(data)-1)
	require.Error(t, err)
}

func TestZstdDictRoundTrip(t *testing.T) {
	dict := []byte(strings.Repeat("shared-schema-boilerplate-", 8))
	codec := NewZstdDictCompressor(0, dict)

	data := []byte("shared-schema-boilerplate-specific-tail")
	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	out, err := codec.Decompress(compressed, len(data)+1)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestZstdDictMismatchFailsToDecode(t *testing.T) {
	dictA := []byte(strings.Repeat("A", 512))
	dictB := []byte(strings.Repeat("B", 512))

	encoder := NewZstdDictCompressor(0, dictA)
	compressed, err := encoder.Compress([]byte("payload"))
	require.NoError(t, err)

	decoder := NewZstdDictCompressor(0, dictB)
	_, err = decoder.Decompress(compressed, 1024)
	require.Error(t, err)
}

func TestNewCodecDispatchesByPolicyKind(t *testing.T) {
	none, err := NewCodec(Policy{Kind: KindNone})
	require.NoError(t, err)
	require.IsType(t, NoOpCompressor{}, none)

	general, err := NewCodec(Policy{Kind: KindGeneral, Algorithm: AlgorithmZstd})
	require.NoError(t, err)
	require.IsType(t, &ZstdCompressor{}, general)

	dict, err := NewCodec(Policy{Kind: KindDict, Algorithm: AlgorithmZstd, Dict: []byte("d")})
	require.NoError(t, err)
	require.IsType(t, &ZstdCompressor{}, dict)

	_, err = NewCodec(Policy{Kind: Kind(99)})
	require.Error(t, err)
}

func TestNewCodecRejectsUnsupportedAlgorithm(t *testing.T) {
	_, err := NewCodec(Policy{Kind: KindGeneral, Algorithm: Algorithm(99)})
	require.Error(t, err)
}
