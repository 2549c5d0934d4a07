package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferGrowPreservesContents(t *testing.T) {
	b := NewBuffer(4)
	_, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(b.Bytes()))
	require.Equal(t, 5, b.Len())
}

func TestBufferResetRetainsCapacity(t *testing.T) {
	b := NewBuffer(16)
	_, err := b.Write([]byte("data"))
	require.NoError(t, err)
	cap0 := cap(b.B)

	b.Reset()
	require.Equal(t, 0, b.Len())
	require.Equal(t, cap0, cap(b.B))
}

func TestBufferPoolDropsOversizedBuffers(t *testing.T) {
	p := NewBufferPool(4, 8)
	buf := p.Get()
	buf.Grow(32)
	buf.B = append(buf.B, make([]byte, 32)...)
	require.Greater(t, cap(buf.B), 8)

	p.Put(buf)
	fresh := p.Get()
	require.LessOrEqual(t, cap(fresh.B), 8)
}

func TestPackageDefaultPoolRoundTrip(t *testing.T) {
	buf := Get()
	_, err := buf.Write([]byte("x"))
	require.NoError(t, err)
	Put(buf)
}
