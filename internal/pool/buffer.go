// Package pool provides scratch byte buffers for the encoder/decoder hot
// paths, pooled with sync.Pool to avoid an allocation per document.
package pool

import (
	"io"
	"sync"
)

// Default and maximum sizes for the scratch buffer pool. Most documents
// and entries are small; the threshold keeps a handful of oversized
// buffers from pinning memory after a rare large encode.
const (
	DefaultSize   = 1024 * 4   // 4KiB
	MaxThreshold  = 1024 * 256 // 256KiB
)

// Buffer is a growable byte slice reused across encode/decode calls.
type Buffer struct {
	B []byte
}

// NewBuffer creates a Buffer with the given starting capacity.
func NewBuffer(defaultSize int) *Buffer {
	return &Buffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte { return b.B }

// Reset empties the buffer but retains its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.B) }

// Grow ensures the buffer can accept requiredBytes more bytes without a
// further reallocation.
func (b *Buffer) Grow(requiredBytes int) {
	available := cap(b.B) - len(b.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Write appends data to the buffer, growing it as needed. It always
// succeeds.
func (b *Buffer) Write(data []byte) (int, error) {
	b.Grow(len(data))
	b.B = append(b.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	b.Grow(1)
	b.B = append(b.B, c)
	return nil
}

// WriteTo writes the buffer's contents to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.B)
	return int64(n), err
}

// BufferPool pools Buffers of a given default size, discarding any buffer
// that grew past maxThreshold rather than returning it to the pool.
type BufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewBufferPool creates a BufferPool.
func NewBufferPool(defaultSize, maxThreshold int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any { return NewBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a Buffer from the pool.
func (p *BufferPool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	return buf
}

// Put returns a Buffer to the pool for reuse. Oversized buffers are
// dropped instead of retained, to keep the pool from bloating after a
// rare large document.
func (p *BufferPool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var defaultPool = NewBufferPool(DefaultSize, MaxThreshold)

// Get retrieves a Buffer from the package-default pool.
func Get() *Buffer { return defaultPool.Get() }

// Put returns a Buffer to the package-default pool.
func Put(buf *Buffer) { defaultPool.Put(buf) }
