package engine

import "io"

// Buffer accumulates the content bytes of the block currently being
// compiled. The engine stashes and restores buffer contents as nested
// blocks open and close, which is why Restore exists alongside Reset.
type Buffer struct {
	data []byte
}

var _ io.Writer = (*Buffer)(nil)

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Write appends p to the buffer. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteValue appends the value in little-endian order using exactly size
// bytes. The value is truncated to the requested width; negative values
// are written in two's complement form.
func (b *Buffer) WriteValue(value int64, size int) {
	v := uint64(value)
	for i := 0; i < size; i++ {
		b.data = append(b.data, byte(v))
		v >>= 8
	}
}

// WriteZeros appends n zero bytes and returns the offset where they start.
func (b *Buffer) WriteZeros(n int) int {
	offset := len(b.data)
	for i := 0; i < n; i++ {
		b.data = append(b.data, 0)
	}
	return offset
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns a copy of the accumulated bytes.
func (b *Buffer) Bytes() []byte {
	if len(b.data) == 0 {
		return nil
	}
	c := make([]byte, len(b.data))
	copy(c, b.data)
	return c
}

// Reset truncates the buffer to empty.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Restore replaces the buffer contents with p, positioned at the end.
func (b *Buffer) Restore(p []byte) {
	b.data = append(b.data[:0], p...)
}
