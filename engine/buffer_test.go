package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferWriteValue(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		size  int
		want  []byte
	}{
		{"single byte", 0x7F, 1, []byte{0x7F}},
		{"four bytes little endian", 0x01020304, 4, []byte{0x04, 0x03, 0x02, 0x01}},
		{"odd width", 0x0102, 3, []byte{0x02, 0x01, 0x00}},
		{"truncated to width", 0x11223344, 2, []byte{0x44, 0x33}},
		{"negative two's complement", -1, 2, []byte{0xFF, 0xFF}},
		{"zero size writes nothing", 0x42, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer()
			buf.WriteValue(tt.value, tt.size)
			require.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestBufferWrite(t *testing.T) {
	buf := NewBuffer()
	n, err := buf.Write([]byte{0x01, 0x02})
	require.Nil(t, err)
	require.Equal(t, 2, n)
	n, err = buf.Write([]byte{0x03})
	require.Nil(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, buf.Bytes())
	require.Equal(t, 3, buf.Len())
}

func TestBufferWriteZeros(t *testing.T) {
	buf := NewBuffer()
	buf.WriteValue(0xAA, 1)
	off := buf.WriteZeros(4)
	require.Equal(t, 1, off)
	off = buf.WriteZeros(4)
	require.Equal(t, 5, off)
	require.Equal(t, []byte{0xAA, 0, 0, 0, 0, 0, 0, 0, 0}, buf.Bytes())
}

func TestBufferBytesIsACopy(t *testing.T) {
	buf := NewBuffer()
	buf.Write([]byte{0x01, 0x02})
	raw := buf.Bytes()
	raw[0] = 0xFF
	require.Equal(t, []byte{0x01, 0x02}, buf.Bytes())
	require.Nil(t, NewBuffer().Bytes())
}

func TestBufferResetAndRestore(t *testing.T) {
	buf := NewBuffer()
	buf.Write([]byte{0x01, 0x02, 0x03})
	saved := buf.Bytes()

	buf.Reset()
	require.Equal(t, 0, buf.Len())

	buf.Write([]byte{0x09})
	buf.Restore(saved)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, buf.Bytes())

	// Restored buffers keep appending at the end.
	buf.Write([]byte{0x04})
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf.Bytes())
}
