package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("AB"))
	bb.MustWrite(nil)
	bb.MustWrite([]byte("XYZ"))

	require.Equal(t, []byte("ABXYZ"), bb.Bytes())
	require.Equal(t, 5, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("some data"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with enough room", func(t *testing.T) {
		bb := NewByteBuffer(128)
		bb.Grow(100)
		require.Equal(t, 128, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("12345678"))
		bb.Grow(1)
		require.Equal(t, 8+ValueBufferDefaultSize, bb.Cap())
		require.Equal(t, []byte("12345678"), bb.Bytes())
	})

	t.Run("large request wins", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(ValueBufferDefaultSize * 3)
		require.Equal(t, ValueBufferDefaultSize*3, bb.Cap())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * ValueBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		require.Equal(t, size+size/4, bb.Cap())
	})
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.MustWrite([]byte("AB"))

	tail := bb.Extend(3)
	require.Len(t, tail, 3)
	copy(tail, "XYZ")

	require.Equal(t, []byte("ABXYZ"), bb.Bytes())
	require.Empty(t, bb.Extend(0))
	require.Equal(t, 5, bb.Len())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are reset", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		bb.MustWrite([]byte("dirty"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		bb := NewByteBuffer(1024)
		p.Put(bb)

		got := p.Get()
		require.Equal(t, 32, got.Cap())
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("default pools", func(t *testing.T) {
		vb := GetValueBuffer()
		require.NotNil(t, vb)
		require.GreaterOrEqual(t, vb.Cap(), 0)
		PutValueBuffer(vb)

		fb := GetFileBuffer()
		require.NotNil(t, fb)
		PutFileBuffer(fb)
	})
}
