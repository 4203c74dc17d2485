package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendLengths(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := AppendLengths(engine, []byte{0xff}, []int32{2, 0, 3, 300})
	require.Equal(t, []byte{
		0xff,
		0x02, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00,
		0x2c, 0x01, 0x00, 0x00,
	}, buf)

	big := AppendLengths(binary.BigEndian, nil, []int32{300})
	require.Equal(t, []byte{0x00, 0x00, 0x01, 0x2c}, big)
}

func TestReadLengths(t *testing.T) {
	engine := GetLittleEndianEngine()
	want := []int32{2, 0, 3, 1 << 20}

	got, ok := ReadLengths(engine, AppendLengths(engine, nil, want), len(want))
	require.True(t, ok)
	require.Equal(t, want, got)

	_, ok = ReadLengths(engine, []byte{1, 2, 3}, 1)
	require.False(t, ok)

	_, ok = ReadLengths(engine, nil, -1)
	require.False(t, ok)

	empty, ok := ReadLengths(engine, nil, 0)
	require.True(t, ok)
	require.Empty(t, empty)
}
