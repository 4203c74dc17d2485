// Package endian provides the byte order used by stringwrite's on-disk and
// hashing formats.
//
// EndianEngine combines encoding/binary's ByteOrder and AppendByteOrder so a
// single value can both decode fixed-width integers in place and append them to
// a growing buffer. Batch files and sequence fingerprints are always little-endian:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendLengths(engine, buf, lengths)
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendLengths appends every length as a 4-byte integer and returns the extended buffer.
func AppendLengths(engine EndianEngine, dst []byte, lengths []int32) []byte {
	dst = growCap(dst, 4*len(lengths))
	for _, l := range lengths {
		dst = engine.AppendUint32(dst, uint32(l)) //nolint:gosec
	}

	return dst
}

// ReadLengths decodes count 4-byte integers from src.
//
// It returns false if src holds fewer than 4*count bytes.
func ReadLengths(engine EndianEngine, src []byte, count int) ([]int32, bool) {
	if count < 0 || len(src) < 4*count {
		return nil, false
	}

	lengths := make([]int32, count)
	for i := range lengths {
		lengths[i] = int32(engine.Uint32(src[4*i:])) //nolint:gosec
	}

	return lengths, true
}

func growCap(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	nb := make([]byte, len(b), len(b)+n)
	copy(nb, b)

	return nb
}
