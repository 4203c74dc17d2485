// Package hash fingerprints byte-string sequences with xxHash64.
package hash

import (
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/stringwrite/endian"
)

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Sequence computes an order-sensitive fingerprint of a sequence of byte strings.
//
// Every element is hashed as a 4-byte little-endian length followed by its bytes,
// so ["AB", ""] and ["A", "B"] produce different fingerprints.
func Sequence(seq iter.Seq2[int, []byte]) uint64 {
	engine := endian.GetLittleEndianEngine()
	d := xxhash.New()

	var prefix [4]byte
	for _, s := range seq {
		engine.PutUint32(prefix[:], uint32(len(s))) //nolint:gosec
		_, _ = d.Write(prefix[:])
		_, _ = d.Write(s)
	}

	return d.Sum64()
}
