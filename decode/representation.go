package decode

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
	"github.com/arloliu/stringwrite/internal/hash"
)

// Representation is a decoded batch, whatever its layout.
type Representation interface {
	// Kind identifies the concrete representation.
	Kind() format.Representation

	// Len returns the number of strings.
	Len() int

	// At returns the i-th string, or false if i is out of range.
	// The returned slice must not be modified.
	At(i int) ([]byte, bool)

	// All iterates over the strings in order.
	All() iter.Seq2[int, []byte]

	// Release frees memory held outside the Go heap. It is a no-op for
	// representations that only use Go-managed memory.
	Release()
}

var (
	_ Representation = (*ColumnarArray)(nil)
	_ Representation = (*TabularSeries)(nil)
	_ Representation = PlainList(nil)
)

// Decode decodes lengths and values into the representation named by kind.
//
// alloc is used by the columnar decoder only; nil selects memory.DefaultAllocator.
func Decode(kind format.Representation, lengths []int32, values []byte, alloc memory.Allocator) (Representation, error) {
	var (
		r   Representation
		err error
	)

	switch kind {
	case format.ReprColumnar:
		var opts []ColumnarOption
		if alloc != nil {
			opts = append(opts, WithAllocator(alloc))
		}
		r, err = Columnar(lengths, values, opts...)
	case format.ReprTabular:
		r, err = Tabular(lengths, values)
	case format.ReprList:
		r, err = List(lengths, values)
	default:
		err = fmt.Errorf("%w: unknown representation %d", errs.ErrInvalidArgument, kind)
	}

	if err != nil {
		return nil, err
	}

	return r, nil
}

// Equal reports whether a and b hold the same ordered sequence of strings.
func Equal(a, b Representation) bool {
	return FirstDifference(a, b) < 0
}

// FirstDifference returns the index of the first string that differs between a and b,
// or -1 if they are equal. When only the lengths differ it returns the shorter length.
func FirstDifference(a, b Representation) int {
	n := min(a.Len(), b.Len())
	for i := range n {
		x, _ := a.At(i)
		y, _ := b.At(i)
		if !bytes.Equal(x, y) {
			return i
		}
	}

	if a.Len() != b.Len() {
		return n
	}

	return -1
}

// Fingerprint returns an order-sensitive xxHash64 fingerprint of r's strings.
// Equal representations always have equal fingerprints.
func Fingerprint(r Representation) uint64 {
	return hash.Sequence(r.All())
}

// Strings copies the strings of r into a []string. Intended for tests and printing.
func Strings(r Representation) []string {
	out := make([]string, 0, r.Len())
	for _, s := range r.All() {
		out = append(out, string(s))
	}

	return out
}
