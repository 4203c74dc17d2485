package corpus

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/stringwrite/errs"
)

// MaxBatchBytes is the largest value buffer a batch may hold.
// Columnar arrays address values through int32 offsets.
const MaxBatchBytes = math.MaxInt32

// Batch is an immutable pair of a length sequence and a value buffer.
type Batch struct {
	lengths []int32
	values  []byte
}

// NewBatch validates lengths and values and wraps them in a Batch.
//
// The slices are not copied; the caller must not modify them afterwards.
func NewBatch(lengths []int32, values []byte) (*Batch, error) {
	if err := Validate(lengths, values); err != nil {
		return nil, err
	}

	return &Batch{lengths: lengths, values: values}, nil
}

// Validate checks that every length is non-negative, that the total fits in
// MaxBatchBytes and that the lengths sum to len(values).
//
// Returns:
//   - errs.ErrInvalidArgument: a negative length or an oversized total
//   - errs.ErrLengthValueMismatch: the sum of lengths differs from len(values)
func Validate(lengths []int32, values []byte) error {
	var total int64
	for i, l := range lengths {
		if l < 0 {
			return fmt.Errorf("%w: length %d at index %d is negative", errs.ErrInvalidArgument, l, i)
		}
		total += int64(l)
	}

	if total > MaxBatchBytes {
		return fmt.Errorf("%w: total length %d exceeds %d bytes", errs.ErrInvalidArgument, total, MaxBatchBytes)
	}

	if total != int64(len(values)) {
		return fmt.Errorf("%w: sum of lengths is %d, value buffer holds %d bytes",
			errs.ErrLengthValueMismatch, total, len(values))
	}

	return nil
}

// Lengths returns the length sequence. The returned slice must not be modified.
func (b *Batch) Lengths() []int32 {
	return b.lengths
}

// Values returns the value buffer. The returned slice must not be modified.
func (b *Batch) Values() []byte {
	return b.values
}

// Len returns the number of strings in the batch.
func (b *Batch) Len() int {
	return len(b.lengths)
}

// Size returns the size of the value buffer in bytes.
func (b *Batch) Size() int {
	return len(b.values)
}

// All iterates over the strings of the batch in order.
//
// The yielded slices alias the value buffer.
func (b *Batch) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		offset := 0
		for i, l := range b.lengths {
			end := offset + int(l)
			if !yield(i, b.values[offset:end:end]) {
				return
			}
			offset = end
		}
	}
}
