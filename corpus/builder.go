package corpus

import (
	"fmt"

	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/internal/pool"
)

// builder accumulates the strings of a generated Batch.
//
// Lengths and values are collected in pooled buffers; Finish copies them into
// exactly-sized slices owned by the returned Batch and hands the pooled buffers
// back. A builder must not be used after Finish or Release.
type builder struct {
	lengths        []int32
	releaseLengths func()
	values         *pool.ByteBuffer
}

// newBuilder creates a builder sized for about capacity strings.
func newBuilder(capacity int) *builder {
	lengths, release := pool.GetInt32Slice(max(capacity, 0))

	return &builder{
		lengths:        lengths,
		releaseLengths: release,
		values:         pool.GetValueBuffer(),
	}
}

// appendFill appends a string of n bytes produced by fill, which writes into dst.
func (b *builder) appendFill(n int, fill func(dst []byte)) error {
	if err := b.checkRoom(n); err != nil {
		return err
	}

	fill(b.values.Extend(n))
	b.lengths = append(b.lengths, int32(n)) //nolint:gosec

	return nil
}

func (b *builder) checkRoom(n int) error {
	if int64(b.values.Len())+int64(n) > MaxBatchBytes {
		return fmt.Errorf("%w: batch would exceed %d bytes", errs.ErrInvalidArgument, MaxBatchBytes)
	}

	return nil
}

// Len returns the number of strings appended so far.
func (b *builder) Len() int {
	return len(b.lengths)
}

// Size returns the number of value bytes appended so far.
func (b *builder) Size() int {
	return b.values.Len()
}

// Finish returns the accumulated Batch and releases the builder's pooled buffers.
func (b *builder) Finish() *Batch {
	batch := &Batch{
		lengths: make([]int32, len(b.lengths)),
		values:  make([]byte, b.values.Len()),
	}
	copy(batch.lengths, b.lengths)
	copy(batch.values, b.values.Bytes())

	b.Release()

	return batch
}

// Release returns the pooled buffers without producing a Batch.
// It is safe to call more than once.
func (b *builder) Release() {
	if b.values != nil {
		pool.PutValueBuffer(b.values)
		b.values = nil
	}
	if b.releaseLengths != nil {
		b.releaseLengths()
		b.releaseLengths = nil
	}
	b.lengths = nil
}
