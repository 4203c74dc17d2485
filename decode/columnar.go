package decode

import (
	"iter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/format"
	"github.com/arloliu/stringwrite/internal/options"
)

type columnarConfig struct {
	mem memory.Allocator
}

// ColumnarOption configures Columnar.
type ColumnarOption = options.Option[*columnarConfig]

// WithAllocator sets the Arrow allocator used for the offsets and values buffers.
func WithAllocator(mem memory.Allocator) ColumnarOption {
	return options.NoError(func(c *columnarConfig) {
		c.mem = mem
	})
}

// ColumnarArray is an Arrow String array decoded from a batch.
//
// The array owns its buffers; call Release when done.
type ColumnarArray struct {
	arr *array.String
}

// Columnar decodes a batch into an Arrow String array.
//
// Lengths are converted to len(lengths)+1 cumulative int32 offsets in one forward
// pass, and the value buffer is copied once into allocator-owned memory.
//
// Returns:
//   - *ColumnarArray: the decoded array
//   - error: errs.ErrLengthValueMismatch or errs.ErrInvalidArgument from corpus.Validate;
//     nothing is allocated in that case
func Columnar(lengths []int32, values []byte, opts ...ColumnarOption) (*ColumnarArray, error) {
	if err := corpus.Validate(lengths, values); err != nil {
		return nil, err
	}

	cfg := &columnarConfig{mem: memory.DefaultAllocator}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	n := len(lengths)

	offBuf := memory.NewResizableBuffer(cfg.mem)
	defer offBuf.Release()
	offBuf.Resize((n + 1) * arrow.Int32SizeBytes)

	offsets := arrow.Int32Traits.CastFromBytes(offBuf.Bytes())
	var offset int32
	for i, l := range lengths {
		offsets[i] = offset
		offset += l
	}
	offsets[n] = offset

	valBuf := memory.NewResizableBuffer(cfg.mem)
	defer valBuf.Release()
	valBuf.Resize(len(values))
	copy(valBuf.Bytes(), values)

	data := array.NewData(arrow.BinaryTypes.String, n, []*memory.Buffer{nil, offBuf, valBuf}, nil, 0, 0)
	defer data.Release()

	return &ColumnarArray{arr: array.NewStringData(data)}, nil
}

// Kind returns format.ReprColumnar.
func (c *ColumnarArray) Kind() format.Representation {
	return format.ReprColumnar
}

// Len returns the number of strings.
func (c *ColumnarArray) Len() int {
	return c.arr.Len()
}

// At returns the i-th string as a view into the shared values buffer.
func (c *ColumnarArray) At(i int) ([]byte, bool) {
	if i < 0 || i >= c.arr.Len() {
		return nil, false
	}
	offsets := c.arr.ValueOffsets()

	return c.data()[offsets[i]:offsets[i+1]], true
}

// All iterates over the strings in order.
func (c *ColumnarArray) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		offsets := c.arr.ValueOffsets()
		data := c.data()
		for i := range c.arr.Len() {
			if !yield(i, data[offsets[i]:offsets[i+1]]) {
				return
			}
		}
	}
}

// Offsets returns the len+1 cumulative offsets. The slice must not be modified.
func (c *ColumnarArray) Offsets() []int32 {
	return c.arr.ValueOffsets()
}

// Data returns the shared values buffer. The slice must not be modified.
func (c *ColumnarArray) Data() []byte {
	return c.data()
}

// Arrow returns the underlying Arrow array. It stays owned by c; callers that keep it
// beyond c's lifetime must Retain it.
func (c *ColumnarArray) Arrow() *array.String {
	return c.arr
}

// Release releases the Arrow buffers.
func (c *ColumnarArray) Release() {
	if c.arr != nil {
		c.arr.Release()
		c.arr = nil
	}
}

func (c *ColumnarArray) data() []byte {
	buf := c.arr.Data().Buffers()[2]
	if buf == nil {
		return nil
	}

	return buf.Bytes()
}
