package decode

import (
	"iter"

	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/format"
)

// PlainList is an ordered list of independently allocated byte strings.
type PlainList [][]byte

// List decodes a batch into a PlainList. No two elements share backing memory.
func List(lengths []int32, values []byte) (PlainList, error) {
	if err := corpus.Validate(lengths, values); err != nil {
		return nil, err
	}

	list := make(PlainList, len(lengths))
	offset := 0
	for i, l := range lengths {
		end := offset + int(l)
		list[i] = append([]byte(nil), values[offset:end]...)
		offset = end
	}

	return list, nil
}

// Kind returns format.ReprList.
func (l PlainList) Kind() format.Representation {
	return format.ReprList
}

// Len returns the number of strings.
func (l PlainList) Len() int {
	return len(l)
}

// At returns the i-th string.
func (l PlainList) At(i int) ([]byte, bool) {
	if i < 0 || i >= len(l) {
		return nil, false
	}

	return l[i], true
}

// All iterates over the strings in order.
func (l PlainList) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i, v := range l {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Release is a no-op.
func (l PlainList) Release() {}
