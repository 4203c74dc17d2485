package decode

import (
	"iter"

	"github.com/arloliu/stringwrite/corpus"
	"github.com/arloliu/stringwrite/format"
)

// DefaultSeriesName is the name given to series produced by Tabular.
const DefaultSeriesName = "values"

// TabularSeries is a labeled sequence of independently allocated strings.
//
// Labels default to 0..n-1, matching a dataframe's range index.
type TabularSeries struct {
	name   string
	labels []int64
	values [][]byte
}

// Tabular decodes a batch into a TabularSeries.
//
// Every string is copied into its own allocation and appended together with its label.
func Tabular(lengths []int32, values []byte) (*TabularSeries, error) {
	if err := corpus.Validate(lengths, values); err != nil {
		return nil, err
	}

	s := &TabularSeries{
		name:   DefaultSeriesName,
		labels: make([]int64, 0, len(lengths)),
		values: make([][]byte, 0, len(lengths)),
	}

	offset := 0
	for i, l := range lengths {
		end := offset + int(l)
		v := make([]byte, l)
		copy(v, values[offset:end])
		s.append(int64(i), v)
		offset = end
	}

	return s, nil
}

func (s *TabularSeries) append(label int64, v []byte) {
	s.labels = append(s.labels, label)
	s.values = append(s.values, v)
}

// Kind returns format.ReprTabular.
func (s *TabularSeries) Kind() format.Representation {
	return format.ReprTabular
}

// Name returns the series name.
func (s *TabularSeries) Name() string {
	return s.name
}

// Len returns the number of strings.
func (s *TabularSeries) Len() int {
	return len(s.values)
}

// Labels returns the series labels. The slice must not be modified.
func (s *TabularSeries) Labels() []int64 {
	return s.labels
}

// At returns the string at position i.
func (s *TabularSeries) At(i int) ([]byte, bool) {
	if i < 0 || i >= len(s.values) {
		return nil, false
	}

	return s.values[i], true
}

// Loc returns the string with the given label.
func (s *TabularSeries) Loc(label int64) ([]byte, bool) {
	// default labels are positional
	if label >= 0 && label < int64(len(s.labels)) && s.labels[label] == label {
		return s.values[label], true
	}

	for i, l := range s.labels {
		if l == label {
			return s.values[i], true
		}
	}

	return nil, false
}

// All iterates over the strings in order.
func (s *TabularSeries) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i, v := range s.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Release is a no-op.
func (s *TabularSeries) Release() {}
