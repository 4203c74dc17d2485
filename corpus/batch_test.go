package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/stringwrite/errs"
)

func collect(b *Batch) []string {
	var out []string
	for _, s := range b.All() {
		out = append(out, string(s))
	}

	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int32
		values  []byte
		wantErr error
	}{
		{name: "valid", lengths: []int32{2, 0, 3}, values: []byte("ABXYZ")},
		{name: "empty", lengths: nil, values: nil},
		{name: "all empty strings", lengths: []int32{0, 0}, values: []byte{}},
		{name: "sum too small", lengths: []int32{2, 0, 2}, values: []byte("ABXYZ"), wantErr: errs.ErrLengthValueMismatch},
		{name: "sum too large", lengths: []int32{2, 0, 4}, values: []byte("ABXYZ"), wantErr: errs.ErrLengthValueMismatch},
		{name: "values without lengths", lengths: nil, values: []byte("A"), wantErr: errs.ErrLengthValueMismatch},
		{name: "negative length", lengths: []int32{3, -1, 3}, values: []byte("ABXYZ"), wantErr: errs.ErrInvalidArgument},
		{name: "overflowing total", lengths: []int32{MaxBatchBytes, 1}, values: nil, wantErr: errs.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.lengths, tt.values)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewBatch(t *testing.T) {
	b, err := NewBatch([]int32{2, 0, 3}, []byte("ABXYZ"))
	require.NoError(t, err)

	require.Equal(t, 3, b.Len())
	require.Equal(t, 5, b.Size())
	require.Equal(t, []int32{2, 0, 3}, b.Lengths())
	require.Equal(t, []byte("ABXYZ"), b.Values())
	require.Equal(t, []string{"AB", "", "XYZ"}, collect(b))

	_, err = NewBatch([]int32{2, 0, 3}, []byte("ABXY"))
	require.ErrorIs(t, err, errs.ErrLengthValueMismatch)
}

func TestBatch_AllStopsEarly(t *testing.T) {
	b, err := NewBatch([]int32{1, 1, 1}, []byte("abc"))
	require.NoError(t, err)

	var seen []string
	for i, s := range b.All() {
		seen = append(seen, string(s))
		if i == 1 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, seen)
}
