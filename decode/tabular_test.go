package decode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTabular_Labels(t *testing.T) {
	s, err := Tabular(scenarioLengths, scenarioValues)
	require.NoError(t, err)

	require.Equal(t, DefaultSeriesName, s.Name())
	require.Equal(t, []int64{0, 1, 2}, s.Labels())

	v, ok := s.Loc(2)
	require.True(t, ok)
	require.Equal(t, "XYZ", string(v))

	v, ok = s.Loc(1)
	require.True(t, ok)
	require.Empty(t, v)

	_, ok = s.Loc(3)
	require.False(t, ok)
	_, ok = s.Loc(-1)
	require.False(t, ok)
}

func TestTabular_LocWithCustomLabels(t *testing.T) {
	s := &TabularSeries{name: "custom"}
	s.append(10, []byte("ten"))
	s.append(20, []byte("twenty"))

	v, ok := s.Loc(20)
	require.True(t, ok)
	require.Equal(t, "twenty", string(v))

	// label 1 is not present even though position 1 is
	_, ok = s.Loc(1)
	require.False(t, ok)
}

func TestTabular_ElementsAreIndependent(t *testing.T) {
	values := []byte("ABXYZ")
	s, err := Tabular(scenarioLengths, values)
	require.NoError(t, err)

	values[0] = 'Q'
	first, _ := s.At(0)
	require.Equal(t, "AB", string(first))

	first[1] = 'C'
	last, _ := s.At(2)
	require.Equal(t, "XYZ", string(last))
}
