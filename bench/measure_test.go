package bench

import (
	"errors"
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func currentGCPercent() int {
	prev := debug.SetGCPercent(100)
	debug.SetGCPercent(prev)

	return prev
}

func TestMeasure(t *testing.T) {
	before := currentGCPercent()

	for _, disableGC := range []bool{false, true} {
		var inside int
		d, err := Measure(disableGC, func() error {
			inside = currentGCPercent()
			time.Sleep(2 * time.Millisecond)

			return nil
		})
		require.NoError(t, err)
		require.GreaterOrEqual(t, d, 2*time.Millisecond)
		require.Equal(t, before, currentGCPercent())

		if disableGC {
			require.Equal(t, -1, inside)
		} else {
			require.Equal(t, before, inside)
		}
	}
}

func TestMeasure_ErrorRestoresGC(t *testing.T) {
	before := currentGCPercent()
	errBoom := errors.New("boom")

	_, err := Measure(true, func() error { return errBoom })
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, before, currentGCPercent())
}

func TestMeasure_PanicRestoresGC(t *testing.T) {
	before := currentGCPercent()

	require.Panics(t, func() {
		_, _ = Measure(true, func() error { panic("boom") })
	})
	require.Equal(t, before, currentGCPercent())
}
