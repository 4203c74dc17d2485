package bench

import (
	"time"

	"github.com/arloliu/stringwrite/internal/gcguard"
)

// Measure times a single call of fn.
//
// The clock starts immediately before fn and stops immediately after it returns.
// When disableGC is true, garbage collection is suspended for the duration of the
// call and restored right after the clock stops, including when fn returns an
// error or panics.
func Measure(disableGC bool, fn func() error) (time.Duration, error) {
	release := gcguard.SuspendIf(disableGC)
	defer release()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	release()

	return elapsed, err
}
