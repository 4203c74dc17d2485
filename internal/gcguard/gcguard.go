// Package gcguard suspends the Go garbage collector for a bounded region.
//
// Suspension is process-wide. Suspend returns a release func that restores the
// previous GC percent; callers defer it so collection resumes on every exit path:
//
//	release := gcguard.Suspend()
//	defer release()
package gcguard

import (
	"runtime/debug"
	"sync"
)

// Suspend disables garbage collection and returns a func that restores the
// previous setting. Calling the release func more than once is a no-op.
func Suspend() (release func()) {
	prev := debug.SetGCPercent(-1)

	return sync.OnceFunc(func() {
		debug.SetGCPercent(prev)
	})
}

// SuspendIf calls Suspend when enabled is true and otherwise returns a no-op release func.
func SuspendIf(enabled bool) (release func()) {
	if !enabled {
		return func() {}
	}

	return Suspend()
}
