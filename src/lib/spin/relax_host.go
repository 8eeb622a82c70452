//go:build !(tinygo && arm64)

package spin

import "runtime"

// Relax is called on every iteration of a busy wait.  On the host it yields
// so that a polled condition set by another goroutine gets a chance to run.
func Relax() {
	runtime.Gosched()
}
