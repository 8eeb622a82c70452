//go:build tinygo && arm64

package spin

import "device/arm64"

// Relax is called on every iteration of a busy wait.
func Relax() {
	arm64.Asm("nop")
}
