//go:build tinygo

package volatile

import "runtime/volatile"

// Register32 is the TinyGo register type; the compiler turns every access
// into a single volatile load or store.
type Register32 = volatile.Register32
