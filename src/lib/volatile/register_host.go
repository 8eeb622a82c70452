//go:build !tinygo

// Package volatile gives the hardware packages one register type for both
// builds.  On the device it is TinyGo's runtime/volatile.Register32.  On the
// host the same 4 byte layout is accessed with sync/atomic so a register block
// backed by ordinary memory can be driven by a test while the code under test
// polls it.
package volatile

import "sync/atomic"

// Register32 is a 32 bit memory mapped register.  Every method is exactly
// one load, one store, or one load followed by one store.
type Register32 struct {
	Reg uint32
}

// Get reads the register.
func (r *Register32) Get() uint32 {
	return atomic.LoadUint32(&r.Reg)
}

// Set writes value to the register.
func (r *Register32) Set(value uint32) {
	atomic.StoreUint32(&r.Reg, value)
}

// SetBits reads the register, ORs in value and writes the result back.
func (r *Register32) SetBits(value uint32) {
	atomic.StoreUint32(&r.Reg, atomic.LoadUint32(&r.Reg)|value)
}

// ClearBits reads the register, clears the bits in value and writes the
// result back.
func (r *Register32) ClearBits(value uint32) {
	atomic.StoreUint32(&r.Reg, atomic.LoadUint32(&r.Reg)&^value)
}

// HasBits is true if any bit of value is set in the register.
func (r *Register32) HasBits(value uint32) bool {
	return atomic.LoadUint32(&r.Reg)&value > 0
}

// ReplaceBits replaces the bits selected by mask<<pos with value<<pos.
func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	old := atomic.LoadUint32(&r.Reg)
	atomic.StoreUint32(&r.Reg, old&^(mask<<pos)|value<<pos)
}
