package bcm2835

import "picon/src/lib/volatile"

// SysTimerRegisterMap is the free running 1MHz system timer.
type SysTimerRegisterMap struct {
	ControlStatus       volatile.Register32 //0x00
	FreeRunningLower32  volatile.Register32 //0x04
	FreeRunningHigher32 volatile.Register32 //0x08
	reservedGPU0        volatile.Register32 //0x0C
	Compare1            volatile.Register32 //0x10
	reservedGPU2        volatile.Register32 //0x14
	Compare3            volatile.Register32 //0x18
}

const SystemTimerMatch3 = 1 << 3
const SystemTimerMatch1 = 1 << 1

// Micros returns the 64 bit counter.  The two halves are separate reads, so
// the high half is read again to catch a carry out of the low half.
func (s *SysTimerRegisterMap) Micros() uint64 {
	for {
		hi := s.FreeRunningHigher32.Get()
		lo := s.FreeRunningLower32.Get()
		if s.FreeRunningHigher32.Get() == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}
