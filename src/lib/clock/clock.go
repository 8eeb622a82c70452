// Package clock is the time source the console drivers consume.  Now is a
// monotonic millisecond count with an arbitrary origin; only differences
// between two readings mean anything.
package clock

import (
	"sync/atomic"
	"time"

	"picon/src/hardware/bcm2835"
	"picon/src/lib/spin"
)

type Clock interface {
	Now() uint64
	SleepMs(ms uint64)
}

// SysTimer reads the BCM2835 free running 1MHz counter.
type SysTimer struct {
	Regs *bcm2835.SysTimerRegisterMap
}

func (s SysTimer) Now() uint64 {
	return s.Regs.Micros() / 1000
}

// SleepMs is a busy wait, there is nothing else to run.
func (s SysTimer) SleepMs(ms uint64) {
	end := s.Regs.Micros() + ms*1000
	for s.Regs.Micros() < end {
		spin.Relax()
	}
}

// Host is the clock of the machine running the host tools.
type Host struct {
	start time.Time
}

func NewHost() *Host {
	return &Host{start: time.Now()}
}

func (h *Host) Now() uint64 {
	return uint64(time.Since(h.start) / time.Millisecond)
}

func (h *Host) SleepMs(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Manual only moves when told to, or by Step on every reading.  Tests use it
// to make timeouts deterministic.
type Manual struct {
	now  atomic.Uint64
	step uint64
}

// NewManual returns a clock at start that advances by step on each Now.
func NewManual(start uint64, step uint64) *Manual {
	m := &Manual{step: step}
	m.now.Store(start)
	return m
}

func (m *Manual) Now() uint64 {
	return m.now.Add(m.step) - m.step
}

// Peek reads the clock without advancing it.
func (m *Manual) Peek() uint64 {
	return m.now.Load()
}

func (m *Manual) Advance(ms uint64) {
	m.now.Add(ms)
}

func (m *Manual) SleepMs(ms uint64) {
	m.now.Add(ms)
}
