// Package miniuart is a polling driver for the BCM2835 mini uart (UART1).
// Every wait in here is a spin on the line status register; interrupts from
// the aux block are left disabled.
package miniuart

import (
	"errors"

	p "picon/src/hardware/bcm2835"
	"picon/src/lib/clock"
	"picon/src/lib/spin"
)

// ErrTimeout is returned by WaitForByte and Read when the read timeout ran
// out before a byte arrived.
var ErrTimeout = errors.New("miniuart: timed out waiting for a byte")

type UART struct {
	regs    *p.MiniUARTRegisterMap
	clock   clock.Clock
	timeout uint64 //millis, only meaningful if timed is set
	timed   bool
}

// New enables the mini uart as an aux peripheral and configures it for
// 8 bits at 115200 baud with pins 14 and 15 as TXD1/RXD1, polling only.
// Reads do not time out until SetReadTimeout is called.
func New(aux *p.AuxRegisterMap, gpio *p.GPIORegisterMap, clk clock.Clock) *UART {
	aux.Enables.SetBits(p.PeripheralMiniUART)

	regs := &aux.MiniUART
	//turn off the transmitter and receiver while we change things
	regs.ExtraControl.Set(0)
	regs.InterruptEnable.ClearBits(p.AllMiniUARTInterrupts)

	//see errata for why (bad docs!) uses excuse of compat with 16550
	// https://elinux.org/BCM2835_datasheet_errata#p14
	regs.LineControl.SetBits(p.DataLength8Bits)
	regs.ModemControl.Set(0)
	regs.InterruptIdentify.ReplaceBits(p.ClearFIFOsMask, p.ClearFIFOsMask, p.ClearFIFOsShift)
	regs.Baud.Set(p.BaudDivisor115200)

	// map UART1 to GPIO pins
	gpio.ConfigurePin(p.MiniUARTTxPin, p.MiniUARTPinMode)
	gpio.ConfigurePin(p.MiniUARTRxPin, p.MiniUARTPinMode)
	gpio.DisablePulls(1<<p.MiniUARTTxPin | 1<<p.MiniUARTRxPin)

	regs.ExtraControl.SetBits(p.ReceiveEnable | p.TransmitEnable)
	return &UART{regs: regs, clock: clk}
}

// SetReadTimeout bounds WaitForByte and Read to ms milliseconds.
func (u *UART) SetReadTimeout(ms uint64) {
	u.timeout = ms
	u.timed = true
}

// ClearReadTimeout makes waits block until a byte arrives.
func (u *UART) ClearReadTimeout() {
	u.timeout = 0
	u.timed = false
}

// ReadTimeout returns the timeout and whether one is set.
func (u *UART) ReadTimeout() (uint64, bool) {
	return u.timeout, u.timed
}

//
// Writing a byte over serial.  Blocks until there is space in the transmit
// FIFO; there is no timeout on writes.  The error is always nil.
//
func (u *UART) WriteByte(c byte) error {
	for !u.regs.LineStatus.HasBits(p.TransmitterEmpty) {
		spin.Relax()
	}
	u.regs.Data.Set(uint32(c)) //really 8 bit write
	return nil
}

// HasByte is true if there is at least one byte in the receive FIFO.  If it
// returns true the next ReadByte returns without waiting.  It never blocks.
func (u *UART) HasByte() bool {
	return u.regs.LineStatus.HasBits(p.DataReady)
}

// WaitForByte blocks until a byte is ready to read.  With no read timeout it
// only returns once data arrives.  With a timeout it returns ErrTimeout once
// at least that many milliseconds have passed on the clock without data.
func (u *UART) WaitForByte() error {
	if !u.timed {
		for !u.HasByte() {
			spin.Relax()
		}
		return nil
	}
	start := u.clock.Now()
	for {
		if u.HasByte() {
			return nil
		}
		if u.clock.Now()-start >= u.timeout {
			return ErrTimeout
		}
		spin.Relax()
	}
}

//
// Reading a byte from serial. Blocking, and the read timeout does not apply.
// The error is always nil.
//
func (u *UART) ReadByte() (byte, error) {
	for !u.HasByte() {
		spin.Relax()
	}
	return byte(u.regs.Data.Get()), nil //8 bit read
}
