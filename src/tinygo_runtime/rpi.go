package tinygo_runtime

import (
	"picon/src/lib/clock"
	"picon/src/lib/spin"
)

// Sink is where the runtime's own output goes: panics, println, aborts.
// On the board it is the console's emergency writer.
type Sink interface {
	WriteByte(c byte) error
	WriteString(s string) (int, error)
}

//decls
var out Sink
var ticks clock.Clock

// halt is swapped out by tests; on the board nothing comes after an abort.
var halt = func() {
	for {
		spin.Relax()
	}
}

// Install points runtime output at s and runtime time at clk.  Until it is
// called, output is dropped and time stands still.
func Install(s Sink, clk clock.Clock) {
	out = s
	ticks = clk
}

func putc(c byte) {
	if out == nil {
		return
	}
	if c == '\n' {
		out.WriteByte('\r')
	}
	out.WriteByte(c)
}

// Abort reports s and stops.
func Abort(s string) {
	if out != nil {
		out.WriteString("Aborting..." + s + "\n")
	}
	halt()
}

// Exit is a trust.Logger exit function for the board: there is nowhere to
// exit to.
func Exit(code int) {
	Abort("fatal error, code " + itoa(code))
}

func nowMs() uint64 {
	if ticks == nil {
		return 0
	}
	return ticks.Now()
}

func sleepMs(ms uint64) {
	if ticks != nil {
		ticks.SleepMs(ms)
	}
}

// no strconv: the runtime may call this before the heap is usable
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
