package hostport

import (
	"errors"

	"picon/src/console"
	"picon/src/lib/clock"
)

var ErrIdle = errors.New("hostport: idle timeout")

// IdlePort ends a session that has seen no input for a while.  Once the
// limit passes, HasByte reports true so the waiting reader comes back, and
// ReadByte returns ErrIdle.  The limit is never reported early on clk.
type IdlePort struct {
	console.Port
	clk   clock.Clock
	limit uint64
	last  uint64
}

// NewIdlePort wraps p with a limit in milliseconds.  A zero limit disables
// the timeout.
func NewIdlePort(p console.Port, clk clock.Clock, limitMs uint64) *IdlePort {
	return &IdlePort{Port: p, clk: clk, limit: limitMs, last: clk.Now()}
}

func (p *IdlePort) expired() bool {
	return p.limit > 0 && p.clk.Now()-p.last >= p.limit
}

func (p *IdlePort) HasByte() bool {
	if p.Port.HasByte() {
		return true
	}
	return p.expired()
}

func (p *IdlePort) ReadByte() (byte, error) {
	if !p.Port.HasByte() && p.expired() {
		return 0, ErrIdle
	}
	b, err := p.Port.ReadByte()
	if err == nil {
		p.last = p.clk.Now()
	}
	return b, err
}
