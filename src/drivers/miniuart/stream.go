package miniuart

import (
	"io"

	"picon/src/lib/spin"
)

//
// Put a whole string out to serial, with a \r in front of every \n so
// terminals that expect CRLF render lines properly. Blocking.
//
func (u *UART) WriteString(s string) (int, error) {
	return writeText(u, s)
}

func writeText(w io.ByteWriter, s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if err := w.WriteByte('\r'); err != nil {
				return i, err
			}
		}
		if err := w.WriteByte(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

//
// Write a CR (and secretly an LF) to serial.
//
func (u *UART) WriteCR() error {
	u.WriteByte('\r')
	return u.WriteByte('\n')
}

// Write sends every byte of b, unmodified, before returning.
func (u *UART) Write(b []byte) (int, error) {
	for _, c := range b {
		u.WriteByte(c)
	}
	return len(b), nil
}

// Read waits, at most the read timeout, for the first byte.  After that it
// takes whatever is already in the FIFO, up to len(b), without waiting for
// more.  If the timeout runs out first it returns 0, ErrTimeout.
func (u *UART) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if err := u.WaitForByte(); err != nil {
		return 0, err
	}
	n := 0
	for n < len(b) && u.HasByte() {
		b[n], _ = u.ReadByte()
		n++
	}
	return n, nil
}

// WriteHex32 prints d as 8 hex digits and a space.
func (u *UART) WriteHex32(d uint32) {
	writeHex32(u, d)
}

func writeHex32(u io.ByteWriter, d uint32) {
	for shift := 28; shift >= 0; shift -= 4 {
		rc := byte((d >> uint(shift)) & 0xF)
		if rc > 9 {
			rc += 0x37
		} else {
			rc += 0x30
		}
		u.WriteByte(rc)
	}
	u.WriteByte(0x20)
}

// Drain discards everything in the receive FIFO and reports how many bytes
// were thrown away.
func (u *UART) Drain() int {
	n := 0
	for u.HasByte() {
		u.ReadByte()
		n++
		spin.Relax()
	}
	return n
}
