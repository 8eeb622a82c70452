// Package console is the one shared serial console.  Whoever builds the
// console owns it and hands it to the parts that print or read; every access
// to the port goes through the console's spin lock and holds it only for one
// byte, one erase, or one write.
package console

import (
	"io"

	"picon/src/lib/spin"
)

// Port is a byte at a time serial device: the mini uart on the board, or a
// terminal or serial line on the host.  HasByte never blocks; when it
// returns true the next ReadByte does not block either.
type Port interface {
	io.ByteReader
	io.ByteWriter
	HasByte() bool
}

const (
	Backspace = 8
	Delete    = 127
)

type Console struct {
	port *spin.Mutex[Port]
}

func New(port Port) *Console {
	return &Console{port: spin.NewMutex(port)}
}

// ReadByte waits for a byte.  The lock is only taken to poll and to read, so
// writers are not shut out while the console is idle.
func (c *Console) ReadByte() (byte, error) {
	for {
		g := c.port.Lock()
		port := *g.Value()
		if port.HasByte() {
			b, err := port.ReadByte()
			g.Unlock()
			return b, err
		}
		g.Unlock()
		spin.Relax()
	}
}

// WriteByte sends b as is.
func (c *Console) WriteByte(b byte) error {
	g := c.port.Lock()
	defer g.Unlock()
	return (*g.Value()).WriteByte(b)
}

// Write sends text, putting a \r in front of every \n.  The whole of p is
// written under one hold of the lock so lines from different writers do not
// interleave.
func (c *Console) Write(p []byte) (int, error) {
	g := c.port.Lock()
	defer g.Unlock()
	return writeText(*g.Value(), p)
}

func (c *Console) WriteString(s string) (int, error) {
	g := c.port.Lock()
	defer g.Unlock()
	return writeText(*g.Value(), s)
}

func writeText[S ~string | ~[]byte](port Port, s S) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if err := port.WriteByte('\r'); err != nil {
				return i, err
			}
		}
		if err := port.WriteByte(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// WriteStrings writes the parts as one piece of text under one hold of the
// lock.  Nothing is joined, so it does not allocate.
func (c *Console) WriteStrings(parts ...string) (int, error) {
	g := c.port.Lock()
	defer g.Unlock()
	port := *g.Value()
	total := 0
	for _, s := range parts {
		n, err := writeText(port, s)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (c *Console) Println(s string) {
	c.WriteStrings(s, "\n")
}

// Erase rubs out the character left of the cursor: back, blank, back.
func (c *Console) Erase() error {
	g := c.port.Lock()
	defer g.Unlock()
	port := *g.Value()
	for _, b := range [3]byte{Backspace, ' ', Backspace} {
		if err := port.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// Emergency is the console as seen by the runtime's panic and abort output.
// It takes the lock when it is free.  When it is not, the holder is the code
// that just failed and will never release it, so the text goes to the port
// without the lock rather than deadlocking the report.
type Emergency struct {
	c *Console
}

func (c *Console) Emergency() *Emergency {
	return &Emergency{c: c}
}

func (e *Emergency) port() (Port, func()) {
	if g, ok := e.c.port.TryLock(); ok {
		return *g.Value(), g.Unlock
	}
	return *e.c.port.Abandoned(), func() {}
}

func (e *Emergency) WriteByte(b byte) error {
	port, release := e.port()
	defer release()
	return port.WriteByte(b)
}

// WriteString writes s with \r in front of every \n.
func (e *Emergency) WriteString(s string) (int, error) {
	port, release := e.port()
	defer release()
	return writeText(port, s)
}
