package hostport

import (
	"fmt"

	tty "github.com/mattn/go-tty"
)

// OpenTTY puts a terminal in raw mode and returns it as a port.  An empty
// path means the controlling terminal.  Close puts the terminal back the way
// it was.
func OpenTTY(path string, opts ...Option) (*Stream, error) {
	var (
		t   *tty.TTY
		err error
	)
	if path == "" {
		t, err = tty.Open()
	} else {
		t, err = tty.OpenDevice(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open terminal %q: %w", path, err)
	}
	restore, err := t.Raw()
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("raw mode on %q: %w", path, err)
	}
	return NewStream(t.Input(), t.Output(), &ttyCloser{t: t, restore: restore}, opts...), nil
}

type ttyCloser struct {
	t       *tty.TTY
	restore func() error
}

func (c *ttyCloser) Close() error {
	rerr := c.restore()
	cerr := c.t.Close()
	if rerr != nil {
		return rerr
	}
	return cerr
}
