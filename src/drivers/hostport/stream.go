// Package hostport provides console ports for running the shell on a
// development machine: the local terminal, a serial line to the board, or any
// reader/writer pair in tests.
package hostport

import (
	"errors"
	"io"
	"sync"
	"time"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("hostport: port closed")

// inbound buffer; a terminal user cannot get far ahead of the shell
const inboundDepth = 4096

// Stream turns a blocking reader into a polled byte port.  A goroutine
// moves bytes from the reader into a buffered channel; HasByte looks at
// the channel.  When the reader fails, the error is kept and returned by
// every ReadByte after the buffered bytes are used up.
//
// Reads are for one goroutine at a time; the console's lock sees to that.
// Writes go straight to the writer.
type Stream struct {
	w     io.Writer
	c     io.Closer
	in    chan byte
	ended chan struct{}
	err   error // set before ended is closed

	wait time.Duration

	// one byte taken off in by a waiting HasByte
	peek byte
	held bool

	closeOnce sync.Once
	closed    chan struct{}
}

type Option func(*Stream)

// WithPollWait lets HasByte wait up to d for input before answering false.
// Busy polling loops on the host then sleep instead of spinning a core.
func WithPollWait(d time.Duration) Option {
	return func(s *Stream) { s.wait = d }
}

// NewStream starts the reader goroutine on r.  c may be nil; otherwise it is
// closed by Close.
func NewStream(r io.Reader, w io.Writer, c io.Closer, opts ...Option) *Stream {
	s := &Stream{
		w:      w,
		c:      c,
		in:     make(chan byte, inboundDepth),
		ended:  make(chan struct{}),
		closed: make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	go s.pump(r)
	return s
}

func (s *Stream) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		select {
		case <-s.closed:
			s.finish(ErrClosed)
			return
		default:
		}
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.in <- b:
			case <-s.closed:
				s.finish(ErrClosed)
				return
			}
		}
		if err != nil {
			s.finish(err)
			return
		}
		// serial reads report a timeout as (0, nil)
	}
}

func (s *Stream) finish(err error) {
	s.err = err
	close(s.ended)
}

// HasByte reports whether ReadByte would return without blocking: a byte is
// buffered or the reader has ended.
func (s *Stream) HasByte() bool {
	if s.held || len(s.in) > 0 {
		return true
	}
	var timeout <-chan time.Time
	if s.wait > 0 {
		t := time.NewTimer(s.wait)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case b := <-s.in:
		s.hold(b)
		return true
	case <-s.ended:
		return true
	case <-timeout:
		return false
	default:
		if timeout == nil {
			return false
		}
	}
	select {
	case b := <-s.in:
		s.hold(b)
		return true
	case <-s.ended:
		return true
	case <-timeout:
		return false
	}
}

func (s *Stream) hold(b byte) {
	s.peek = b
	s.held = true
}

// ReadByte blocks for the next byte.  Once the reader has ended and the
// buffer is empty it returns the reader's error, io.EOF for a clean end.
func (s *Stream) ReadByte() (byte, error) {
	if s.held {
		s.held = false
		return s.peek, nil
	}
	select {
	case b := <-s.in:
		return b, nil
	case <-s.ended:
		// bytes may have landed before the reader ended
		select {
		case b := <-s.in:
			return b, nil
		default:
		}
		return 0, s.err
	}
}

// Read waits for at least one byte, then returns whatever else is already
// buffered, up to len(p).
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	n := 1
	for n < len(p) {
		select {
		case b := <-s.in:
			p[n] = b
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

func (s *Stream) WriteByte(b byte) error {
	_, err := s.Write([]byte{b})
	return err
}

func (s *Stream) Write(p []byte) (int, error) {
	select {
	case <-s.closed:
		return 0, ErrClosed
	default:
	}
	return s.w.Write(p)
}

// Close stops the port.  The reader goroutine exits once its pending Read
// returns, which for files and serial ports happens when c is closed.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.c != nil {
			err = s.c.Close()
		}
	})
	return err
}
