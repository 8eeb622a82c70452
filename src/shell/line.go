package shell

import (
	"errors"
	"fmt"

	"picon/src/console"
	"picon/src/gen"
)

// MaxLine is the size of the line buffer.
const MaxLine = 512

var (
	ErrLineTooLong = fmt.Errorf("line too long (max %d bytes)", MaxLine)
	ErrInvalidText = errors.New("line is not valid UTF-8")
)

// LineConsole is the part of the console line editing uses.
type LineConsole interface {
	ReadByte() (byte, error)
	WriteByte(byte) error
	Erase() error
}

// ReadLine reads bytes into storage until \r or \n, echoing each one.
// Backspace and delete remove the last byte from the line and from the
// screen; at the start of the line they do nothing.  If the line does not fit
// in storage the rest of it is read without echo and thrown away, and
// ErrLineTooLong is returned.  Errors from the console are returned as is.
func ReadLine(con LineConsole, storage []byte) ([]byte, error) {
	line := gen.NewStackVec(storage)
	overflow := false
	for {
		b, err := con.ReadByte()
		if err != nil {
			return nil, err
		}
		switch {
		case b == '\r' || b == '\n':
			if overflow {
				return nil, ErrLineTooLong
			}
			return line.AsSlice(), nil
		case overflow:
		case b == console.Backspace || b == console.Delete:
			if _, err := line.Pop(); err != nil {
				continue //nothing left to rub out, leave the prompt alone
			}
			if err := con.Erase(); err != nil {
				return nil, err
			}
		default:
			if err := line.Push(b); err != nil {
				overflow = true
				continue
			}
			if err := con.WriteByte(b); err != nil {
				return nil, err
			}
		}
	}
}
