package hostport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialConfig names a serial line to the board.
type SerialConfig struct {
	Device string
	Baud   int
}

// board side is always 8N1
const defaultBaud = 115200

// serialPoll bounds each blocking read so Close is noticed even on drivers
// that do not wake a pending read.
const serialPoll = 100 * time.Millisecond

// OpenSerial opens the line 8N1 at cfg.Baud (115200 if zero).
func OpenSerial(cfg SerialConfig, opts ...Option) (*Stream, error) {
	if cfg.Device == "" {
		return nil, errors.New("serial device path is required")
	}
	if cfg.Baud == 0 {
		cfg.Baud = defaultBaud
	}

	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	if err := port.SetReadTimeout(serialPoll); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}
	return NewStream(port, port, port, opts...), nil
}

// Ports lists the serial devices the host can see.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
