package miniuart

import (
	"bytes"
	"errors"
	"testing"
	"time"

	p "picon/src/hardware/bcm2835"
	"picon/src/lib/clock"
)

// newTestUART builds a UART over register blocks in ordinary memory.  The
// test plays the hardware by setting line status bits and the data register.
func newTestUART(clk clock.Clock) (*UART, *p.AuxRegisterMap, *p.GPIORegisterMap) {
	aux := &p.AuxRegisterMap{}
	gpio := &p.GPIORegisterMap{}
	if clk == nil {
		clk = clock.NewManual(0, 1)
	}
	return New(aux, gpio, clk), aux, gpio
}

func TestNewProgramsRegisters(t *testing.T) {
	aux := &p.AuxRegisterMap{}
	aux.MiniUART.InterruptEnable.Set(p.ReceiveFIFOReady)
	gpio := &p.GPIORegisterMap{}
	u := New(aux, gpio, clock.NewManual(0, 1))

	if !aux.Enables.HasBits(p.PeripheralMiniUART) {
		t.Errorf("mini uart not enabled in the aux block")
	}
	m := &aux.MiniUART
	if m.Baud.Get() != 270 {
		t.Errorf("expected baud divisor 270 but got %d", m.Baud.Get())
	}
	if m.LineControl.Get()&p.DataLength8Bits != p.DataLength8Bits {
		t.Errorf("8 bit mode not set: LCR=%x", m.LineControl.Get())
	}
	if m.ExtraControl.Get() != p.ReceiveEnable|p.TransmitEnable {
		t.Errorf("expected tx and rx enabled, CNTL=%x", m.ExtraControl.Get())
	}
	if m.InterruptEnable.Get() != 0 {
		t.Errorf("interrupts should be off for a polling driver, IER=%x", m.InterruptEnable.Get())
	}
	if gpio.PinMode(14) != p.GPIOAltFunc5 || gpio.PinMode(15) != p.GPIOAltFunc5 {
		t.Errorf("pins 14/15 not switched to alt5")
	}
	if _, ok := u.ReadTimeout(); ok {
		t.Errorf("new uart should not have a read timeout")
	}
}

func TestWriteByte(t *testing.T) {
	u, aux, _ := newTestUART(nil)
	aux.MiniUART.LineStatus.Set(p.TransmitterEmpty)
	if err := u.WriteByte('x'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aux.MiniUART.Data.Get() != 'x' {
		t.Errorf("expected 'x' in the data register but got %x", aux.MiniUART.Data.Get())
	}
}

func TestWriteByteBlocksUntilTransmitterEmpty(t *testing.T) {
	u, aux, _ := newTestUART(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		u.WriteByte('a')
	}()

	select {
	case <-done:
		t.Fatal("WriteByte returned with a full transmit FIFO")
	case <-time.After(30 * time.Millisecond):
	}
	if aux.MiniUART.Data.Get() != 0 {
		t.Fatalf("data register written before the FIFO had space")
	}

	aux.MiniUART.LineStatus.SetBits(p.TransmitterEmpty)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for WriteByte")
	}
	if aux.MiniUART.Data.Get() != 'a' {
		t.Errorf("expected 'a' but got %x", aux.MiniUART.Data.Get())
	}
}

func TestHasByteAndReadByte(t *testing.T) {
	u, aux, _ := newTestUART(nil)
	if u.HasByte() {
		t.Fatalf("HasByte true with empty FIFO")
	}
	aux.MiniUART.Data.Set('q')
	aux.MiniUART.LineStatus.Set(p.DataReady)
	if !u.HasByte() {
		t.Fatalf("HasByte false with data ready")
	}
	b, err := u.ReadByte()
	if err != nil || b != 'q' {
		t.Errorf("expected 'q' but got %q (%v)", b, err)
	}
}

func TestWaitForByteTimesOut(t *testing.T) {
	clk := clock.NewManual(1000, 1)
	u, _, _ := newTestUART(clk)
	u.SetReadTimeout(50)

	err := u.WaitForByte()
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout but got %v", err)
	}
	if elapsed := clk.Peek() - 1000; elapsed < 50 {
		t.Errorf("timed out after %dms, before the 50ms timeout", elapsed)
	}
}

func TestWaitForByteWithTimeoutSeesData(t *testing.T) {
	tests := []struct {
		name    string
		timeout uint64
	}{
		{"zero timeout", 0},
		{"long timeout", 1_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, aux, _ := newTestUART(nil)
			u.SetReadTimeout(tt.timeout)
			aux.MiniUART.LineStatus.Set(p.DataReady)
			if err := u.WaitForByte(); err != nil {
				t.Errorf("data was ready but got %v", err)
			}
		})
	}
}

func TestWaitForByteWithoutTimeoutBlocks(t *testing.T) {
	u, aux, _ := newTestUART(nil)
	done := make(chan error, 1)
	go func() { done <- u.WaitForByte() }()

	select {
	case err := <-done:
		t.Fatalf("WaitForByte returned %v without data and without a timeout", err)
	case <-time.After(30 * time.Millisecond):
	}

	aux.MiniUART.LineStatus.Set(p.DataReady)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for WaitForByte after data arrived")
	}
}

func TestClearReadTimeout(t *testing.T) {
	u, _, _ := newTestUART(nil)
	u.SetReadTimeout(10)
	if ms, ok := u.ReadTimeout(); !ok || ms != 10 {
		t.Errorf("expected 10ms timeout but got %d (%v)", ms, ok)
	}
	u.ClearReadTimeout()
	if _, ok := u.ReadTimeout(); ok {
		t.Errorf("timeout still set after ClearReadTimeout")
	}
}

func TestReadTimeoutNoData(t *testing.T) {
	u, _, _ := newTestUART(nil)
	u.SetReadTimeout(5)
	n, err := u.Read(make([]byte, 4))
	if n != 0 || !errors.Is(err, ErrTimeout) {
		t.Errorf("expected 0, ErrTimeout but got %d, %v", n, err)
	}
}

func TestReadTakesWhatIsAvailable(t *testing.T) {
	u, aux, _ := newTestUART(nil)
	aux.MiniUART.Data.Set('z')
	aux.MiniUART.LineStatus.Set(p.DataReady)

	buf := make([]byte, 4)
	n, err := u.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("expected a full buffer but got n=%d err=%v", n, err)
	}
	if string(buf) != "zzzz" {
		t.Errorf("unexpected data %q", buf)
	}
	if n, err := u.Read(nil); n != 0 || err != nil {
		t.Errorf("empty read: n=%d err=%v", n, err)
	}
}

func TestWriteTextAddsCR(t *testing.T) {
	var buf bytes.Buffer
	n, err := writeText(&buf, "hello\nworld\n")
	if err != nil || n != 12 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if buf.String() != "hello\r\nworld\r\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWriteStringLastByte(t *testing.T) {
	u, aux, _ := newTestUART(nil)
	aux.MiniUART.LineStatus.Set(p.TransmitterEmpty)
	if n, _ := u.WriteString("ok\n"); n != 3 {
		t.Errorf("expected 3 bytes reported but got %d", n)
	}
	if aux.MiniUART.Data.Get() != '\n' {
		t.Errorf("last byte on the wire should be \\n, got %x", aux.MiniUART.Data.Get())
	}
	if n, _ := u.Write([]byte{1, 2}); n != 2 {
		t.Errorf("Write reported %d bytes", n)
	}
	if u.Drain() != 0 {
		t.Errorf("nothing to drain but Drain found bytes")
	}
}

func TestWriteHex32(t *testing.T) {
	var buf bytes.Buffer
	writeHex32(&buf, 0xDEADBEEF)
	if buf.String() != "DEADBEEF " {
		t.Errorf("unexpected hex %q", buf.String())
	}
	writeHex32(&buf, 0x10)
	if buf.String() != "DEADBEEF 00000010 " {
		t.Errorf("unexpected hex %q", buf.String())
	}
}
