//go:build tinygo && (rpi3 || rpi3_qemu)

package main

import (
	"errors"

	"picon/src/drivers/miniuart"
	"picon/src/hardware/bcm2835"
	"picon/src/lib/clock"
)

// Talks to the mini uart without the console or shell: echoes what is typed,
// shows a line back on return, and prints a dot each second nothing arrives.
func main() {
	bcm2835.InterruptController.MaskAux()
	uart := miniuart.New(bcm2835.Aux, bcm2835.GPIO, clock.SysTimer{Regs: bcm2835.SysTimer})
	uart.SetReadTimeout(1000)

	uart.WriteString("hello, uart\n")

	var line [80]byte
	n := 0
	for {
		if err := uart.WaitForByte(); errors.Is(err, miniuart.ErrTimeout) {
			uart.WriteByte('.')
			continue
		}
		ch, _ := uart.ReadByte()
		if ch != 13 {
			uart.WriteByte(ch) //echo it back, so typist can see it
			if n < len(line) {
				line[n] = ch
				n++
			}
			continue
		}
		uart.WriteCR()
		uart.WriteString("Line: ")
		uart.Write(line[:n])
		uart.WriteCR()
		n = 0
	}
}
