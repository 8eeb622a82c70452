//go:build tinygo && (rpi3 || rpi3_qemu)

package main

import (
	"picon/src/console"
	"picon/src/drivers/miniuart"
	"picon/src/hardware/bcm2835"
	"picon/src/lib/clock"
	"picon/src/lib/trust"
	"picon/src/shell"
	rt "picon/src/tinygo_runtime"
)

const prompt = "> "

func main() {
	// polled only: the aux interrupt stays masked
	bcm2835.InterruptController.MaskAux()

	clk := clock.SysTimer{Regs: bcm2835.SysTimer}
	uart := miniuart.New(bcm2835.Aux, bcm2835.GPIO, clk)
	uart.Drain() // line noise from power up

	// the console holds the only reference to the uart from here on
	con := console.New(uart)
	rt.Install(con.Emergency(), clk)
	logger := trust.NewLogger(con, rt.Exit)
	logger.SetLevel(trust.ErrorMask | trust.WarnMask)

	con.Println("")
	con.Println("picon ready")
	shell.New(con, prompt, shell.WithLogger(logger)).Run()
}
