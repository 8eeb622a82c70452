package bcm2835

import "picon/src/lib/volatile"

// AuxRegisterMap is the auxiliary peripheral block (BCM2835 ARM Peripherals,
// page 8).  Only the part up to the end of the mini uart is mapped, the SPI
// masters that follow are never touched.
type AuxRegisterMap struct {
	InterruptStatus volatile.Register32 //0x00, readonly
	Enables         volatile.Register32 //0x04
	reserved00      [14]uint32          //0x08-0x3C
	MiniUART        MiniUARTRegisterMap //0x40
}

// MiniUARTRegisterMap is the "mini" uart (UART1).  It's not a full 16550,
// and several registers only use the low 8 bits even though the bus access
// is 32 bits wide.
type MiniUARTRegisterMap struct {
	Data              volatile.Register32 //0x40, 8 bits wide
	InterruptEnable   volatile.Register32 //0x44
	InterruptIdentify volatile.Register32 //0x48
	LineControl       volatile.Register32 //0x4C
	ModemControl      volatile.Register32 //0x50
	LineStatus        volatile.Register32 //0x54, readonly
	ModemStatus       volatile.Register32 //0x58, readonly
	Scratch           volatile.Register32 //0x5C
	ExtraControl      volatile.Register32 //0x60
	ExtraStatus       volatile.Register32 //0x64, readonly
	Baud              volatile.Register32 //0x68, 16 bits wide
}

const MiniUARTOffset = 0x40

// aux: peripheral enables
const PeripheralMiniUART = 1 << 0
const PeripheralSPI1 = 1 << 1
const PeripheralSPI2 = 1 << 2

// mini uart: extra control bitfields
const ReceiveEnable = 1 << 0
const TransmitEnable = 1 << 1
const EnableRTS = 1 << 2
const EnableCTS = 1 << 3

// mini uart: line control register bitfields
//https://elinux.org/BCM2835_datasheet_errata (bit 1 is also needed for 8 bits)
const DataLength8Bits = 3 << 0
const Break = 1 << 6
const DLab = 1 << 7

// mini uart: modem control register bitfields
const ReadyToSend = 1 << 1

// mini uart: interrupt identify register bitfields
const Pending = 1 << 0
const ClearReceiveFIFO = 1 << 1  //Write
const ClearTransmitFIFO = 1 << 2 //Write
const ClearFIFOsMask = 0x3      //use with ReplaceBits at ClearFIFOsShift
const ClearFIFOsShift = 1

// mini uart: line status register bitfields
const DataReady = 1 << 0
const ReceiverOverrun = 1 << 1
const TransmitterEmpty = 1 << 5 //space for at least one byte in the tx fifo
const TransmitterIdle = 1 << 6

// mini uart: interrupt enable register bitfields
//https://elinux.org/BCM2835_datasheet_errata#p12
const ReceiveFIFOReady = 1 << 0
const TransmitFIFOEmpty = 1 << 1
const LineStatusError = 1 << 2
const ModemStatusChange = 1 << 3
const AllMiniUARTInterrupts = ReceiveFIFOReady | TransmitFIFOEmpty | LineStatusError | ModemStatusChange

// derived from the core clock: BCM2835 ARM Peripherals page 11,
// baud = clock / (8 * (divisor + 1))
const coreClockHz = 250_000_000
const BaudDivisor115200 = coreClockHz/(8*115200) - 1


// mini uart: the GPIO pins and function that carry TXD1/RXD1
const MiniUARTTxPin = 14
const MiniUARTRxPin = 15
const MiniUARTPinMode = GPIOAltFunc5
