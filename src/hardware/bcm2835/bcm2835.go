//go:build tinygo && (rpi3 || rpi3_qemu)

package bcm2835

import (
	"unsafe"

	"picon/src/hardware/rpi"
)

var Aux *AuxRegisterMap = (*AuxRegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0x00215000))
var GPIO *GPIORegisterMap = (*GPIORegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0x00200000))
var SysTimer *SysTimerRegisterMap = (*SysTimerRegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0x3000))
var InterruptController *IRQRegisterMap = (*IRQRegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0xB200))
