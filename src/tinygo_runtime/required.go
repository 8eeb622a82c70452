//go:build tinygo && arm64

package tinygo_runtime

import "unsafe"

//go:extern _sbss
var _sbss [0]byte

//go:extern _ebss
var _ebss [0]byte

//export runtime.external_putchar
func putchar(c uint8) {
	putc(c)
}

//export runtime.export_preinit
func preinit() {
	// the firmware does not clear .bss for us
	ptr := unsafe.Pointer(&_sbss)
	for ptr != unsafe.Pointer(&_ebss) {
		*(*uint8)(ptr) = 0
		ptr = unsafe.Pointer(uintptr(ptr) + 1)
	}
}

//export runtime.external_postinit
func postinit() {
}

//export runtime.external_abort
func abort() {
	Abort("runtime abort")
}

//export runtime.external_ticks
func external_ticks() uint64 {
	return nowMs()
}

//export runtime.external_sleep_ticks
func external_sleep_ticks(d uint64) {
	sleepMs(d)
}
