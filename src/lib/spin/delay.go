package spin

// Delay busy waits for roughly n iterations of Relax.  It is for the short
// setup and hold times in the peripheral manuals that are given in cycles.
func Delay(n int) {
	for r := n; r > 0; r-- {
		Relax()
	}
}
