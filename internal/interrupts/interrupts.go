// Package interrupts names the interrupt sources of the Game Boy. Each
// source is a bit of IF (requested) and IE (enabled); when both are set
// and the IME is set, the CPU jumps to the source's vector, clearing the
// request. Lower bits have priority.
package interrupts

// Source is the bit index of an interrupt in IF and IE.
type Source = uint8

const (
	// VBlank is requested every time the PPU enters VBlank.
	VBlank Source = iota
	// LCD is requested by the conditions selected in STAT.
	LCD
	// Timer is requested when TIMA overflows.
	Timer
	// Serial is requested when a serial transfer completes.
	Serial
	// Joypad is requested when a selected button is pressed.
	Joypad

	// Count is the number of interrupt sources.
	Count = 5
)

// Mask covers the bits of IF and IE that hold interrupts.
const Mask = 1<<Count - 1

// Vector returns the address the CPU jumps to when servicing s.
func Vector(s Source) uint16 {
	return 0x0040 + uint16(s)*8
}
