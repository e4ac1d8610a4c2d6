// Package bits provides the bit twiddling, formatting and number
// parsing helpers shared by the emulation core.
package bits

import "golang.org/x/exp/constraints"

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// Toggle flips the bit at the given index.
func Toggle(b, i uint8) uint8 {
	return b ^ (1 << i)
}

// Assign sets or resets the bit at the given index depending on on.
func Assign(b, i uint8, on bool) uint8 {
	if on {
		return Set(b, i)
	}
	return Reset(b, i)
}

// Test16 tests the bit at the given index of a 16-bit value.
func Test16(v uint16, i uint8) bool {
	return (v>>i)&1 != 0
}

// Set16 sets the bit at the given index of a 16-bit value.
func Set16(v uint16, i uint8) uint16 {
	return v | (1 << i)
}

// Reset16 resets the bit at the given index of a 16-bit value.
func Reset16(v uint16, i uint8) uint16 {
	return v &^ (1 << i)
}

// Join combines two bytes into a 16-bit value.
func Join(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Split splits a 16-bit value into its upper and lower bytes.
func Split(v uint16) (hi, lo uint8) {
	return uint8(v >> 8), uint8(v)
}

// Bool converts a boolean into a 0 or 1 of any integer type.
func Bool[T constraints.Integer](b bool) T {
	if b {
		return 1
	}
	return 0
}
