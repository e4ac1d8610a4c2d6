package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// and performs a bitwise AND of n and the A register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR of n and the A register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR of n and the A register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare subtracts n from A for its flags only.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if A equals n.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) compare(n uint8) {
	c.setFlags(c.A == n, true, n&0x0F > c.A&0x0F, n > c.A)
}

// swap exchanges the upper and lower nibbles of v.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(v uint8) uint8 {
	r := v<<4 | v>>4
	c.setFlags(r == 0, false, false, false)
	return r
}

// testBit tests bit n of v.
//
//	BIT b,r
//	b = 0-7, r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of r is zero.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(v, n uint8) {
	c.setFlags(v&(1<<n) == 0, false, true, c.isFlagSet(flagCarry))
}

// increment returns v + 1.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(v uint8) uint8 {
	r := v + 1
	c.setFlags(r == 0, false, v&0x0F == 0x0F, c.isFlagSet(flagCarry))
	return r
}

// decrement returns v - 1.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(v uint8) uint8 {
	r := v - 1
	c.setFlags(r == 0, true, v&0x0F == 0, c.isFlagSet(flagCarry))
	return r
}

// add adds n to A, plus the carry flag for ADC.
//
//	ADD A,n
//	ADC A,n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	carry := uint16(0)
	if withCarry && c.isFlagSet(flagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(n) + carry
	half := uint16(c.A&0x0F) + uint16(n&0x0F) + carry
	c.setFlags(uint8(sum) == 0, false, half > 0x0F, sum > 0xFF)
	c.A = uint8(sum)
}

// sub subtracts n from A, minus the carry flag for SBC.
//
//	SUB n
//	SBC A,n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	carry := int16(0)
	if withCarry && c.isFlagSet(flagCarry) {
		carry = 1
	}
	diff := int16(c.A) - int16(n) - carry
	half := int16(c.A&0x0F) - int16(n&0x0F) - carry
	c.setFlags(uint8(diff) == 0, true, half < 0, diff < 0)
	c.A = uint8(diff)
}

// addUint16 returns a + b.
//
//	ADD HL,n
//	n = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addUint16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	c.setFlags(c.isFlagSet(flagZero), false, (a&0x0FFF)+(b&0x0FFF) > 0x0FFF, sum > 0xFFFF)
	return uint16(sum)
}

// addSPSigned returns SP plus the signed offset e.
//
//	ADD SP,r8
//	LD HL,SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3 of the low byte.
//	C - Set if carry from bit 7 of the low byte.
func (c *CPU) addSPSigned(e uint8) uint16 {
	r := uint16(int32(c.SP) + int32(int8(e)))
	carries := c.SP ^ uint16(int8(e)) ^ r
	c.setFlags(false, false, carries&0x10 != 0, carries&0x100 != 0)
	return r
}

// decimalAdjust corrects A to binary coded decimal after an addition
// or subtraction, as selected by N.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to the adjustment.
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(flagCarry)
	if !c.isFlagSet(flagSubtract) {
		if carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.isFlagSet(flagHalfCarry) || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if carry {
			c.A -= 0x60
		}
		if c.isFlagSet(flagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.setFlags(c.A == 0, c.isFlagSet(flagSubtract), false, carry)
}

// rotateLeftCarry rotates v left. Bit 7 moves to both C and bit 0.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7.
func (c *CPU) rotateLeftCarry(v uint8) uint8 {
	r := v<<1 | v>>7
	c.setFlags(r == 0, false, false, v&types.Bit7 != 0)
	return r
}

// rotateRightCarry rotates v right. Bit 0 moves to both C and bit 7.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) rotateRightCarry(v uint8) uint8 {
	r := v>>1 | v<<7
	c.setFlags(r == 0, false, false, v&types.Bit0 != 0)
	return r
}

// rotateLeftThroughCarry rotates v left through the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7.
func (c *CPU) rotateLeftThroughCarry(v uint8) uint8 {
	r := v << 1
	if c.isFlagSet(flagCarry) {
		r |= types.Bit0
	}
	c.setFlags(r == 0, false, false, v&types.Bit7 != 0)
	return r
}

// rotateRightThroughCarry rotates v right through the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) rotateRightThroughCarry(v uint8) uint8 {
	r := v >> 1
	if c.isFlagSet(flagCarry) {
		r |= types.Bit7
	}
	c.setFlags(r == 0, false, false, v&types.Bit0 != 0)
	return r
}

// shiftLeftArithmetic shifts v left into carry. Bit 0 is reset.
//
//	SLA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7.
func (c *CPU) shiftLeftArithmetic(v uint8) uint8 {
	r := v << 1
	c.setFlags(r == 0, false, false, v&types.Bit7 != 0)
	return r
}

// shiftRightArithmetic shifts v right into carry. Bit 7 is unchanged.
//
//	SRA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) shiftRightArithmetic(v uint8) uint8 {
	r := v>>1 | v&types.Bit7
	c.setFlags(r == 0, false, false, v&types.Bit0 != 0)
	return r
}

// shiftRightLogical shifts v right into carry. Bit 7 is reset.
//
//	SRL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func (c *CPU) shiftRightLogical(v uint8) uint8 {
	r := v >> 1
	c.setFlags(r == 0, false, false, v&types.Bit0 != 0)
	return r
}
