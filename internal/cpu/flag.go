package cpu

type Flag = uint8

const (
	flagZero      Flag = 7
	flagSubtract  Flag = 6
	flagHalfCarry Flag = 5
	flagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= 1 << flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F |= 1 << flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// setFlags sets every flag at once. The lower nibble of F is always 0.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.setFlag(flagZero)
	}
	if subtract {
		c.setFlag(flagSubtract)
	}
	if halfCarry {
		c.setFlag(flagHalfCarry)
	}
	if carry {
		c.setFlag(flagCarry)
	}
}

// condition evaluates a branch condition against the flags.
func (c *CPU) condition(cond Cond) bool {
	switch cond {
	case CondNZ:
		return !c.isFlagSet(flagZero)
	case CondZ:
		return c.isFlagSet(flagZero)
	case CondNC:
		return !c.isFlagSet(flagCarry)
	case CondC:
		return c.isFlagSet(flagCarry)
	}
	return true
}
