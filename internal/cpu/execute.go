package cpu

import "github.com/thelolagemann/gbcore/pkg/bits"

// execute applies the effect of d. Memory reads have already been
// latched into mdata, and memory writes are staged in waddr and wdata
// for the write cycle.
func (c *CPU) execute(d *Descriptor) {
	switch d.Op {
	case OpNOP, OpPREFIX:
	case OpIllegal:
		c.log.Warnf("illegal opcode %s at %s", bits.Hex8(d.Opcode), bits.Hex16(c.cursor.PC()))

	case OpLD, OpLDI, OpLDD, OpLDH:
		c.load(d)
	case OpLDHL:
		c.setHL(c.addSPSigned(c.cursor.Data8()))
	case OpPUSH:
		c.wdata = c.reg16(d.Left.Reg)
	case OpPOP:
		c.setReg16(d.Left.Reg, c.mdata)

	case OpADD:
		switch d.Left.Reg {
		case RegHL:
			c.setHL(c.addUint16(c.HL(), c.reg16(d.Right.Reg)))
		case RegSP:
			c.SP = c.addSPSigned(c.cursor.Data8())
		default:
			c.add(c.value8(d, d.source()), false)
		}
	case OpADC:
		c.add(c.value8(d, d.source()), true)
	case OpSUB:
		c.sub(c.value8(d, d.source()), false)
	case OpSBC:
		c.sub(c.value8(d, d.source()), true)
	case OpAND:
		c.and(c.value8(d, d.source()))
	case OpXOR:
		c.xor(c.value8(d, d.source()))
	case OpOR:
		c.or(c.value8(d, d.source()))
	case OpCP:
		c.compare(c.value8(d, d.source()))
	case OpINC, OpDEC:
		c.incDec(d)

	case OpDAA:
		c.decimalAdjust()
	case OpCPL:
		c.A = ^c.A
		c.setFlag(flagSubtract)
		c.setFlag(flagHalfCarry)
	case OpSCF:
		c.setFlags(c.isFlagSet(flagZero), false, false, true)
	case OpCCF:
		c.setFlags(c.isFlagSet(flagZero), false, false, !c.isFlagSet(flagCarry))

	// the accumulator rotates always reset Z
	case OpRLCA:
		c.A = c.rotateLeftCarry(c.A)
		c.clearFlag(flagZero)
	case OpRRCA:
		c.A = c.rotateRightCarry(c.A)
		c.clearFlag(flagZero)
	case OpRLA:
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(flagZero)
	case OpRRA:
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(flagZero)

	case OpJP:
		if d.Left.Reg == RegHL {
			c.PC = c.HL()
		} else if c.condition(d.Left.Cond) {
			c.PC = c.cursor.Data16()
			c.taken(d, 1)
		}
	case OpJR:
		if c.condition(d.Left.Cond) {
			c.PC = uint16(int32(c.PC) + int32(int8(c.cursor.Data8())))
			c.taken(d, 1)
		}
	case OpCALL:
		if !d.Conditional() {
			c.wdata = c.PC
			c.PC = c.cursor.Data16()
		} else if c.condition(d.Left.Cond) {
			c.taken(d, 3)
		}
	case OpRET:
		if !d.Conditional() {
			c.PC = c.mdata
		} else if c.condition(d.Left.Cond) {
			c.taken(d, 3)
		}
	case OpRETI:
		c.PC = c.mdata
		c.ime = true
	case OpRST:
		c.wdata = c.PC
		c.PC = uint16(d.Left.Value)

	case OpHALT:
		c.halted = true
	case OpSTOP:
		// the byte following STOP is skipped
		c.halted = true
		c.PC++
	case OpDI:
		c.ime, c.imeDelay = false, false
	case OpEI:
		c.imeDelay = true

	case OpRLC:
		c.modify(d, c.rotateLeftCarry)
	case OpRRC:
		c.modify(d, c.rotateRightCarry)
	case OpRL:
		c.modify(d, c.rotateLeftThroughCarry)
	case OpRR:
		c.modify(d, c.rotateRightThroughCarry)
	case OpSLA:
		c.modify(d, c.shiftLeftArithmetic)
	case OpSRA:
		c.modify(d, c.shiftRightArithmetic)
	case OpSWAP:
		c.modify(d, c.swap)
	case OpSRL:
		c.modify(d, c.shiftRightLogical)
	case OpBIT:
		c.testBit(c.value8(d, d.source()), d.Left.Value)
	case OpRES:
		c.modify(d, func(v uint8) uint8 { return bits.Reset(v, d.Left.Value) })
	case OpSET:
		c.modify(d, func(v uint8) uint8 { return bits.Set(v, d.Left.Value) })

	case OpINT:
		c.interrupt()
	}
}

// taken extends a conditional instruction by the cost of its branch.
func (c *CPU) taken(d *Descriptor, n uint8) {
	if d.Conditional() {
		c.cursor.AddCycles(n)
	}
}

// value8 returns the 8-bit value of o.
func (c *CPU) value8(d *Descriptor, o Operand) uint8 {
	switch o.Kind {
	case OperandRegister:
		return *c.reg8(o.Reg)
	case OperandAddress:
		return uint8(c.mdata)
	}
	return c.cursor.Data8()
}

// store8 stores v in o, staging the write if o is in memory.
func (c *CPU) store8(d *Descriptor, o Operand, v uint8) {
	if o.Kind == OperandAddress {
		c.waddr = c.address(d, o)
		c.wdata = uint16(v)
		return
	}
	*c.reg8(o.Reg) = v
}

// modify applies fn to the target of a CB-prefixed instruction.
func (c *CPU) modify(d *Descriptor, fn func(uint8) uint8) {
	o := d.source()
	c.store8(d, o, fn(c.value8(d, o)))
}

func (c *CPU) load(d *Descriptor) {
	dst, src := d.Left, d.Right
	switch {
	case dst.Kind == OperandRegister && dst.Reg.wide():
		if src.Kind == OperandImmediate {
			c.setReg16(dst.Reg, c.cursor.Data16())
		} else {
			c.setReg16(dst.Reg, c.reg16(src.Reg))
		}
	case dst.Kind == OperandAddress && src.Reg == RegSP:
		c.waddr = c.cursor.Data16()
		c.wdata = c.SP
	default:
		c.store8(d, dst, c.value8(d, src))
	}

	switch {
	case dst.Reg == RegHLI || src.Reg == RegHLI:
		c.setHL(c.HL() + 1)
	case dst.Reg == RegHLD || src.Reg == RegHLD:
		c.setHL(c.HL() - 1)
	}
}

func (c *CPU) incDec(d *Descriptor) {
	o := d.Left
	if o.Kind == OperandRegister && o.Reg.wide() {
		v := c.reg16(o.Reg)
		if d.Op == OpINC {
			v++
		} else {
			v--
		}
		c.setReg16(o.Reg, v)
		return
	}

	v := c.value8(d, o)
	if d.Op == OpINC {
		v = c.increment(v)
	} else {
		v = c.decrement(v)
	}
	c.store8(d, o, v)
}
