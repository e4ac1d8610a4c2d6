package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

// Registers represents the CPU registers. F holds the flags in its
// upper nibble.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16
}

func (r *Registers) AF() uint16 { return bits.Join(r.A, r.F) }
func (r *Registers) BC() uint16 { return bits.Join(r.B, r.C) }
func (r *Registers) DE() uint16 { return bits.Join(r.D, r.E) }
func (r *Registers) HL() uint16 { return bits.Join(r.H, r.L) }

func (r *Registers) setHL(v uint16) { r.H, r.L = bits.Split(v) }

// reg8 returns a pointer to an 8-bit register.
func (r *Registers) reg8(reg Reg) *uint8 {
	switch reg {
	case RegA:
		return &r.A
	case RegF:
		return &r.F
	case RegB:
		return &r.B
	case RegC:
		return &r.C
	case RegD:
		return &r.D
	case RegE:
		return &r.E
	case RegH:
		return &r.H
	case RegL:
		return &r.L
	}
	panic(fmt.Sprintf("cpu: invalid 8-bit register %d", reg))
}

func (r *Registers) reg16(reg Reg) uint16 {
	switch reg {
	case RegAF:
		return r.AF()
	case RegBC:
		return r.BC()
	case RegDE:
		return r.DE()
	case RegHL:
		return r.HL()
	case RegSP:
		return r.SP
	}
	panic(fmt.Sprintf("cpu: invalid 16-bit register %d", reg))
}

func (r *Registers) setReg16(reg Reg, v uint16) {
	switch reg {
	case RegAF:
		r.A, r.F = bits.Split(v & 0xFFF0)
	case RegBC:
		r.B, r.C = bits.Split(v)
	case RegDE:
		r.D, r.E = bits.Split(v)
	case RegHL:
		r.setHL(v)
	case RegSP:
		r.SP = v
	default:
		panic(fmt.Sprintf("cpu: invalid 16-bit register %d", reg))
	}
}

func (r Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X",
		r.AF(), r.BC(), r.DE(), r.HL(), r.SP, r.PC)
}
