package cpu

import (
	"strings"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

// Op identifies the semantic action of an instruction. The CPU resolves
// it through a single switch when the instruction executes.
type Op uint8

const (
	OpIllegal Op = iota
	OpNOP
	OpLD
	OpLDI
	OpLDD
	OpLDH
	OpLDHL
	OpPUSH
	OpPOP
	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpXOR
	OpOR
	OpCP
	OpINC
	OpDEC
	OpDAA
	OpCPL
	OpSCF
	OpCCF
	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpJP
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST
	OpHALT
	OpSTOP
	OpDI
	OpEI
	OpPREFIX
	OpRLC
	OpRRC
	OpRL
	OpRR
	OpSLA
	OpSRA
	OpSWAP
	OpSRL
	OpBIT
	OpRES
	OpSET
	// OpINT is the interrupt dispatch sequence. It has no opcode.
	OpINT
)

var opNames = [...]string{
	"ILLEGAL", "NOP", "LD", "LDI", "LDD", "LDH", "LDHL", "PUSH", "POP",
	"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP", "INC", "DEC",
	"DAA", "CPL", "SCF", "CCF", "RLCA", "RRCA", "RLA", "RRA",
	"JP", "JR", "CALL", "RET", "RETI", "RST", "HALT", "STOP", "DI", "EI",
	"PREFIX", "RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL",
	"BIT", "RES", "SET", "INT",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "?"
}

// Type describes the shape of an instruction's operands.
type Type uint8

const (
	LeftImmediate Type = 1 << iota
	LeftAddress
	LeftRegister
	RightImmediate
	RightAddress
	RightRegister
)

// OperandKind classifies a single operand.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandAddress
	OperandImmediate
)

func (k OperandKind) left() Type {
	switch k {
	case OperandRegister:
		return LeftRegister
	case OperandAddress:
		return LeftAddress
	case OperandImmediate:
		return LeftImmediate
	}
	return 0
}

func (k OperandKind) right() Type {
	return k.left() << 3
}

// Reg names a register, register pair or addressing register.
type Reg uint8

const (
	RegNone Reg = iota
	RegA
	RegF
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegAF
	RegBC
	RegDE
	RegHL
	RegSP
	RegHLI // HL, incremented after the access
	RegHLD // HL, decremented after the access
)

var regNames = map[string]Reg{
	"A": RegA, "F": RegF, "B": RegB, "C": RegC, "D": RegD, "E": RegE, "H": RegH, "L": RegL,
	"AF": RegAF, "BC": RegBC, "DE": RegDE, "HL": RegHL, "SP": RegSP,
	"HL+": RegHLI, "HLI": RegHLI, "HL-": RegHLD, "HLD": RegHLD,
	"$FF00+C": RegC,
}

func (r Reg) wide() bool {
	return r >= RegAF && r <= RegSP
}

// Cond is a branch condition.
type Cond uint8

const (
	CondNone Cond = iota
	CondNZ
	CondZ
	CondNC
	CondC
)

var condNames = map[string]Cond{"NZ": CondNZ, "Z": CondZ, "NC": CondNC, "C": CondC}

// Placeholder is the kind of immediate data an instruction carries.
type Placeholder uint8

const (
	PlaceholderNone Placeholder = iota
	D8                          // 8-bit immediate data
	D16                         // 16-bit immediate data
	A8                          // 8-bit offset into the $FF00 page
	A16                         // 16-bit address
	R8                          // 8-bit signed value
)

var placeholders = [...]string{"", "d8", "d16", "a8", "a16", "r8"}

func (p Placeholder) String() string { return placeholders[p] }

// Size returns the number of operand bytes the placeholder occupies.
func (p Placeholder) Size() uint8 {
	switch p {
	case D16, A16:
		return 2
	case D8, A8, R8:
		return 1
	}
	return 0
}

// Operand is a single parsed operand of an instruction mnemonic.
type Operand struct {
	// Text is the operand as written, without parentheses.
	Text  string
	Kind  OperandKind
	Reg   Reg
	Cond  Cond
	Value uint8 // literal value, e.g. RST vectors and bit indices
}

// Descriptor is the static description of one instruction: its shape,
// its length in bytes and the machine cycles at which it accesses
// memory. Cycle indices start at 1, and a ReadCycle or WriteCycle of 0
// means the instruction performs no access of that kind.
type Descriptor struct {
	Opcode   uint8
	Prefixed bool
	Name     string
	Op       Op
	Type     Type

	Left, Right Operand

	Length     uint8
	Cycles     uint8
	ReadCycle  uint8
	WriteCycle uint8

	Placeholder Placeholder
	// Prefix and Suffix are the mnemonic either side of the placeholder.
	Prefix, Suffix string
}

// Mnemonic returns the instruction's template, e.g. "LD A,d8".
func (d *Descriptor) Mnemonic() string {
	if d.Placeholder == PlaceholderNone {
		return d.Prefix
	}
	return d.Prefix + d.Placeholder.String() + d.Suffix
}

// Format returns the mnemonic with value substituted for the
// placeholder. Relative jumps expect the resolved target address.
func (d *Descriptor) Format(value uint16) string {
	switch d.Placeholder {
	case PlaceholderNone:
		return d.Prefix
	case D16, A16:
		return d.Prefix + bits.Hex16(value) + d.Suffix
	case R8:
		if d.Op == OpJR {
			return d.Prefix + bits.Hex16(value) + d.Suffix
		}
	}
	return d.Prefix + bits.Hex8(uint8(value)) + d.Suffix
}

// FormatLabel returns the mnemonic with label substituted for the
// placeholder.
func (d *Descriptor) FormatLabel(label string) string {
	if d.Placeholder == PlaceholderNone {
		return d.Prefix
	}
	return d.Prefix + label + d.Suffix
}

// Conditional reports whether the instruction takes extra cycles when
// its condition holds.
func (d *Descriptor) Conditional() bool {
	return d.Left.Cond != CondNone
}

func (d *Descriptor) String() string {
	return d.Mnemonic()
}

// source returns the operand an arithmetic instruction reads from.
func (d *Descriptor) source() Operand {
	if d.Right.Kind != OperandNone {
		return d.Right
	}
	return d.Left
}

// memoryOperand returns the operand that names a memory address.
func (d *Descriptor) memoryOperand() Operand {
	if d.Left.Kind == OperandAddress {
		return d.Left
	}
	return d.Right
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
