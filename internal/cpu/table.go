package cpu

import "strconv"

// definition is the raw catalog entry an instruction Descriptor is
// built from.
type definition struct {
	mnemonic string
	op       Op
	length   uint8
	cycles   uint8
	read     uint8
	write    uint8
}

// illegal marks an opcode with no instruction.
var illegal = definition{"", OpIllegal, 1, 1, 0, 0}

// standard lists every unprefixed opcode outside of the 0x40-0xBF
// load and arithmetic blocks, which are generated. Conditional
// instructions carry the cost of the untaken branch.
var standard = map[uint8]definition{
	0x00: {"NOP", OpNOP, 1, 1, 0, 0},
	0x01: {"LD BC,d16", OpLD, 3, 3, 0, 0},
	0x02: {"LD (BC),A", OpLD, 1, 2, 0, 2},
	0x03: {"INC BC", OpINC, 1, 2, 0, 0},
	0x04: {"INC B", OpINC, 1, 1, 0, 0},
	0x05: {"DEC B", OpDEC, 1, 1, 0, 0},
	0x06: {"LD B,d8", OpLD, 2, 2, 0, 0},
	0x07: {"RLCA", OpRLCA, 1, 1, 0, 0},
	0x08: {"LD (a16),SP", OpLD, 3, 5, 0, 5},
	0x09: {"ADD HL,BC", OpADD, 1, 2, 0, 0},
	0x0A: {"LD A,(BC)", OpLD, 1, 2, 2, 0},
	0x0B: {"DEC BC", OpDEC, 1, 2, 0, 0},
	0x0C: {"INC C", OpINC, 1, 1, 0, 0},
	0x0D: {"DEC C", OpDEC, 1, 1, 0, 0},
	0x0E: {"LD C,d8", OpLD, 2, 2, 0, 0},
	0x0F: {"RRCA", OpRRCA, 1, 1, 0, 0},

	0x10: {"STOP", OpSTOP, 2, 1, 0, 0},
	0x11: {"LD DE,d16", OpLD, 3, 3, 0, 0},
	0x12: {"LD (DE),A", OpLD, 1, 2, 0, 2},
	0x13: {"INC DE", OpINC, 1, 2, 0, 0},
	0x14: {"INC D", OpINC, 1, 1, 0, 0},
	0x15: {"DEC D", OpDEC, 1, 1, 0, 0},
	0x16: {"LD D,d8", OpLD, 2, 2, 0, 0},
	0x17: {"RLA", OpRLA, 1, 1, 0, 0},
	0x18: {"JR r8", OpJR, 2, 3, 0, 0},
	0x19: {"ADD HL,DE", OpADD, 1, 2, 0, 0},
	0x1A: {"LD A,(DE)", OpLD, 1, 2, 2, 0},
	0x1B: {"DEC DE", OpDEC, 1, 2, 0, 0},
	0x1C: {"INC E", OpINC, 1, 1, 0, 0},
	0x1D: {"DEC E", OpDEC, 1, 1, 0, 0},
	0x1E: {"LD E,d8", OpLD, 2, 2, 0, 0},
	0x1F: {"RRA", OpRRA, 1, 1, 0, 0},

	0x20: {"JR NZ,r8", OpJR, 2, 2, 0, 0},
	0x21: {"LD HL,d16", OpLD, 3, 3, 0, 0},
	0x22: {"LD (HL+),A", OpLDI, 1, 2, 0, 2},
	0x23: {"INC HL", OpINC, 1, 2, 0, 0},
	0x24: {"INC H", OpINC, 1, 1, 0, 0},
	0x25: {"DEC H", OpDEC, 1, 1, 0, 0},
	0x26: {"LD H,d8", OpLD, 2, 2, 0, 0},
	0x27: {"DAA", OpDAA, 1, 1, 0, 0},
	0x28: {"JR Z,r8", OpJR, 2, 2, 0, 0},
	0x29: {"ADD HL,HL", OpADD, 1, 2, 0, 0},
	0x2A: {"LD A,(HL+)", OpLDI, 1, 2, 2, 0},
	0x2B: {"DEC HL", OpDEC, 1, 2, 0, 0},
	0x2C: {"INC L", OpINC, 1, 1, 0, 0},
	0x2D: {"DEC L", OpDEC, 1, 1, 0, 0},
	0x2E: {"LD L,d8", OpLD, 2, 2, 0, 0},
	0x2F: {"CPL", OpCPL, 1, 1, 0, 0},

	0x30: {"JR NC,r8", OpJR, 2, 2, 0, 0},
	0x31: {"LD SP,d16", OpLD, 3, 3, 0, 0},
	0x32: {"LD (HL-),A", OpLDD, 1, 2, 0, 2},
	0x33: {"INC SP", OpINC, 1, 2, 0, 0},
	0x34: {"INC (HL)", OpINC, 1, 3, 2, 3},
	0x35: {"DEC (HL)", OpDEC, 1, 3, 2, 3},
	0x36: {"LD (HL),d8", OpLD, 2, 3, 0, 3},
	0x37: {"SCF", OpSCF, 1, 1, 0, 0},
	0x38: {"JR C,r8", OpJR, 2, 2, 0, 0},
	0x39: {"ADD HL,SP", OpADD, 1, 2, 0, 0},
	0x3A: {"LD A,(HL-)", OpLDD, 1, 2, 2, 0},
	0x3B: {"DEC SP", OpDEC, 1, 2, 0, 0},
	0x3C: {"INC A", OpINC, 1, 1, 0, 0},
	0x3D: {"DEC A", OpDEC, 1, 1, 0, 0},
	0x3E: {"LD A,d8", OpLD, 2, 2, 0, 0},
	0x3F: {"CCF", OpCCF, 1, 1, 0, 0},

	0x76: {"HALT", OpHALT, 1, 1, 0, 0},

	0xC0: {"RET NZ", OpRET, 1, 2, 0, 0},
	0xC1: {"POP BC", OpPOP, 1, 3, 3, 0},
	0xC2: {"JP NZ,a16", OpJP, 3, 3, 0, 0},
	0xC3: {"JP a16", OpJP, 3, 4, 0, 0},
	0xC4: {"CALL NZ,a16", OpCALL, 3, 3, 0, 0},
	0xC5: {"PUSH BC", OpPUSH, 1, 4, 0, 4},
	0xC6: {"ADD A,d8", OpADD, 2, 2, 0, 0},
	0xC7: {"RST 00H", OpRST, 1, 4, 0, 4},
	0xC8: {"RET Z", OpRET, 1, 2, 0, 0},
	0xC9: {"RET", OpRET, 1, 4, 3, 0},
	0xCA: {"JP Z,a16", OpJP, 3, 3, 0, 0},
	0xCB: {"PREFIX CB", OpPREFIX, 1, 1, 0, 0},
	0xCC: {"CALL Z,a16", OpCALL, 3, 3, 0, 0},
	0xCD: {"CALL a16", OpCALL, 3, 6, 0, 6},
	0xCE: {"ADC A,d8", OpADC, 2, 2, 0, 0},
	0xCF: {"RST 08H", OpRST, 1, 4, 0, 4},

	0xD0: {"RET NC", OpRET, 1, 2, 0, 0},
	0xD1: {"POP DE", OpPOP, 1, 3, 3, 0},
	0xD2: {"JP NC,a16", OpJP, 3, 3, 0, 0},
	0xD3: illegal,
	0xD4: {"CALL NC,a16", OpCALL, 3, 3, 0, 0},
	0xD5: {"PUSH DE", OpPUSH, 1, 4, 0, 4},
	0xD6: {"SUB d8", OpSUB, 2, 2, 0, 0},
	0xD7: {"RST 10H", OpRST, 1, 4, 0, 4},
	0xD8: {"RET C", OpRET, 1, 2, 0, 0},
	0xD9: {"RETI", OpRETI, 1, 4, 3, 0},
	0xDA: {"JP C,a16", OpJP, 3, 3, 0, 0},
	0xDB: illegal,
	0xDC: {"CALL C,a16", OpCALL, 3, 3, 0, 0},
	0xDD: illegal,
	0xDE: {"SBC A,d8", OpSBC, 2, 2, 0, 0},
	0xDF: {"RST 18H", OpRST, 1, 4, 0, 4},

	0xE0: {"LDH (a8),A", OpLDH, 2, 3, 0, 3},
	0xE1: {"POP HL", OpPOP, 1, 3, 3, 0},
	0xE2: {"LD (C),A", OpLD, 1, 2, 0, 2},
	0xE3: illegal,
	0xE4: illegal,
	0xE5: {"PUSH HL", OpPUSH, 1, 4, 0, 4},
	0xE6: {"AND d8", OpAND, 2, 2, 0, 0},
	0xE7: {"RST 20H", OpRST, 1, 4, 0, 4},
	0xE8: {"ADD SP,r8", OpADD, 2, 4, 0, 0},
	0xE9: {"JP HL", OpJP, 1, 1, 0, 0},
	0xEA: {"LD (a16),A", OpLD, 3, 4, 0, 4},
	0xEB: illegal,
	0xEC: illegal,
	0xED: illegal,
	0xEE: {"XOR d8", OpXOR, 2, 2, 0, 0},
	0xEF: {"RST 28H", OpRST, 1, 4, 0, 4},

	0xF0: {"LDH A,(a8)", OpLDH, 2, 3, 3, 0},
	0xF1: {"POP AF", OpPOP, 1, 3, 3, 0},
	0xF2: {"LD A,(C)", OpLD, 1, 2, 2, 0},
	0xF3: {"DI", OpDI, 1, 1, 0, 0},
	0xF4: illegal,
	0xF5: {"PUSH AF", OpPUSH, 1, 4, 0, 4},
	0xF6: {"OR d8", OpOR, 2, 2, 0, 0},
	0xF7: {"RST 30H", OpRST, 1, 4, 0, 4},
	0xF8: {"LD HL,SP+r8", OpLDHL, 2, 3, 0, 0},
	0xF9: {"LD SP,HL", OpLD, 1, 2, 0, 0},
	0xFA: {"LD A,(a16)", OpLD, 3, 4, 4, 0},
	0xFB: {"EI", OpEI, 1, 1, 0, 0},
	0xFC: illegal,
	0xFD: illegal,
	0xFE: {"CP d8", OpCP, 2, 2, 0, 0},
	0xFF: {"RST 38H", OpRST, 1, 4, 0, 4},
}

// operands8 is the register encoding shared by the load, arithmetic
// and CB-prefixed blocks.
var operands8 = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// arithmetic is the operation order of the 0x80-0xBF block.
var arithmetic = [8]struct {
	prefix string
	op     Op
}{
	{"ADD A,", OpADD}, {"ADC A,", OpADC}, {"SUB ", OpSUB}, {"SBC A,", OpSBC},
	{"AND ", OpAND}, {"XOR ", OpXOR}, {"OR ", OpOR}, {"CP ", OpCP},
}

// generated returns the definition of an opcode in the 0x40-0xBF range.
func generated(opcode uint8) definition {
	dst, src := operands8[opcode>>3&7], operands8[opcode&7]
	if opcode < 0x80 {
		switch {
		case dst == "(HL)":
			return definition{"LD (HL)," + src, OpLD, 1, 2, 0, 2}
		case src == "(HL)":
			return definition{"LD " + dst + ",(HL)", OpLD, 1, 2, 2, 0}
		}
		return definition{"LD " + dst + "," + src, OpLD, 1, 1, 0, 0}
	}

	a := arithmetic[opcode>>3&7]
	if src == "(HL)" {
		return definition{a.prefix + src, a.op, 1, 2, 2, 0}
	}
	return definition{a.prefix + src, a.op, 1, 1, 0, 0}
}

// extended returns the definition of a CB-prefixed opcode. The cycle
// counts include the prefix, and the opcode byte itself is fetched on
// the second cycle.
func extended(opcode uint8) definition {
	ops := [...]Op{OpRLC, OpRRC, OpRL, OpRR, OpSLA, OpSRA, OpSWAP, OpSRL}
	target := operands8[opcode&7]
	hl := target == "(HL)"

	var def definition
	switch group := opcode >> 6; group {
	case 0:
		op := ops[opcode>>3&7]
		def = definition{op.String() + " " + target, op, 2, 2, 0, 0}
	default:
		op := [...]Op{0, OpBIT, OpRES, OpSET}[group]
		def = definition{op.String() + " " + strconv.Itoa(int(opcode>>3&7)) + "," + target, op, 2, 2, 0, 0}
	}

	if hl {
		if def.op == OpBIT {
			def.cycles, def.read = 3, 3
		} else {
			def.cycles, def.read, def.write = 4, 3, 4
		}
	}
	return def
}

// aliases maps non-canonical mnemonics onto the opcode they assemble to.
var aliases = []struct {
	mnemonic string
	opcode   uint8
}{
	{"LD (HLI),A", 0x22},
	{"LD A,(HLI)", 0x2A},
	{"LD (HLD),A", 0x32},
	{"LD A,(HLD)", 0x3A},
	{"LDI (HL),A", 0x22},
	{"LDI A,(HL)", 0x2A},
	{"LDD (HL),A", 0x32},
	{"LDD A,(HL)", 0x3A},
	{"LD ($FF00+a8),A", 0xE0},
	{"LD A,($FF00+a8)", 0xF0},
	{"LD ($FF00+C),A", 0xE2},
	{"LD A,($FF00+C)", 0xF2},
	{"LDH (C),A", 0xE2},
	{"LDH A,(C)", 0xF2},
	{"LDHL SP,r8", 0xF8},
	{"JP (HL)", 0xE9},
}
