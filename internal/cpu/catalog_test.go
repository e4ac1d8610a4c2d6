package cpu

import (
	"errors"
	"testing"
)

func TestCatalog_Timing(t *testing.T) {
	// untaken cost of every unprefixed instruction. 0 marks opcodes
	// whose cost isn't fixed or that have no instruction
	timings := []uint8{
		1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1,
		0, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 2, 2, 2, 2, 2, 0, 2, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4,
		2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4,
		3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4,
		3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4,
	}
	for i, timing := range timings {
		if timing == 0 {
			continue
		}
		if d := Lookup(uint8(i)); d.Cycles != timing {
			t.Errorf("%02X %s: expected %d cycles, got %d", i, d, timing, d.Cycles)
		}
	}

	for i := 0; i < 256; i++ {
		d := LookupExtended(uint8(i))
		expected := uint8(2)
		if i&7 == 6 {
			expected = 4
			if i>>6 == 1 {
				expected = 3
			}
		}
		if d.Cycles != expected {
			t.Errorf("CB %02X %s: expected %d cycles, got %d", i, d, expected, d.Cycles)
		}
	}
}

func TestCatalog_Descriptors(t *testing.T) {
	illegal := map[uint8]bool{
		0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true, 0xEB: true,
		0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
	}
	for i := 0; i < 256; i++ {
		d := &Standard[i]
		if d.Opcode != uint8(i) || d.Prefixed {
			t.Errorf("%02X: unexpected opcode %02X (prefixed %v)", i, d.Opcode, d.Prefixed)
		}
		if (d.Op == OpIllegal) != illegal[uint8(i)] {
			t.Errorf("%02X: expected illegal %v, got %s", i, illegal[uint8(i)], d.Op)
		}
		if d.Op == OpIllegal && (d.Length != 1 || d.Cycles != 1) {
			t.Errorf("%02X: expected illegal opcode to take 1 byte and 1 cycle", i)
		}
		if d.Placeholder != PlaceholderNone && d.Length != 1+d.Placeholder.Size() {
			t.Errorf("%02X %s: length %d disagrees with placeholder", i, d, d.Length)
		}

		e := &Extended[i]
		if e.Opcode != uint8(i) || !e.Prefixed || e.Length != 2 {
			t.Errorf("CB %02X: unexpected descriptor %+v", i, e)
		}
	}

	tests := []struct {
		opcode   uint8
		mnemonic string
		read     uint8
		write    uint8
	}{
		{0x08, "LD (a16),SP", 0, 5},
		{0x34, "INC (HL)", 2, 3},
		{0x7E, "LD A,(HL)", 2, 0},
		{0x70, "LD (HL),B", 0, 2},
		{0xC1, "POP BC", 3, 0},
		{0xC5, "PUSH BC", 0, 4},
		{0xCD, "CALL a16", 0, 6},
		{0xE0, "LDH (a8),A", 0, 3},
		{0xF0, "LDH A,(a8)", 3, 0},
		{0xF8, "LD HL,SP+r8", 0, 0},
	}
	for _, tt := range tests {
		d := Lookup(tt.opcode)
		if d.Mnemonic() != tt.mnemonic {
			t.Errorf("%02X: expected %q, got %q", tt.opcode, tt.mnemonic, d.Mnemonic())
		}
		if d.ReadCycle != tt.read || d.WriteCycle != tt.write {
			t.Errorf("%s: expected read %d write %d, got %d %d", tt.mnemonic, tt.read, tt.write, d.ReadCycle, d.WriteCycle)
		}
	}

	if d := LookupExtended(0x7E); d.Mnemonic() != "BIT 7,(HL)" || d.ReadCycle != 3 || d.WriteCycle != 0 {
		t.Errorf("unexpected BIT 7,(HL) descriptor %+v", d)
	}
	if d := LookupExtended(0xC6); d.Mnemonic() != "SET 0,(HL)" || d.ReadCycle != 3 || d.WriteCycle != 4 {
		t.Errorf("unexpected SET 0,(HL) descriptor %+v", d)
	}
	if d := Lookup(0xDD); d.Prefix != "DB $DD" {
		t.Errorf("expected illegal opcode to format as DB $DD, got %q", d.Prefix)
	}
}

func TestCatalog_Operands(t *testing.T) {
	tests := []struct {
		opcode uint8
		typ    Type
		left   Operand
		right  Operand
	}{
		{0x20, LeftRegister | RightImmediate, Operand{Text: "NZ", Kind: OperandRegister, Cond: CondNZ}, Operand{Text: "r8", Kind: OperandImmediate}},
		{0x38, LeftRegister | RightImmediate, Operand{Text: "C", Kind: OperandRegister, Cond: CondC}, Operand{Text: "r8", Kind: OperandImmediate}},
		{0xD8, LeftRegister, Operand{Text: "C", Kind: OperandRegister, Cond: CondC}, Operand{}},
		{0x22, LeftAddress | RightRegister, Operand{Text: "HL+", Kind: OperandAddress, Reg: RegHLI}, Operand{Text: "A", Kind: OperandRegister, Reg: RegA}},
		{0xE2, LeftAddress | RightRegister, Operand{Text: "C", Kind: OperandAddress, Reg: RegC}, Operand{Text: "A", Kind: OperandRegister, Reg: RegA}},
		{0xFF, LeftImmediate, Operand{Text: "38H", Kind: OperandImmediate, Value: 0x38}, Operand{}},
		{0x81, LeftRegister | RightRegister, Operand{Text: "A", Kind: OperandRegister, Reg: RegA}, Operand{Text: "C", Kind: OperandRegister, Reg: RegC}},
	}
	for _, tt := range tests {
		d := Lookup(tt.opcode)
		if d.Type != tt.typ {
			t.Errorf("%s: expected type %06b, got %06b", d, tt.typ, d.Type)
		}
		if d.Left != tt.left || d.Right != tt.right {
			t.Errorf("%s: expected %+v %+v, got %+v %+v", d, tt.left, tt.right, d.Left, d.Right)
		}
	}

	if d := LookupExtended(0x5F); d.Left.Value != 3 || d.Right.Reg != RegA {
		t.Errorf("expected BIT 3,A, got %+v", d)
	}
}

func TestFindOpcode(t *testing.T) {
	t.Run("canonical", func(t *testing.T) {
		for _, table := range [][]Descriptor{Standard[:], Extended[:]} {
			for i := range table {
				d := &table[i]
				if d.Op == OpIllegal {
					continue
				}
				text := d.Format(0x12)
				got, err := FindOpcode(text)
				if err != nil {
					t.Errorf("%s: %v", text, err)
					continue
				}
				if got.Opcode != d.Opcode || got.Prefixed != d.Prefixed {
					t.Errorf("%s: expected %02X, got %02X", text, d.Opcode, got.Opcode)
				}
			}
		}
	})

	tests := []struct {
		text     string
		opcode   uint8
		prefixed bool
	}{
		{"ld a,(hl+)", 0x2A, false},
		{"LD (HLI),A", 0x22, false},
		{"LD (HLD),A", 0x32, false},
		{"LD A,(HLI)", 0x2A, false},
		{"LD A,(HLD)", 0x3A, false},
		{"LD (HL+),A", 0x22, false},
		{"LD (HL-),A", 0x32, false},
		{"ld a,(hl-)", 0x3A, false},
		{"LDD A,(HL)", 0x3A, false},
		{"LD ($FF00+$44),A", 0xE0, false},
		{"LD A,($FF00+C)", 0xF2, false},
		{"LDH (C),A", 0xE2, false},
		{"LDHL SP,$05", 0xF8, false},
		{"LD HL,SP+5", 0xF8, false},
		{"LD HL,SP-2", 0xF8, false},
		{"JP (HL)", 0xE9, false},
		{"JP NZ,loop", 0xC2, false},
		{"RST $38", 0xFF, false},
		{"RST 8", 0xCF, false},
		{"LD (label),A", 0xEA, false},
		{"BIT 7,(HL)", 0x7E, true},
		{"res 0, a", 0x87, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := FindOpcode(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Opcode != tt.opcode || d.Prefixed != tt.prefixed {
				t.Errorf("expected %02X (prefixed %v), got %02X (prefixed %v)", tt.opcode, tt.prefixed, d.Opcode, d.Prefixed)
			}
		})
	}

	for _, text := range []string{"", "FOO A,B", "LD A,Q,", "LD (HL),(HL)", "RST 1", "BIT 8,A", "LD SP,BC"} {
		if _, err := FindOpcode(text); !errors.Is(err, ErrUnknownMnemonic) {
			t.Errorf("%q: expected ErrUnknownMnemonic, got %v", text, err)
		}
	}
}
