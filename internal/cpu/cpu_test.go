package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read(addr uint16) uint8 { return b.mem[addr] }

func (b *testBus) Write(addr uint16, v uint8) bool {
	b.mem[addr] = v
	return true
}

// assemble writes lines to bus at addr.
func assemble(t *testing.T, bus *testBus, addr uint16, lines ...string) {
	t.Helper()
	for _, line := range lines {
		b, err := Assemble(line, addr, nil)
		if err != nil {
			t.Fatalf("%s: %v", line, err)
		}
		copy(bus.mem[addr:], b)
		addr += uint16(len(b))
	}
}

func newTestCPU(t *testing.T, lines ...string) (*CPU, *testBus) {
	t.Helper()
	bus := &testBus{}
	assemble(t, bus, 0x0100, lines...)
	c := New(bus)
	c.Reset()
	return c, bus
}

func TestCPU_Program(t *testing.T) {
	tests := []struct {
		line   string
		cycles int
	}{
		{"LD A,$05", 2},
		{"LD B,A", 1},
		{"ADD A,B", 1},
		{"LD HL,$C000", 3},
		{"LD (HL),A", 2},
		{"INC (HL)", 3},
		{"LD A,(HL+)", 2},
		{"PUSH HL", 4},
		{"POP DE", 3},
		{"DEC HL", 2},
		{"SET 7,(HL)", 4},
		{"BIT 7,(HL)", 3},
		{"SWAP A", 2},
		{"LD ($C010),SP", 5},
		{"LDH ($80),A", 3},
	}
	lines := make([]string, len(tests))
	for i, tt := range tests {
		lines[i] = tt.line
	}
	c, bus := newTestCPU(t, lines...)

	for _, tt := range tests {
		if n := c.Step(); n != tt.cycles {
			t.Errorf("%s: expected %d cycles, got %d", tt.line, tt.cycles, n)
		}
	}

	if c.A != 0xB0 {
		t.Errorf("expected A to be 0xB0, got 0x%02X", c.A)
	}
	if c.DE() != 0xC001 {
		t.Errorf("expected DE to be 0xC001, got 0x%04X", c.DE())
	}
	if bus.mem[0xC000] != 0x8B {
		t.Errorf("expected 0x8B at 0xC000, got 0x%02X", bus.mem[0xC000])
	}
	if c.isFlagSet(flagZero) {
		t.Errorf("expected Z to be reset by SWAP of a non-zero value")
	}
	if bus.mem[0xC010] != 0xFE || bus.mem[0xC011] != 0xFF {
		t.Errorf("expected SP to be stored at 0xC010, got %02X %02X", bus.mem[0xC010], bus.mem[0xC011])
	}
	if bus.mem[0xFF80] != 0xB0 {
		t.Errorf("expected 0xB0 at 0xFF80, got 0x%02X", bus.mem[0xFF80])
	}
	if c.Cycles() != 40 {
		t.Errorf("expected 40 cycles, got %d", c.Cycles())
	}
}

func TestCPU_Branches(t *testing.T) {
	t.Run("jr", func(t *testing.T) {
		c, _ := newTestCPU(t, "XOR A", "JR NZ,$0110", "JR Z,$0110")
		c.Step()
		if n := c.Step(); n != 2 || c.PC != 0x0103 {
			t.Errorf("expected untaken JR in 2 cycles to 0x0103, got %d to 0x%04X", n, c.PC)
		}
		if n := c.Step(); n != 3 || c.PC != 0x0110 {
			t.Errorf("expected taken JR in 3 cycles to 0x0110, got %d to 0x%04X", n, c.PC)
		}
	})

	t.Run("jr backwards", func(t *testing.T) {
		c, _ := newTestCPU(t, "NOP", "JR $0100")
		c.Step()
		c.Step()
		if c.PC != 0x0100 {
			t.Errorf("expected PC to be 0x0100, got 0x%04X", c.PC)
		}
	})

	t.Run("call", func(t *testing.T) {
		c, bus := newTestCPU(t, "CALL $0200", "CALL NZ,$0200", "SCF", "CALL C,$0200")
		assemble(t, bus, 0x0200, "RET")

		if n := c.Step(); n != 6 || c.PC != 0x0200 {
			t.Errorf("expected CALL in 6 cycles to 0x0200, got %d to 0x%04X", n, c.PC)
		}
		if c.SP != 0xFFFC || bus.mem[0xFFFD] != 0x01 || bus.mem[0xFFFC] != 0x03 {
			t.Errorf("expected 0x0103 pushed to 0xFFFC, got SP 0x%04X %02X%02X", c.SP, bus.mem[0xFFFD], bus.mem[0xFFFC])
		}
		if n := c.Step(); n != 4 || c.PC != 0x0103 {
			t.Errorf("expected RET in 4 cycles to 0x0103, got %d to 0x%04X", n, c.PC)
		}

		c.F = 0 // NZ holds
		if n := c.Step(); n != 6 || c.PC != 0x0200 {
			t.Errorf("expected taken CALL NZ in 6 cycles, got %d to 0x%04X", n, c.PC)
		}
		c.Step()
		if c.PC != 0x0106 || c.SP != 0xFFFE {
			t.Errorf("expected return to 0x0106, got 0x%04X (SP 0x%04X)", c.PC, c.SP)
		}

		c.Step() // SCF
		if n := c.Step(); n != 6 || c.PC != 0x0200 {
			t.Errorf("expected taken CALL C in 6 cycles, got %d", n)
		}
	})

	t.Run("conditional call untaken", func(t *testing.T) {
		c, _ := newTestCPU(t, "SCF", "CALL NC,$0200")
		c.Step()
		if n := c.Step(); n != 3 || c.PC != 0x0104 || c.SP != 0xFFFE {
			t.Errorf("expected untaken CALL in 3 cycles, got %d to 0x%04X", n, c.PC)
		}
	})

	t.Run("conditional return", func(t *testing.T) {
		c, bus := newTestCPU(t, "CALL $0200")
		assemble(t, bus, 0x0200, "XOR A", "RET NZ", "RET Z")
		c.Step()
		c.Step()
		if n := c.Step(); n != 2 || c.PC != 0x0202 {
			t.Errorf("expected untaken RET in 2 cycles, got %d to 0x%04X", n, c.PC)
		}
		if n := c.Step(); n != 5 || c.PC != 0x0103 {
			t.Errorf("expected taken RET in 5 cycles, got %d to 0x%04X", n, c.PC)
		}
	})

	t.Run("rst", func(t *testing.T) {
		c, bus := newTestCPU(t, "RST $28")
		if n := c.Step(); n != 4 || c.PC != 0x0028 {
			t.Errorf("expected RST in 4 cycles to 0x0028, got %d to 0x%04X", n, c.PC)
		}
		if bus.mem[0xFFFC] != 0x01 || bus.mem[0xFFFD] != 0x01 {
			t.Errorf("expected 0x0101 pushed, got %02X%02X", bus.mem[0xFFFD], bus.mem[0xFFFC])
		}
	})

	t.Run("jp hl", func(t *testing.T) {
		c, _ := newTestCPU(t, "LD HL,$4000", "JP HL")
		c.Step()
		if n := c.Step(); n != 1 || c.PC != 0x4000 {
			t.Errorf("expected JP HL in 1 cycle to 0x4000, got %d to 0x%04X", n, c.PC)
		}
	})
}

func TestCPU_ALU(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		a     uint8
		f     uint8
	}{
		{"add carry", []string{"LD A,$01", "ADD A,$FF"}, 0x00, 0xB0},
		{"adc", []string{"SCF", "LD A,$0E", "ADC A,$01"}, 0x10, 0x20},
		{"sub borrow", []string{"LD A,$00", "SUB $01"}, 0xFF, 0x70},
		{"cp equal", []string{"LD A,$42", "CP $42"}, 0x42, 0xC0},
		{"and", []string{"LD A,$F0", "AND $0F"}, 0x00, 0xA0},
		{"daa", []string{"LD A,$45", "ADD A,$38", "DAA"}, 0x83, 0x00},
		{"cpl", []string{"LD A,$0F", "CPL"}, 0xF0, 0x60},
		{"ccf", []string{"SCF", "CCF"}, 0x01, 0x00},
		{"rlca resets z", []string{"XOR A", "RLCA"}, 0x00, 0x00},
		{"rla", []string{"SCF", "LD A,$80", "RLA"}, 0x01, 0x10},
		{"rl a sets z", []string{"LD A,$80", "RL A"}, 0x00, 0x90},
		{"srl", []string{"LD A,$01", "SRL A"}, 0x00, 0x90},
		{"pop af masks f", []string{"LD BC,$12FF", "PUSH BC", "POP AF"}, 0x12, 0xF0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, tt.lines...)
			c.F = 0
			for range tt.lines {
				c.Step()
			}
			if c.A != tt.a || c.F != tt.f {
				t.Errorf("expected A=%02X F=%02X, got A=%02X F=%02X", tt.a, tt.f, c.A, c.F)
			}
		})
	}

	t.Run("add hl", func(t *testing.T) {
		c, _ := newTestCPU(t, "LD HL,$0FFF", "LD BC,$0001", "ADD HL,BC")
		c.F = 0x80
		for i := 0; i < 3; i++ {
			c.Step()
		}
		if c.HL() != 0x1000 || c.F != 0xA0 {
			t.Errorf("expected HL=1000 F=A0, got HL=%04X F=%02X", c.HL(), c.F)
		}
	})

	t.Run("ld hl,sp+r8", func(t *testing.T) {
		c, _ := newTestCPU(t, "LD SP,$FFF8", "LD HL,SP+2", "ADD SP,-8")
		c.Step()
		if n := c.Step(); n != 3 || c.HL() != 0xFFFA {
			t.Errorf("expected HL=FFFA in 3 cycles, got %04X in %d", c.HL(), n)
		}
		if n := c.Step(); n != 4 || c.SP != 0xFFF0 {
			t.Errorf("expected SP=FFF0 in 4 cycles, got %04X in %d", c.SP, n)
		}
	})
}

func TestCPU_Interrupts(t *testing.T) {
	t.Run("ei delay", func(t *testing.T) {
		c, bus := newTestCPU(t, "EI", "NOP", "NOP")
		bus.mem[types.IE] = 0x01
		bus.mem[types.IF] = 0x01

		c.Step()
		if c.IME() {
			t.Errorf("expected IME to be disabled directly after EI")
		}
		c.Step()
		if !c.IME() || c.PC != 0x0102 {
			t.Errorf("expected the instruction after EI to run, PC 0x%04X", c.PC)
		}

		if n := c.Step(); n != 5 {
			t.Errorf("expected dispatch in 5 cycles, got %d", n)
		}
		if c.PC != 0x0040 || c.IME() {
			t.Errorf("expected jump to 0x0040 with IME reset, got 0x%04X", c.PC)
		}
		if bus.mem[types.IF] != 0x00 {
			t.Errorf("expected IF to be acknowledged, got 0x%02X", bus.mem[types.IF])
		}
		if bus.mem[0xFFFD] != 0x01 || bus.mem[0xFFFC] != 0x02 {
			t.Errorf("expected 0x0102 pushed, got %02X%02X", bus.mem[0xFFFD], bus.mem[0xFFFC])
		}
	})

	t.Run("priority", func(t *testing.T) {
		c, bus := newTestCPU(t, "NOP")
		c.ime = true
		bus.mem[types.IE] = 0x1F
		bus.mem[types.IF] = 0x14
		c.Step()
		if c.PC != 0x0050 || bus.mem[types.IF] != 0x10 {
			t.Errorf("expected timer interrupt, got PC 0x%04X IF 0x%02X", c.PC, bus.mem[types.IF])
		}
	})

	t.Run("reti", func(t *testing.T) {
		c, bus := newTestCPU(t, "DI", "CALL $0200")
		assemble(t, bus, 0x0200, "RETI")
		c.Step()
		c.Step()
		c.Step()
		if !c.IME() || c.PC != 0x0104 {
			t.Errorf("expected RETI to enable IME and return to 0x0104, got 0x%04X", c.PC)
		}
	})

	t.Run("halt", func(t *testing.T) {
		c, bus := newTestCPU(t, "HALT", "LD A,$01")
		bus.mem[types.IE] = 0x04
		c.Step()
		for i := 0; i < 10; i++ {
			if n := c.Step(); n != 1 || !c.Halted() || c.PC != 0x0101 {
				t.Fatalf("expected to remain halted, PC 0x%04X", c.PC)
			}
		}

		bus.mem[types.IF] = 0x04
		c.Step()
		if c.Halted() || c.A != 0x01 {
			t.Errorf("expected to wake and continue without dispatch, A 0x%02X", c.A)
		}
	})

	t.Run("stop", func(t *testing.T) {
		c, bus := newTestCPU(t, "STOP", "LD A,$02")
		c.Step()
		if !c.Halted() || c.PC != 0x0102 {
			t.Errorf("expected STOP to skip its padding byte, PC 0x%04X", c.PC)
		}
		bus.mem[types.IE], bus.mem[types.IF] = 0x10, 0x10
		c.Step()
		if c.A != 0x02 {
			t.Errorf("expected execution to resume after STOP, A 0x%02X", c.A)
		}
	})

	t.Run("not between prefix and opcode", func(t *testing.T) {
		c, bus := newTestCPU(t, "SWAP A")
		c.A = 0x12
		c.ime = true
		bus.mem[types.IE] = 0x01
		c.Tick() // prefix
		bus.mem[types.IF] = 0x01
		c.Tick()
		if c.A != 0x21 || c.PC != 0x0102 {
			t.Errorf("expected SWAP A to complete, A 0x%02X PC 0x%04X", c.A, c.PC)
		}
	})
}

func TestCPU_Illegal(t *testing.T) {
	var buf bytes.Buffer
	bus := &testBus{}
	bus.mem[0x0100] = 0xD3
	c := New(bus, WithLogger(log.New(log.WithOutput(&buf))))
	c.Reset()

	if n := c.Step(); n != 1 || c.PC != 0x0101 {
		t.Errorf("expected illegal opcode to take 1 cycle, got %d to 0x%04X", n, c.PC)
	}
	if !strings.Contains(buf.String(), "illegal opcode $D3") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestCPU_State(t *testing.T) {
	lines := []string{"LD SP,$D000", "LD A,$10", "CALL $0200", "INC A"}
	sub := []string{"SET 1,A", "RET"}

	reference, refBus := newTestCPU(t, lines...)
	assemble(t, refBus, 0x0200, sub...)
	for i := 0; i < 20; i++ {
		reference.Tick()
	}

	// save in the middle of the CALL
	c, bus := newTestCPU(t, lines...)
	assemble(t, bus, 0x0200, sub...)
	for i := 0; i < 8; i++ {
		c.Tick()
	}
	if c.Cursor().Retired() {
		t.Fatalf("expected to be mid instruction")
	}
	s := types.NewState()
	c.State().Save(s)

	restored := New(bus)
	s.ResetPosition()
	if err := restored.State().Load(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 12; i++ {
		restored.Tick()
	}

	if restored.Registers != reference.Registers {
		t.Errorf("expected %s, got %s", reference.Registers, restored.Registers)
	}
	if restored.Cycles() != reference.Cycles() {
		t.Errorf("expected %d cycles, got %d", reference.Cycles(), restored.Cycles())
	}
	if restored.A != 0x13 {
		t.Errorf("expected A to be 0x13, got 0x%02X", restored.A)
	}
}
