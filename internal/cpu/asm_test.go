package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

func TestAssemble(t *testing.T) {
	labels := map[string]uint16{"start": 0x0150, "far": 0x0300, "io": 0xFF44}
	tests := []struct {
		line     string
		pc       uint16
		expected []byte
	}{
		{"NOP", 0x0100, []byte{0x00}},
		{"JP start", 0x0100, []byte{0xC3, 0x50, 0x01}},
		{"LD SP,$FFFE", 0x0100, []byte{0x31, 0xFE, 0xFF}},
		{"LDH A,(io)", 0x0100, []byte{0xF0, 0x44}},
		{"LDH ($FF40),A", 0x0100, []byte{0xE0, 0x40}},
		{"JR start", 0x0140, []byte{0x18, 0x0E}},
		{"JR NZ,$0100", 0x0102, []byte{0x20, 0xFC}},
		{"STOP", 0x0100, []byte{0x10, 0x00}},
		{"RES 3,(HL)", 0x0100, []byte{0xCB, 0x9E}},
		{"LD HL,SP-1", 0x0100, []byte{0xF8, 0xFF}},
		{"CP %1010", 0x0100, []byte{0xFE, 0x0A}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Assemble(tt.line, tt.pc, labels)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("expected %s, got %s", bits.HexBytes(tt.expected), bits.HexBytes(got))
			}
		})
	}

	t.Run("hl increment", func(t *testing.T) {
		regLabels := map[string]uint16{"HLD": 0x1234, "HLI": 0x5678}
		for line, expected := range map[string]uint8{
			"LD (HLD),A": 0x32,
			"LD (HLI),A": 0x22,
			"LD A,(HLD)": 0x3A,
			"LD A,(HLI)": 0x2A,
		} {
			got, err := Assemble(line, 0x0100, regLabels)
			if err != nil {
				t.Errorf("%s: unexpected error: %v", line, err)
				continue
			}
			if len(got) != 1 || got[0] != expected {
				t.Errorf("%s: expected %02X, got %s", line, expected, bits.HexBytes(got))
			}
		}
	})

	errs := []struct {
		line string
		err  error
	}{
		{"JR far", ErrBranchRange},
		{"JP nowhere", ErrUnknownLabel},
		{"LD A,$100", bits.ErrOutOfRange},
		{"LDX A,B", ErrUnknownMnemonic},
	}
	for _, tt := range errs {
		if _, err := Assemble(tt.line, 0x0100, labels); !errors.Is(err, tt.err) {
			t.Errorf("%s: expected %v, got %v", tt.line, tt.err, err)
		}
	}
}

func TestDisassemble(t *testing.T) {
	bus := &testBus{}
	lines := []string{
		"LD A,$3C",
		"LDH ($47),A",
		"CALL $4000",
		"BIT 0,(HL)",
		"JR NZ,$0100",
		"DB $DD",
	}
	expected := []string{
		"LD A,$3C",
		"LDH ($47),A",
		"CALL $4000",
		"BIT 0,(HL)",
		"JR NZ,$0100",
		"DB $DD",
	}

	addr := uint16(0x0100)
	for _, line := range lines[:len(lines)-1] {
		b, err := Assemble(line, addr, nil)
		if err != nil {
			t.Fatalf("%s: %v", line, err)
		}
		copy(bus.mem[addr:], b)
		addr += uint16(len(b))
	}
	bus.mem[addr] = 0xDD

	out := DisassembleN(bus, 0x0100, len(expected))
	for i, line := range out {
		if line.Text != expected[i] {
			t.Errorf("expected %q, got %q", expected[i], line.Text)
		}
	}
	if out[3].Address != 0x0107 || len(out[3].Bytes) != 2 {
		t.Errorf("expected BIT at 0x0107 with 2 bytes, got 0x%04X %v", out[3].Address, out[3].Bytes)
	}
	if s := out[2].String(); s != "0104  CD 00 40  CALL $4000" {
		t.Errorf("unexpected line %q", s)
	}
}
