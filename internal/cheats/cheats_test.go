package cheats

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/pkg/log"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		code     string
		expected Code
	}{
		{"3E1-23B-AF2", Code{Kind: GameGenie, Raw: "3E1-23B-AF2", Address: 0x4123, NewData: 0x3E, OldData: 0x12, Compare: true}},
		{"3e1-23b", Code{Kind: GameGenie, Raw: "3E1-23B", Address: 0x4123, NewData: 0x3E}},
		{"01FF23C1", Code{Kind: GameShark, Raw: "01FF23C1", Address: 0xC123, NewData: 0xFF, Bank: 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, err := ParseCode(tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, c)
			}
		})
	}

	for _, code := range []string{"", "12345", "3E1-23B-AF", "3E1123BXAF2", "ZZ1-23B-AF2", "0G000000", "001-000"} {
		if _, err := ParseCode(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("%q: expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func newEngine(t *testing.T) (*Engine, *cartridge.Cartridge, map[uint16]uint8) {
	t.Helper()
	rom := make([]byte, 0x10000)
	rom[0x147] = byte(cartridge.MBC1RAM)
	rom[0x148] = 0x01 // 4 banks
	rom[0x149] = 0x03 // 4 RAM banks
	for bank := 0; bank < 4; bank++ {
		rom[bank*0x4000+0x0123] = uint8(0x10 + bank)
	}
	rom[0x2123] = 0x12
	cart, err := cartridge.New(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written := make(map[uint16]uint8)
	return New(cart, writerFunc(func(addr uint16, v uint8) bool {
		written[addr] = v
		return true
	}), log.NewNullLogger()), cart, written
}

type writerFunc func(addr uint16, v uint8) bool

func (f writerFunc) Write(addr uint16, v uint8) bool { return f(addr, v) }

func TestEngine_GameGenie(t *testing.T) {
	e, cart, _ := newEngine(t)

	// matches bank 2 only
	if _, err := e.Add("compare", "3E1-23B-AF2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 0x2123 in ROM0, no compare
	if _, err := e.Add("rom0", "551-23D"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := e.Enable("compare"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for bank := 1; bank < 4; bank++ {
		expected := uint8(0x10 + bank)
		if bank == 2 {
			expected = 0x3E
		}
		if v := cart.ROMX.Data(bank)[0x0123]; v != expected {
			t.Errorf("bank %d: expected 0x%02X, got 0x%02X", bank, expected, v)
		}
	}

	e.Enable("rom0")
	if v := cart.ROM0.Data(0)[0x2123]; v != 0x55 {
		t.Errorf("expected 0x55, got 0x%02X", v)
	}

	e.Disable("compare")
	e.Disable("rom0")
	if v := cart.ROMX.Data(2)[0x0123]; v != 0x12 {
		t.Errorf("expected patch to be reverted, got 0x%02X", v)
	}
	if v := cart.ROM0.Data(0)[0x2123]; v != 0x12 {
		t.Errorf("expected patch to be reverted, got 0x%02X", v)
	}

	if err := e.Enable("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEngine_GameShark(t *testing.T) {
	e, cart, written := newEngine(t)
	e.Add("lives", "01FF23C1", "0299FFBF")

	e.Frame()
	if len(written) != 0 {
		t.Errorf("expected disabled cheat to do nothing, got %v", written)
	}

	e.Enable("lives")
	e.Frame()
	if written[0xC123] != 0xFF {
		t.Errorf("expected 0xFF at 0xC123, got 0x%02X", written[0xC123])
	}
	if v := cart.RAM.Data(2)[0x1FFF]; v != 0x99 {
		t.Errorf("expected 0x99 in RAM bank 2, got 0x%02X", v)
	}
}

func TestParse(t *testing.T) {
	text := `# Infinite lives
01FF23C1

# Moon jump
3E1-23B-AF2
551-23D
`
	cheats, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cheats) != 2 || cheats[0].Name != "Infinite lives" || len(cheats[1].Codes) != 2 {
		t.Fatalf("unexpected cheats %+v", cheats)
	}

	var buf bytes.Buffer
	if err := Write(&buf, cheats); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "# Infinite lives\n01FF23C1\n# Moon jump\n3E1-23B-AF2\n551-23D\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	if _, err := Parse(strings.NewReader("01FF23C1\n")); err == nil {
		t.Errorf("expected error for code without a name")
	}
}
