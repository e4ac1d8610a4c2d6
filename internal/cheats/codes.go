package cheats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

// ErrInvalidCode is returned for codes that are neither Game Genie
// nor GameShark codes.
var ErrInvalidCode = errors.New("cheats: invalid code")

// Kind is the device a code is written for.
type Kind uint8

const (
	// GameGenie codes patch bytes read from cartridge ROM.
	GameGenie Kind = iota
	// GameShark codes write bytes to RAM once per frame.
	GameShark
)

func (k Kind) String() string {
	if k == GameShark {
		return "GameShark"
	}
	return "Game Genie"
}

// Code is a single decoded cheat code.
type Code struct {
	Kind    Kind
	Raw     string
	Address uint16
	NewData uint8

	// OldData is only compared when Compare is set (9 digit Game
	// Genie codes).
	OldData uint8
	Compare bool

	// Bank is the external RAM bank a GameShark code writes to.
	Bank uint8
}

func (c Code) String() string {
	s := fmt.Sprintf("%s %s: %s -> %s", c.Kind, c.Raw, bits.Hex16(c.Address), bits.Hex8(c.NewData))
	if c.Compare {
		s += " if " + bits.Hex8(c.OldData)
	}
	return s
}

// ParseCode decodes a Game Genie code (ABC-DEF or ABC-DEF-GHI) or a
// GameShark code (ABCDEFGH).
//
// Game Genie: AB is the new data, FCDE is the address XORed with
// 0xF000 and GI is the old data rotated left by 2 and XORed with 0xBA.
// H is unused.
//
// GameShark: AB is the external RAM bank, CD the new data and GHEF
// the address.
func ParseCode(code string) (Code, error) {
	raw := strings.ToUpper(strings.TrimSpace(code))
	switch {
	case len(raw) == 8 && !strings.Contains(raw, "-"):
		return parseGameShark(raw)
	case len(raw) == 7 || len(raw) == 11:
		return parseGameGenie(raw)
	}
	return Code{}, fmt.Errorf("%w: %q", ErrInvalidCode, code)
}

func parseHex(s string, bitSize int) (uint64, error) {
	return strconv.ParseUint(s, 16, bitSize)
}

func parseGameGenie(raw string) (Code, error) {
	c := Code{Kind: GameGenie, Raw: raw}
	digits := strings.ReplaceAll(raw, "-", "")
	if len(digits) != 6 && len(digits) != 9 || raw[3] != '-' || len(raw) == 11 && raw[7] != '-' {
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}

	v, err := parseHex(digits[0:2], 8)
	if err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}
	c.NewData = uint8(v)

	// CDEF -> FCDE
	cdef := digits[2:6]
	v, err = parseHex(cdef[3:4]+cdef[0:3], 16)
	if err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}
	c.Address = uint16(v) ^ 0xF000
	if c.Address >= 0x8000 {
		return c, fmt.Errorf("%w: %q patches %s, outside of ROM", ErrInvalidCode, raw, bits.Hex16(c.Address))
	}

	if len(digits) == 9 {
		v, err = parseHex(digits[6:7]+digits[8:9], 8)
		if err != nil {
			return c, fmt.Errorf("%w: %q", ErrInvalidCode, raw)
		}
		gi := uint8(v)
		c.OldData = (gi>>2 | gi<<6) ^ 0xBA
		c.Compare = true
	}
	return c, nil
}

func parseGameShark(raw string) (Code, error) {
	c := Code{Kind: GameShark, Raw: raw}
	v, err := parseHex(raw, 32)
	if err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidCode, raw)
	}
	c.Bank = uint8(v >> 24)
	c.NewData = uint8(v >> 16)
	// GHEF -> EFGH
	c.Address = uint16(v)>>8 | uint16(v)<<8
	return c, nil
}
