package bits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotNumber is returned when a string isn't a numeric literal.
	ErrNotNumber = errors.New("bits: not a number")
	// ErrOutOfRange is returned when a literal doesn't fit the requested width.
	ErrOutOfRange = errors.New("bits: number out of range")
)

// ParseNumber parses an integer literal in any of the notations used by
// Game Boy assemblers:
//
//	$FF, 0xFF, FFh  hexadecimal
//	%1010, 0b1010   binary
//	255             decimal
//
// An optional leading sign is accepted.
func ParseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotNumber
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, ErrNotNumber
	}

	base := 10
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "$"):
		base, s = 16, s[1:]
	case strings.HasPrefix(lower, "0x"):
		base, s = 16, s[2:]
	case strings.HasPrefix(lower, "%"):
		base, s = 2, s[1:]
	case strings.HasPrefix(lower, "0b") && len(s) > 2 && isBinary(s[2:]):
		base, s = 2, s[2:]
	case strings.HasSuffix(lower, "h") && isDigit(s[0]):
		base, s = 16, s[:len(s)-1]
	}

	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	if neg {
		return -int(n), nil
	}
	return int(n), nil
}

// IsNumber reports whether s parses as a numeric literal.
func IsNumber(s string) bool {
	_, err := ParseNumber(s)
	return err == nil
}

// ParseUint8 parses a literal that must fit in a byte. Negative values
// down to -128 are accepted and returned in two's complement.
func ParseUint8(s string) (uint8, error) {
	n, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if n < -128 || n > 0xFF {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return uint8(n), nil
}

// ParseUint16 parses a literal that must fit in 16 bits.
func ParseUint16(s string) (uint16, error) {
	n, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if n < -0x8000 || n > 0xFFFF {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return uint16(n), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBinary(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}
