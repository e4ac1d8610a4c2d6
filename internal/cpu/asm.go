package cpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

var (
	// ErrUnknownLabel is returned when an instruction refers to a label
	// that hasn't been defined.
	ErrUnknownLabel = errors.New("cpu: unknown label")
	// ErrBranchRange is returned when a relative jump target is out of reach.
	ErrBranchRange = errors.New("cpu: relative jump out of range")
)

// Assemble encodes a single instruction located at pc. Immediate data
// may be given as a number in any notation understood by bits.ParseNumber
// or as a label defined in labels.
func Assemble(line string, pc uint16, labels map[string]uint16) ([]byte, error) {
	d, err := FindOpcode(line)
	if err != nil {
		return nil, err
	}

	var out []byte
	if d.Prefixed {
		out = append(out, 0xCB)
	}
	out = append(out, d.Opcode)
	if d.Op == OpSTOP {
		return append(out, 0x00), nil
	}
	if d.Placeholder == PlaceholderNone {
		return out, nil
	}

	_, left, right := split(line)
	text, operand := left, d.Left
	if _, _, p := splitPlaceholder(d.Right.Text); p != PlaceholderNone {
		text, operand = right, d.Right
	}
	if operand.Kind == OperandAddress {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	raw, _ := placeholderValue(operand, text)

	value, err := resolve(raw, labels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", line, err)
	}

	switch d.Placeholder {
	case D16, A16:
		if value < -0x8000 || value > 0xFFFF {
			return nil, fmt.Errorf("%s: %w", line, bits.ErrOutOfRange)
		}
		hi, lo := bits.Split(uint16(value))
		return append(out, lo, hi), nil
	case R8:
		if d.Op == OpJR {
			value -= int(pc) + int(d.Length)
			if value < -128 || value > 127 {
				return nil, fmt.Errorf("%s: %w (%d)", line, ErrBranchRange, value)
			}
		}
		if value < -128 || value > 0xFF {
			return nil, fmt.Errorf("%s: %w", line, bits.ErrOutOfRange)
		}
	default:
		if d.Placeholder == A8 && value >= 0xFF00 && value <= 0xFFFF {
			value -= 0xFF00
		}
		if value < -128 || value > 0xFF {
			return nil, fmt.Errorf("%s: %w", line, bits.ErrOutOfRange)
		}
	}
	return append(out, uint8(value)), nil
}

func resolve(raw string, labels map[string]uint16) (int, error) {
	if n, err := bits.ParseNumber(raw); err == nil {
		return n, nil
	}
	if v, ok := labels[raw]; ok {
		return int(v), nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownLabel, raw)
}
