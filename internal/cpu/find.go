package cpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

// ErrUnknownMnemonic is returned when no instruction matches a mnemonic.
var ErrUnknownMnemonic = errors.New("cpu: unknown mnemonic")

// registerList holds the names that classify an operand as a register,
// including the HL increment and decrement spellings.
var registerList = func() map[string]bool {
	m := make(map[string]bool, len(regNames)+len(condNames))
	for name := range regNames {
		m[name] = true
	}
	for name := range condNames {
		m[name] = true
	}
	return m
}()

// classify determines the kind of an operand from its shape alone:
// parentheses denote an address, a register or condition name denotes a
// register, and anything else is immediate data (a number or a label).
func classify(text string) OperandKind {
	switch {
	case text == "":
		return OperandNone
	case strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")"):
		return OperandAddress
	case registerList[normalize(text)]:
		return OperandRegister
	}
	return OperandImmediate
}

// FindOpcode resolves a textual instruction such as "LD A,(HL+)" or
// "JP NZ,$0150" to its descriptor. Standard, Extended and Aliases are
// scanned in that order and the first structural match is returned.
func FindOpcode(text string) (*Descriptor, error) {
	name, left, right := split(text)
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMnemonic, text)
	}
	shape := classify(left).left() | classify(right).right()

	tables := [][]Descriptor{Standard[:], Extended[:], Aliases}
	for _, table := range tables {
		for i := range table {
			d := &table[i]
			if d.Op == OpIllegal || d.Name != name || d.Type != shape {
				continue
			}
			if matchOperand(d.Left, left) && matchOperand(d.Right, right) {
				return d, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMnemonic, text)
}

// matchOperand compares an operand of the catalog against one of the
// same kind in user input.
func matchOperand(o Operand, text string) bool {
	if o.Kind == OperandNone {
		return true
	}
	if o.Kind == OperandAddress {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}

	if _, _, p := splitPlaceholder(o.Text); p == PlaceholderNone {
		if o.Kind == OperandImmediate {
			if want, err := bits.ParseNumber(o.Text); err == nil {
				got, err := bits.ParseNumber(text)
				return err == nil && got == want
			}
		}
		return strings.EqualFold(o.Text, text)
	}

	_, ok := placeholderValue(o, text)
	return ok
}

// placeholderValue extracts the text standing in for the placeholder of
// o, e.g. "$12" from "SP+$12" against "SP+r8".
func placeholderValue(o Operand, text string) (string, bool) {
	pre, post, _ := splitPlaceholder(o.Text)
	upper := normalize(text)
	pre, post = normalize(pre), normalize(post)

	// a negative offset may be written as SP-2
	if strings.HasSuffix(pre, "+") && strings.HasPrefix(upper, pre[:len(pre)-1]+"-") {
		upper = pre + "-" + upper[len(pre):]
		text = upper
	}
	if !strings.HasPrefix(upper, pre) || !strings.HasSuffix(upper, post) || len(upper) < len(pre)+len(post) {
		return "", false
	}

	value := strings.TrimSpace(text[len(pre) : len(text)-len(post)])
	if registerList[normalize(value)] || !bits.IsNumber(value) && !isLabel(value) {
		return "", false
	}
	return value, true
}

// isLabel reports whether s is a valid assembler label.
func isLabel(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '.':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
