package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

var (
	// Standard holds the descriptors of the unprefixed opcodes.
	Standard [256]Descriptor
	// Extended holds the descriptors of the CB-prefixed opcodes.
	Extended [256]Descriptor
	// Aliases holds alternative spellings of standard instructions. They
	// share the timing of the opcode they assemble to.
	Aliases []Descriptor
)

func init() {
	for i := 0; i < 256; i++ {
		opcode := uint8(i)

		def, ok := standard[opcode]
		if !ok {
			if opcode < 0x40 || opcode >= 0xC0 {
				panic(fmt.Sprintf("cpu: opcode %02X is not defined", opcode))
			}
			def = generated(opcode)
		}
		Standard[i] = build(opcode, false, def)
		Extended[i] = build(opcode, true, extended(opcode))
	}

	for _, alias := range aliases {
		base := Standard[alias.opcode]
		d := build(alias.opcode, false, definition{
			mnemonic: alias.mnemonic,
			op:       base.Op,
			length:   base.Length,
			cycles:   base.Cycles,
			read:     base.ReadCycle,
			write:    base.WriteCycle,
		})
		Aliases = append(Aliases, d)
	}
}

// Lookup returns the descriptor of an unprefixed opcode.
func Lookup(opcode uint8) *Descriptor {
	return &Standard[opcode]
}

// LookupExtended returns the descriptor of a CB-prefixed opcode.
func LookupExtended(opcode uint8) *Descriptor {
	return &Extended[opcode]
}

// build parses a definition into a Descriptor, panicking if the
// definition is malformed.
func build(opcode uint8, prefixed bool, def definition) Descriptor {
	d := Descriptor{
		Opcode:     opcode,
		Prefixed:   prefixed,
		Op:         def.op,
		Length:     def.length,
		Cycles:     def.cycles,
		ReadCycle:  def.read,
		WriteCycle: def.write,
	}

	if def.op != OpIllegal {
		name, left, right := split(def.mnemonic)
		d.Name = name
		d.Left = parseOperand(left, def.op, right == "")
		d.Right = parseOperand(right, def.op, false)
		d.Type = d.Left.Kind.left() | d.Right.Kind.right()
		d.Prefix, d.Suffix, d.Placeholder = splitPlaceholder(def.mnemonic)
	} else {
		d.Prefix = "DB " + bits.Hex8(opcode)
	}

	if err := validate(&d); err != nil {
		panic(fmt.Sprintf("cpu: invalid descriptor %02X %q: %v", opcode, def.mnemonic, err))
	}
	return d
}

func validate(d *Descriptor) error {
	if d.Length < 1 || d.Length > 3 {
		return fmt.Errorf("length %d", d.Length)
	}
	if d.Cycles == 0 {
		return fmt.Errorf("no cycles")
	}
	if d.ReadCycle > d.Cycles || d.WriteCycle > d.Cycles {
		return fmt.Errorf("access cycle outside of %d cycles", d.Cycles)
	}
	if d.Placeholder != PlaceholderNone && 1+d.Placeholder.Size() != d.Length {
		return fmt.Errorf("placeholder %s disagrees with length %d", d.Placeholder, d.Length)
	}
	if d.Prefixed && d.Length != 2 {
		return fmt.Errorf("prefixed length %d", d.Length)
	}
	return nil
}

// split splits a mnemonic into its name and up to two operands.
func split(mnemonic string) (name, left, right string) {
	mnemonic = strings.TrimSpace(mnemonic)
	name, rest, _ := strings.Cut(mnemonic, " ")
	left, right, _ = strings.Cut(rest, ",")
	return normalize(name), strings.TrimSpace(left), strings.TrimSpace(right)
}

// splitPlaceholder splits a template around its immediate data
// placeholder, if it has one.
func splitPlaceholder(mnemonic string) (prefix, suffix string, p Placeholder) {
	// check the wider placeholders first so that d16 isn't taken for d8
	for _, p := range []Placeholder{D16, A16, D8, A8, R8} {
		if i := strings.Index(mnemonic, p.String()); i >= 0 {
			return mnemonic[:i], mnemonic[i+len(p.String()):], p
		}
	}
	return mnemonic, "", PlaceholderNone
}

// parseOperand parses one operand of a catalog template. only is set
// when the operand is the instruction's sole operand.
func parseOperand(text string, op Op, only bool) Operand {
	o := Operand{Text: text}
	switch {
	case text == "":
		return o
	case strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")"):
		o.Kind = OperandAddress
		o.Text = text[1 : len(text)-1]
		o.Reg = regNames[normalize(o.Text)]
		return o
	}

	upper := normalize(text)
	if cond, ok := condNames[upper]; ok && branches(op) && (!only || op == OpRET) {
		o.Kind = OperandRegister
		o.Cond = cond
		return o
	}
	if reg, ok := regNames[upper]; ok {
		o.Kind = OperandRegister
		o.Reg = reg
		return o
	}

	o.Kind = OperandImmediate
	if n, err := bits.ParseNumber(text); err == nil {
		o.Value = uint8(n)
	}
	return o
}

func branches(op Op) bool {
	return op == OpJP || op == OpJR || op == OpCALL || op == OpRET
}
