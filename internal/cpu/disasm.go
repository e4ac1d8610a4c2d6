package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/bits"
)

// Reader is the memory interface the disassembler reads from.
type Reader interface {
	Read(addr uint16) uint8
}

// Line is a single disassembled instruction.
type Line struct {
	Address    uint16
	Bytes      []byte
	Descriptor *Descriptor
	Text       string
}

func (l Line) String() string {
	return fmt.Sprintf("%04X  %-8s  %s", l.Address, bits.HexBytes(l.Bytes), l.Text)
}

// Disassemble decodes the instruction at addr, returning it along with
// the address of the following instruction. Relative jump targets are
// resolved to absolute addresses.
func Disassemble(r Reader, addr uint16) (Line, uint16) {
	line := Line{Address: addr}
	opcode := r.Read(addr)
	line.Bytes = append(line.Bytes, opcode)

	d := Lookup(opcode)
	if d.Op == OpPREFIX {
		cb := r.Read(addr + 1)
		line.Bytes = append(line.Bytes, cb)
		d = LookupExtended(cb)
	}
	line.Descriptor = d

	for uint8(len(line.Bytes)) < d.Length {
		line.Bytes = append(line.Bytes, r.Read(addr+uint16(len(line.Bytes))))
	}
	next := addr + uint16(d.Length)

	var value uint16
	switch d.Placeholder.Size() {
	case 1:
		value = uint16(line.Bytes[len(line.Bytes)-1])
	case 2:
		value = bits.Join(line.Bytes[2], line.Bytes[1])
	}
	if d.Op == OpJR {
		value = next + uint16(int8(value))
	}
	line.Text = d.Format(value)

	return line, next
}

// DisassembleN decodes n consecutive instructions starting at addr.
func DisassembleN(r Reader, addr uint16, n int) []Line {
	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		var line Line
		line, addr = Disassemble(r, addr)
		lines = append(lines, line)
	}
	return lines
}
