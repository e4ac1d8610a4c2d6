package memory

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// HeaderSize is the size of a component's savestate header.
//
//	0-3   identifier
//	4     read-only flag
//	5-6   offset
//	7-8   bytes per bank
//	9-10  bank count
//	11-12 bank select
const HeaderSize = 13

// ErrStructureMismatch is returned when a savestate block was produced
// by a component with a different layout.
var ErrStructureMismatch = errors.New("memory: savestate structure mismatch")

// Header is the decoded savestate header of a component.
type Header struct {
	ID         [4]byte
	ReadOnly   bool
	Offset     uint16
	Size       uint16
	Banks      uint16
	BankSelect uint16
}

func (c *Component) header() Header {
	return Header{
		ID:         c.id,
		ReadOnly:   c.readOnly,
		Offset:     c.offset,
		Size:       uint16(c.size),
		Banks:      uint16(len(c.banks)),
		BankSelect: uint16(c.bank),
	}
}

// ReadHeader decodes a component header from s.
func ReadHeader(s *types.State) (Header, error) {
	var h Header
	s.ReadData(h.ID[:])
	h.ReadOnly = s.ReadBool()
	h.Offset = s.Read16()
	h.Size = s.Read16()
	h.Banks = s.Read16()
	h.BankSelect = s.Read16()
	return h, s.Err()
}

func (h Header) write(s *types.State) {
	s.WriteData(h.ID[:])
	s.WriteBool(h.ReadOnly)
	s.Write16(h.Offset)
	s.Write16(h.Size)
	s.Write16(h.Banks)
	s.Write16(h.BankSelect)
}

// bodySize returns the number of bytes following the header.
func (c *Component) bodySize() int {
	n := 0
	for _, f := range c.fields {
		n += f.Size()
	}
	if c.persistRAM {
		n += c.size * len(c.banks)
	}
	return n
}

// Save appends the component's header, registered fields and, if
// enabled, the contents of every bank to s.
func (c *Component) Save(s *types.State) {
	c.header().write(s)
	for _, f := range c.fields {
		f.Save(s)
	}
	if c.persistRAM {
		for _, b := range c.banks {
			s.WriteData(b)
		}
	}
}

// Load restores the component from s. A block whose identifier, offset
// or bank geometry differs from the component is rejected with
// ErrStructureMismatch and the component is left untouched. A differing
// read-only flag is only reported.
func (c *Component) Load(s *types.State) error {
	h, err := ReadHeader(s)
	if err != nil {
		return fmt.Errorf("%s: reading header: %w", c.ID(), err)
	}

	live := c.header()
	if h.ID != live.ID || h.Offset != live.Offset || h.Size != live.Size || h.Banks != live.Banks {
		c.log.Warnf("%s: savestate header mismatch: have %q offset %04X %dx%d, got %q offset %04X %dx%d",
			c.ID(), live.ID[:], live.Offset, live.Banks, live.Size, h.ID[:], h.Offset, h.Banks, h.Size)
		return fmt.Errorf("%w: %s", ErrStructureMismatch, c.ID())
	}
	if h.ReadOnly != live.ReadOnly {
		c.log.Warnf("%s: savestate read-only flag mismatch (saved %t, live %t)", c.ID(), h.ReadOnly, live.ReadOnly)
	}
	if n := c.bodySize(); s.Remaining() < n {
		return fmt.Errorf("%s: %w: need %d bytes, have %d", c.ID(), types.ErrShortState, n, s.Remaining())
	}

	for _, f := range c.fields {
		f.Load(s)
	}
	if c.persistRAM {
		for _, b := range c.banks {
			s.ReadData(b)
		}
	}
	if int(h.BankSelect) >= len(c.banks) && len(c.banks) > 0 {
		c.log.Warnf("%s: savestate bank select %d out of range", c.ID(), h.BankSelect)
	}
	c.SetBank(int(h.BankSelect))

	if c.restorer != nil {
		c.restorer.OnRestore()
	}
	return s.Err()
}
