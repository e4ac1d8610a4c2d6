package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// cursorField persists the in-flight instruction so that a savestate
// can be taken between any two machine cycles.
type cursorField struct {
	c *Cursor
}

const (
	cursorIdle uint8 = iota
	cursorStandard
	cursorExtended
	cursorInterrupt
)

func (f *cursorField) Name() string { return "cursor" }
func (f *cursorField) Size() int    { return 10 }

func (f *cursorField) Save(s *types.State) {
	kind, opcode := cursorIdle, uint8(0)
	if d := f.c.desc; d != nil {
		opcode = d.Opcode
		switch {
		case d.Op == OpINT:
			kind = cursorInterrupt
		case d.Prefixed:
			kind = cursorExtended
		default:
			kind = cursorStandard
		}
	}
	s.Write8(kind)
	s.Write8(opcode)
	s.Write16(f.c.pc)
	s.Write8(f.c.fetched)
	s.Write8(f.c.tick)
	s.Write8(f.c.extra)
	s.Write16(f.c.data)
	s.WriteBool(f.c.prefixed)
}

func (f *cursorField) Load(s *types.State) {
	kind, opcode := s.Read8(), s.Read8()
	switch kind {
	case cursorStandard:
		f.c.desc = &Standard[opcode]
	case cursorExtended:
		f.c.desc = &Extended[opcode]
	case cursorInterrupt:
		f.c.desc = &interruptDescriptor
	default:
		f.c.desc = nil
	}
	f.c.pc = s.Read16()
	f.c.fetched = s.Read8()
	f.c.tick = s.Read8()
	f.c.extra = s.Read8()
	f.c.data = s.Read16()
	f.c.prefixed = s.ReadBool()
}
