package memory

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

type mapping struct {
	c     *Component
	delta uint16
}

// Bus routes the 16-bit address space to the components mapped on it.
// Addresses that nothing is mapped to read as 0xFF and ignore writes.
type Bus struct {
	table      [0x10000]*mapping
	components []*Component
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) track(c *Component) {
	for _, existing := range b.components {
		if existing == c {
			return
		}
	}
	b.components = append(b.components, c)
}

// Map maps c over its own window. Later mappings take precedence
// over earlier ones.
func (b *Bus) Map(c *Component) {
	if c.Size() == 0 {
		b.track(c)
		return
	}
	b.MapRange(c.Offset(), c.Offset()+uint16(c.Size()-1), c)
}

// MapRange maps the inclusive range lo-hi to c without translation,
// for components that intercept accesses outside of their storage
// window (e.g. cartridge bank registers written to ROM).
func (b *Bus) MapRange(lo, hi uint16, c *Component) {
	b.Mirror(lo, hi, c, 0)
}

// Mirror maps the inclusive range lo-hi to c, subtracting delta from
// the address before handing it to the component.
func (b *Bus) Mirror(lo, hi uint16, c *Component, delta uint16) {
	if hi < lo {
		panic(fmt.Sprintf("memory: invalid range %04X-%04X", lo, hi))
	}
	m := &mapping{c: c, delta: delta}
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		b.table[addr] = m
	}
	b.track(c)
}

// Lookup returns the component mapped at addr, or nil.
func (b *Bus) Lookup(addr uint16) *Component {
	if m := b.table[addr]; m != nil {
		return m.c
	}
	return nil
}

// Components returns every distinct component in the order it was
// first mapped.
func (b *Bus) Components() []*Component {
	return b.components
}

// Read reads the value at addr.
func (b *Bus) Read(addr uint16) uint8 {
	m := b.table[addr]
	if m == nil {
		return 0xFF
	}
	v, _ := m.c.Read(addr - m.delta)
	return v
}

// Write writes v to addr, returning whether the write was accepted.
func (b *Bus) Write(addr uint16, v uint8) bool {
	m := b.table[addr]
	if m == nil {
		return false
	}
	return m.c.Write(addr-m.delta, v)
}

// FastRead reads addr skipping every check of the mapped component.
func (b *Bus) FastRead(addr uint16) uint8 {
	m := b.table[addr]
	if m == nil {
		return 0xFF
	}
	return m.c.FastRead(addr - m.delta)
}

// Reset resets every mapped component.
func (b *Bus) Reset() {
	for _, c := range b.components {
		c.Reset()
	}
}

// Save appends the savestate of every mapped component to s.
func (b *Bus) Save(s *types.State) {
	for _, c := range b.components {
		c.Save(s)
	}
}

// Load restores every mapped component from s, stopping at the first
// component that fails to restore.
func (b *Bus) Load(s *types.State) error {
	for _, c := range b.components {
		if err := c.Load(s); err != nil {
			return err
		}
	}
	return nil
}
