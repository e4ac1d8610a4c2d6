package cpu

// interruptDescriptor is the pseudo instruction the CPU executes when
// dispatching an interrupt: two idle cycles, two cycles pushing PC and
// one cycle jumping to the vector.
var interruptDescriptor = Descriptor{
	Name:       "INT",
	Op:         OpINT,
	Length:     1,
	Cycles:     5,
	WriteCycle: 5,
	Prefix:     "INT",
}

// Cursor tracks the progress of the instruction being executed. The
// CPU clocks it once per machine cycle and consults its predicates to
// decide when to fetch operands, access memory and execute.
type Cursor struct {
	desc    *Descriptor
	pc      uint16 // address the instruction began at
	fetched uint8  // instruction bytes fetched so far
	tick    uint8
	extra   uint8
	data    uint16 // immediate operand, little endian

	// prefixed redirects the next resolution into the Extended table.
	prefixed bool
}

// Begin starts executing d, whose opcode was fetched from pc.
func (c *Cursor) Begin(d *Descriptor, pc uint16) {
	c.desc = d
	c.pc = pc
	c.fetched = 1
	c.tick = 0
	c.extra = 0
	c.data = 0
}

// Resolve looks up the descriptor for opcode and begins executing it.
// If the previous instruction was the CB prefix the opcode is resolved
// in the Extended table, continuing the prefix's tick count so that the
// descriptor's cycle indices cover the prefix as well.
func (c *Cursor) Resolve(opcode uint8, pc uint16) *Descriptor {
	if c.prefixed {
		c.prefixed = false
		c.desc = &Extended[opcode]
		c.fetched = 2
		c.extra = 0
		c.data = 0
		return c.desc
	}

	d := &Standard[opcode]
	c.Begin(d, pc)
	c.prefixed = d.Op == OpPREFIX
	return d
}

// Clock advances the cursor by one cycle, returning false if the
// instruction had already retired.
func (c *Cursor) Clock() bool {
	if !c.Executing() {
		return false
	}
	c.tick++
	return true
}

// Descriptor returns the active descriptor.
func (c *Cursor) Descriptor() *Descriptor { return c.desc }

// PC returns the address the instruction began at.
func (c *Cursor) PC() uint16 { return c.pc }

// Tick returns the number of cycles elapsed since the instruction began.
func (c *Cursor) Tick() uint8 { return c.tick }

// Extra returns the cycles added by a taken branch.
func (c *Cursor) Extra() uint8 { return c.extra }

// Prefixed reports whether the CB prefix is awaiting its opcode.
func (c *Cursor) Prefixed() bool { return c.prefixed }

// AddCycles extends the instruction by n cycles.
func (c *Cursor) AddCycles(n uint8) { c.extra += n }

// total returns the cycle count including any extra cycles.
func (c *Cursor) total() uint8 {
	return c.desc.Cycles + c.extra
}

// Executing reports whether cycles remain in the instruction.
func (c *Cursor) Executing() bool {
	return c.desc != nil && c.tick < c.total()
}

// Retired reports whether the instruction has consumed all of its cycles.
func (c *Cursor) Retired() bool {
	return !c.Executing()
}

// OnReadTick reports whether memory is read on this cycle.
func (c *Cursor) OnReadTick() bool {
	return c.desc != nil && c.desc.ReadCycle != 0 && c.tick == c.desc.ReadCycle
}

// OnWriteTick reports whether memory is written on this cycle.
func (c *Cursor) OnWriteTick() bool {
	return c.desc != nil && c.desc.WriteCycle != 0 && c.tick == c.desc.WriteCycle
}

// OnExecuteTick reports whether the instruction's effect happens on
// this cycle.
func (c *Cursor) OnExecuteTick() bool {
	return c.desc != nil && c.tick == c.desc.Cycles
}

// InOvertime reports whether the instruction is running past its base
// cycle count because a branch was taken.
func (c *Cursor) InOvertime() bool {
	return c.desc != nil && c.tick > c.desc.Cycles
}

// Fetching reports whether an operand byte is fetched on this cycle.
func (c *Cursor) Fetching() bool {
	return c.desc != nil && c.tick >= 2 && c.fetched < c.desc.Length
}

// Fetched returns the number of instruction bytes fetched so far.
func (c *Cursor) Fetched() uint8 { return c.fetched }

// Push appends a fetched operand byte.
func (c *Cursor) Push(b uint8) {
	c.data |= uint16(b) << (8 * (c.fetched - 1))
	c.fetched++
}

// Data8 returns the 8-bit immediate operand.
func (c *Cursor) Data8() uint8 { return uint8(c.data) }

// Data16 returns the 16-bit immediate operand.
func (c *Cursor) Data16() uint16 { return c.data }
