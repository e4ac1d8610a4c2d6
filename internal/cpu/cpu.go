package cpu

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304
	// MachineCycle is the number of T-cycles in a machine cycle.
	MachineCycle = 4
)

// Bus is the memory the CPU executes from.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8) bool
}

// CPU represents the Game Boy CPU. It executes one machine cycle per
// call to Tick, driven by a Cursor over the instruction catalog.
type CPU struct {
	Registers

	bus    Bus
	cursor Cursor

	ime      bool
	imeDelay bool // EI takes effect after the following instruction
	halted   bool

	mdata  uint16 // data latched on the read cycle
	waddr  uint16
	wdata  uint16
	cycles uint64

	state *memory.Component
	log   log.Logger
}

// Opt configures a CPU.
type Opt func(c *CPU)

// WithLogger sets the logger used to report illegal opcodes.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// New returns a CPU executing from bus.
func New(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		bus: bus,
		log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.state = memory.New("CPU ", 0, 0, memory.WithBanks(0), memory.WithLogger(c.log))
	c.state.Register(
		memory.Var("A", &c.A), memory.Var("F", &c.F),
		memory.Var("B", &c.B), memory.Var("C", &c.C),
		memory.Var("D", &c.D), memory.Var("E", &c.E),
		memory.Var("H", &c.H), memory.Var("L", &c.L),
		memory.Var("SP", &c.SP), memory.Var("PC", &c.PC),
		memory.Var("ime", &c.ime),
		memory.Var("imeDelay", &c.imeDelay),
		memory.Var("halted", &c.halted),
		memory.Var("mdata", &c.mdata),
		memory.Var("cycles", &c.cycles),
		&cursorField{c: &c.cursor},
	)
	return c
}

// State returns the component holding the CPU's savestate fields.
func (c *CPU) State() *memory.Component {
	return c.state
}

// Reset sets the registers to their values after the DMG boot ROM.
func (c *CPU) Reset() {
	c.Registers = Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
	}
	c.cursor = Cursor{}
	c.ime, c.imeDelay, c.halted = false, false, false
}

// Cursor returns the cursor of the instruction being executed.
func (c *CPU) Cursor() *Cursor { return &c.cursor }

// Cycles returns the number of machine cycles executed.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool { return c.halted }

// IME reports whether interrupts are enabled.
func (c *CPU) IME() bool { return c.ime }

// pending returns the interrupts that are both requested and enabled.
func (c *CPU) pending() uint8 {
	return c.bus.Read(types.IF) & c.bus.Read(types.IE) & interrupts.Mask
}

// Tick advances the CPU by one machine cycle. Within a cycle, operand
// fetches come first, then the memory read, the instruction's effect
// and finally the memory write.
func (c *CPU) Tick() {
	c.cycles++
	if c.cursor.Retired() && !c.next() {
		return
	}

	c.cursor.Clock()
	d := c.cursor.Descriptor()

	if c.cursor.Fetching() {
		c.cursor.Push(c.bus.Read(c.PC))
		c.PC++
	}
	if c.cursor.OnReadTick() {
		c.read(d)
	}
	if c.cursor.OnExecuteTick() {
		c.execute(d)
	}
	if c.cursor.OnWriteTick() {
		c.write(d)
	}
	if c.cursor.InOvertime() && c.cursor.Retired() {
		c.overtime(d)
	}
}

// Step runs the CPU until the current instruction has retired,
// returning the number of machine cycles taken.
func (c *CPU) Step() int {
	n := 0
	for {
		c.Tick()
		n++
		if c.cursor.Retired() && !c.cursor.Prefixed() {
			return n
		}
	}
}

// next begins the next instruction, or interrupt dispatch. It returns
// false while the CPU is halted.
func (c *CPU) next() bool {
	pending := c.pending()
	if c.halted {
		if pending == 0 {
			return false
		}
		c.halted = false
	}

	if c.ime && pending != 0 && !c.cursor.Prefixed() {
		c.cursor.Begin(&interruptDescriptor, c.PC)
		return true
	}
	if c.imeDelay {
		c.ime = true
		c.imeDelay = false
	}

	pc := c.PC
	opcode := c.bus.Read(pc)
	c.PC++
	c.cursor.Resolve(opcode, pc)
	return true
}

// address resolves the memory address named by o.
func (c *CPU) address(d *Descriptor, o Operand) uint16 {
	switch o.Reg {
	case RegBC:
		return c.BC()
	case RegDE:
		return c.DE()
	case RegHL, RegHLI, RegHLD:
		return c.HL()
	case RegC:
		return 0xFF00 | uint16(c.C)
	}
	if d.Placeholder == A8 {
		return 0xFF00 | uint16(c.cursor.Data8())
	}
	return c.cursor.Data16()
}

func (c *CPU) read(d *Descriptor) {
	switch d.Op {
	case OpPOP, OpRET, OpRETI:
		c.mdata = c.pop()
	default:
		c.mdata = uint16(c.bus.Read(c.address(d, d.memoryOperand())))
	}
}

func (c *CPU) write(d *Descriptor) {
	switch d.Op {
	case OpPUSH, OpCALL, OpRST, OpINT:
		c.push(c.wdata)
	default:
		c.bus.Write(c.waddr, uint8(c.wdata))
		if d.Right.Reg == RegSP {
			c.bus.Write(c.waddr+1, uint8(c.wdata>>8))
		}
	}
}

// overtime applies the deferred effect of a taken conditional call or
// return on its final cycle.
func (c *CPU) overtime(d *Descriptor) {
	switch d.Op {
	case OpCALL:
		c.push(c.PC)
		c.PC = c.cursor.Data16()
	case OpRET:
		c.PC = c.pop()
	}
}

func (c *CPU) push(v uint16) {
	c.SP -= 2
	c.bus.Write(c.SP+1, uint8(v>>8))
	c.bus.Write(c.SP, uint8(v))
}

func (c *CPU) pop() uint16 {
	lo := c.bus.Read(c.SP)
	hi := c.bus.Read(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}

// interrupt dispatches the highest priority pending interrupt. If the
// request was withdrawn while PC was being pushed, execution continues
// at 0x0000.
func (c *CPU) interrupt() {
	flags := c.bus.Read(types.IF)
	pending := flags & c.bus.Read(types.IE) & interrupts.Mask

	c.ime = false
	c.wdata = c.PC
	c.PC = 0x0000
	for i := interrupts.Source(0); i < interrupts.Count; i++ {
		if pending&(1<<i) != 0 {
			c.bus.Write(types.IF, flags&^(1<<i))
			c.PC = interrupts.Vector(i)
			return
		}
	}
}
