// Package timer provides an implementation of the Game Boy
// timer. TIMA counts the falling edges of a bit of the system
// counter selected by TAC, and requests the timer interrupt
// when it overflows.
package timer

import (
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// reloadDelay is the number of T-cycles between TIMA overflowing and
// being reloaded from TMA.
const reloadDelay = 4

// bits are the system counter bits selected by TAC.
var bits = [4]uint16{512, 8, 32, 128}

// Controller is the timer. It occupies 0xFF04-0xFF07.
type Controller struct {
	*memory.Component

	counter uint16 // DIV is the upper byte

	tima, tma, tac uint8

	lastBit  bool
	overflow bool
	// ticksSinceOverflow counts T-cycles while a reload is pending
	ticksSinceOverflow uint8

	request func()
}

// New returns a timer that calls request when TIMA overflows.
func New(request func(), l log.Logger) *Controller {
	c := &Controller{request: request}
	c.Component = memory.New("TIMR", types.DIV, 4, memory.PersistRAM(false), memory.WithLogger(l))
	c.Attach(c)
	c.Register(
		memory.Var("counter", &c.counter),
		memory.Var("tima", &c.tima),
		memory.Var("tma", &c.tma),
		memory.Var("tac", &c.tac),
		memory.Var("lastBit", &c.lastBit),
		memory.Var("overflow", &c.overflow),
		memory.Var("ticksSinceOverflow", &c.ticksSinceOverflow),
	)
	return c
}

// Enabled reports whether TIMA is counting.
func (c *Controller) Enabled() bool {
	return c.tac&0x04 != 0
}

// SetCounter sets the system counter, for starting without a boot ROM.
func (c *Controller) SetCounter(v uint16) {
	c.counter = v
	c.lastBit = c.selected()
}

// Tick advances the timer by one T-cycle.
func (c *Controller) Tick() {
	if c.overflow {
		if c.ticksSinceOverflow++; c.ticksSinceOverflow == reloadDelay {
			c.tima = c.tma
			c.overflow = false
			c.ticksSinceOverflow = 0
			c.request()
		}
	}

	c.counter++
	c.edge()
}

func (c *Controller) selected() bool {
	return c.Enabled() && c.counter&bits[c.tac&0b11] != 0
}

// edge increments TIMA on a falling edge of the selected bit. Resetting
// DIV or changing TAC can produce an edge, which real hardware counts.
func (c *Controller) edge() {
	bit := c.selected()
	if c.lastBit && !bit {
		if c.tima++; c.tima == 0 {
			c.overflow = true
			c.ticksSinceOverflow = 0
		}
	}
	c.lastBit = bit
}

func (c *Controller) CheckRegister(addr uint16, kind memory.AccessKind) bool {
	return true
}

func (c *Controller) ReadRegister(addr uint16) uint8 {
	switch addr {
	case types.DIV:
		return uint8(c.counter >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	}
	return c.tac | 0xF8
}

func (c *Controller) WriteRegister(addr uint16, v uint8) bool {
	switch addr {
	case types.DIV:
		c.counter = 0
		c.edge()
	case types.TIMA:
		// writing during the reload delay cancels the reload
		c.tima = v
		c.overflow = false
		c.ticksSinceOverflow = 0
	case types.TMA:
		c.tma = v
	case types.TAC:
		c.tac = v & 0x07
		c.edge()
	}
	return true
}

func (c *Controller) OnReset() {
	c.counter, c.tima, c.tma, c.tac = 0, 0, 0, 0
	c.lastBit, c.overflow, c.ticksSinceOverflow = false, false, 0
}
