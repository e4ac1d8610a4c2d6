// Package mmu assembles the Game Boy's address space from the memory
// components of the cartridge, the APU and the internal RAMs, and
// implements the IO registers that control banking and DMA.
package mmu

import (
	"github.com/thelolagemann/gbcore/internal/apu"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// MMU is the memory management unit. It maps every component onto a
// single bus:
//
//	0x0000-0x3FFF  ROM0 (boot ROM overlay until BDIS)
//	0x4000-0x7FFF  ROMX
//	0x8000-0x9FFF  VRAM, 2 banks
//	0xA000-0xBFFF  cartridge RAM
//	0xC000-0xCFFF  WRAM0
//	0xD000-0xDFFF  WRAMX, 7 banks
//	0xE000-0xFDFF  echo of 0xC000-0xDDFF
//	0xFE00-0xFE9F  OAM
//	0xFF00-0xFF7F  IO, with the timer at 0xFF04-0xFF07 and the APU
//	               at 0xFF10-0xFF3F
//	0xFF80-0xFFFE  HRAM
//	0xFFFF         IE
type MMU struct {
	*memory.Bus

	Cart  *cartridge.Cartridge
	Boot  *boot.ROM
	APU   *apu.APU
	Timer *timer.Controller

	VRAM  *memory.Component
	WRAM0 *memory.Component
	WRAMX *memory.Component
	OAM   *memory.Component
	IO    *memory.Component
	HRAM  *memory.Component
	IE    *memory.Component

	cgb      bool
	bootDone bool

	log   log.Logger
	debug bool
}

// Opt configures an MMU.
type Opt func(m *MMU)

// WithBootROM maps a boot ROM over the cartridge until it is disabled.
func WithBootROM(b *boot.ROM) Opt {
	return func(m *MMU) {
		m.Boot = b
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.log = l
	}
}

// Debug enables range checking on every component the MMU creates.
func Debug(debug bool) Opt {
	return func(m *MMU) {
		m.debug = debug
	}
}

// New assembles the memory map around the given cartridge and APU.
func New(cart *cartridge.Cartridge, a *apu.APU, opts ...Opt) *MMU {
	m := &MMU{
		Bus:  memory.NewBus(),
		Cart: cart,
		APU:  a,
		log:  log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	h := cart.Header()
	m.cgb = h.GameboyColor() || m.Boot != nil && m.Boot.CGB()

	component := func(id string, offset uint16, size, banks int) *memory.Component {
		return memory.New(id, offset, size, memory.WithBanks(banks),
			memory.WithLogger(m.log), memory.WithDebug(m.debug))
	}
	m.VRAM = component("VRAM", types.VRAMStart, 0x2000, 2)
	m.WRAM0 = component("WRM0", types.WRAM0Start, 0x1000, 1)
	m.WRAMX = component("WRMX", types.WRAMXStart, 0x1000, 7)
	m.OAM = component("OAM ", types.OAMStart, 0xA0, 1)
	m.IO = component("IO  ", types.IOStart, 0x80, 1)
	m.HRAM = component("HRAM", types.HRAMStart, 0x7F, 1)
	m.IE = component("IE  ", types.IE, 1, 1)

	m.Timer = timer.New(func() { m.RequestInterrupt(interrupts.Timer) }, m.log)
	m.IO.Attach(&registers{m: m})
	m.IO.Register(memory.Var("bootDone", &m.bootDone))

	m.Map(cart.ROM0)
	m.Map(cart.ROMX)
	m.Map(m.VRAM)
	m.MapRange(types.ExtRAMStart, types.WRAM0Start-1, cart.RAM)
	m.Map(m.WRAM0)
	m.Map(m.WRAMX)
	m.Mirror(types.EchoStart, 0xEFFF, m.WRAM0, 0x2000)
	m.Mirror(0xF000, 0xFDFF, m.WRAMX, 0x2000)
	m.Map(m.OAM)
	m.Map(m.IO)
	m.Map(m.Timer.Component)
	m.Map(a.Component)
	m.Map(m.HRAM)
	m.Map(m.IE)

	if m.Boot != nil {
		m.mapBoot(true)
	} else {
		m.bootDone = true
	}
	return m
}

// CGB reports whether the colour hardware registers are available.
func (m *MMU) CGB() bool { return m.cgb }

// BootDone reports whether the boot ROM has been unmapped.
func (m *MMU) BootDone() bool { return m.bootDone }

// mapBoot maps the boot ROM over the cartridge, or the cartridge back
// over the boot ROM.
func (m *MMU) mapBoot(on bool) {
	if m.Boot == nil {
		return
	}
	if !on {
		m.MapRange(types.ROM0Start, types.ROMXStart-1, m.Cart.ROM0)
		return
	}
	for _, r := range m.Boot.Ranges() {
		m.MapRange(r[0], r[1], m.Boot.Component)
	}
}

// RequestInterrupt sets bit i of IF.
func (m *MMU) RequestInterrupt(i uint8) {
	m.IO.FastWrite(types.IF, m.IO.FastRead(types.IF)|1<<i)
}

// PostBoot sets the IO registers to the values the DMG boot ROM leaves
// behind, for starting a cartridge without one.
func (m *MMU) PostBoot() {
	m.IO.FastWrite(types.IF, 0x01)
	m.Timer.SetCounter(0xABCC)
	for _, w := range []struct {
		addr uint16
		v    uint8
	}{
		{types.NR50, 0x77},
		{types.NR51, 0xF3},
		{types.NR11, 0x80},
		{types.NR12, 0xF3},
	} {
		m.Write(w.addr, w.v)
	}
	m.bootDone = true
	m.mapBoot(false)
}
