// Package cartridge provides the game cartridge: its header, ROM, any
// external RAM and the memory bank controller that switches between
// them. Each region is a memory.Component ready to be mapped onto a
// bus.
package cartridge

import (
	"errors"
	"fmt"
	"time"

	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

var (
	// ErrTooSmall is returned for images too small to hold a header.
	ErrTooSmall = errors.New("cartridge: image too small")
	// ErrUnsupported is returned for cartridge types without an
	// implemented controller.
	ErrUnsupported = errors.New("cartridge: unsupported cartridge type")
)

// controller is a memory bank controller, handling writes to the
// register space at 0x0000-0x7FFF.
type controller interface {
	writeRegister(addr uint16, v uint8)
	reset()
	fields() []memory.Field
}

// ramPeripheral is implemented by controllers that replace external RAM
// accesses, such as MBC2's nibble RAM or MBC3's clock registers.
type ramPeripheral interface {
	checkRAM(addr uint16) bool
	readRAM(addr uint16) uint8
	writeRAM(addr uint16, v uint8)
}

// Cartridge holds a game's ROM and external RAM.
type Cartridge struct {
	header Header

	// ROM0 is the fixed bank mapped at 0x0000-0x3FFF. Only MBC1 carts
	// larger than 512kB ever select a bank other than 0.
	ROM0 *memory.Component
	// ROMX is the switchable bank mapped at 0x4000-0x7FFF.
	ROMX *memory.Component
	// RAM is the external RAM mapped at 0xA000-0xBFFF. It has no banks
	// when the cartridge has no RAM.
	RAM *memory.Component

	ramEnabled bool
	controller controller

	now func() time.Time
	log log.Logger
}

// Opt configures a Cartridge.
type Opt func(c *Cartridge)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(c *Cartridge) {
		c.log = l
	}
}

// WithClock sets the time source of the real time clock of MBC3
// cartridges.
func WithClock(now func() time.Time) Opt {
	return func(c *Cartridge) {
		c.now = now
	}
}

// New creates a cartridge from a ROM image.
func New(rom []byte, opts ...Opt) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(rom))
	}

	c := &Cartridge{
		header: parseHeader(rom[0x100:0x150]),
		now:    time.Now,
		log:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	h := &c.header
	switch h.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		c.controller = romOnly{}
		c.ramEnabled = h.CartridgeType != ROM
	case MBC1, MBC1RAM, MBC1RAMBATT:
		c.controller = &mbc1{c: c}
	case MBC2, MBC2BATT:
		c.controller = &mbc2{c: c}
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		c.controller = newMBC3(c)
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		c.controller = &mbc5{c: c, rumble: h.CartridgeType >= MBC5RUMBLE}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, h.CartridgeType)
	}
	c.controller.reset()

	if !h.ChecksumValid() {
		c.log.Warnf("cartridge: header checksum mismatch (expected %02X)", h.HeaderChecksum)
	}
	if h.ROMSize != 0 && len(rom) != h.ROMSize {
		c.log.Warnf("cartridge: image is %d bytes, header declares %d", len(rom), h.ROMSize)
	}

	// the image may be smaller than a bank; unused space reads as 0xFF
	romBanks := max(2, (len(rom)+romBankSize-1)/romBankSize)
	c.ROMX = memory.New("ROMX", types.ROMXStart, romBankSize,
		memory.WithBanks(romBanks), memory.ReadOnly(), memory.PersistRAM(false), memory.WithLogger(c.log))
	c.ROM0 = memory.New("ROM0", types.ROM0Start, romBankSize,
		memory.WithBanks((romBanks+31)/32), memory.ReadOnly(), memory.PersistRAM(false), memory.WithLogger(c.log))
	for i := 0; i < romBanks; i++ {
		bank := c.ROMX.Data(i)
		n := 0
		if start := i * romBankSize; start < len(rom) {
			n = copy(bank, rom[start:])
		}
		for j := n; j < len(bank); j++ {
			bank[j] = 0xFF
		}
		if i%32 == 0 {
			copy(c.ROM0.Data(i/32), bank)
		}
	}
	c.ROMX.SetBank(1)

	ramSize, ramBanks := ramBankSize, (h.RAMSize+ramBankSize-1)/ramBankSize
	if _, ok := c.controller.(*mbc2); ok {
		ramSize, ramBanks = h.RAMSize, 1
	}
	c.RAM = memory.New("XRAM", types.ExtRAMStart, ramSize, memory.WithBanks(ramBanks), memory.WithLogger(c.log))

	c.ROM0.Attach(c)
	c.ROMX.Attach(c)
	c.RAM.Attach(&externalRAM{c})
	c.ROMX.Register(memory.Var("ramEnabled", &c.ramEnabled))
	c.ROMX.Register(c.controller.fields()...)

	c.log.Infof("cartridge: %s", h.String())
	return c, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Components returns the cartridge's memory components in the order
// they're saved.
func (c *Cartridge) Components() []*memory.Component {
	return []*memory.Component{c.ROM0, c.ROMX, c.RAM}
}

// CheckRegister reports true for every write to ROM, where the bank
// controller's registers live.
func (c *Cartridge) CheckRegister(addr uint16, kind memory.AccessKind) bool {
	return kind == memory.KindWrite
}

// WriteRegister forwards a ROM write to the bank controller.
func (c *Cartridge) WriteRegister(addr uint16, v uint8) bool {
	c.controller.writeRegister(addr, v)
	return true
}

// ReadRegister is never reached, as ROM reads aren't intercepted.
func (c *Cartridge) ReadRegister(addr uint16) uint8 {
	return 0xFF
}

// OnReset returns the controller to its power on state.
func (c *Cartridge) OnReset() {
	t := c.header.CartridgeType
	c.ramEnabled = t == ROMRAM || t == ROMRAMBATT
	c.controller.reset()
	c.ROM0.SetBank(0)
	c.selectROM(1)
	c.selectRAM(0)
}

// selectROM maps bank n, wrapped to the available banks, at 0x4000.
func (c *Cartridge) selectROM(n int) {
	c.ROMX.SetBank(n % c.ROMX.Banks())
}

// selectRAM maps bank n, wrapped to the available banks, at 0xA000.
func (c *Cartridge) selectRAM(n int) {
	if c.RAM.Banks() > 0 {
		c.RAM.SetBank(n % c.RAM.Banks())
	}
}

// Rumbling reports whether the rumble motor of an MBC5 cartridge is
// switched on.
func (c *Cartridge) Rumbling() bool {
	m, ok := c.controller.(*mbc5)
	return ok && m.motor
}

// SaveRAM returns a copy of the external RAM, for battery backed saves.
func (c *Cartridge) SaveRAM() []byte {
	data := make([]byte, 0, c.RAM.Banks()*c.RAM.Size())
	for i := 0; i < c.RAM.Banks(); i++ {
		data = append(data, c.RAM.Data(i)...)
	}
	return data
}

// LoadRAM restores the external RAM from a battery save.
func (c *Cartridge) LoadRAM(data []byte) {
	c.RAM.LoadData(data)
}

// externalRAM gates access to the cartridge RAM on the enable register.
type externalRAM struct {
	c *Cartridge
}

func (r *externalRAM) PreWrite(addr uint16, bank int, v uint8) bool {
	return r.c.ramEnabled
}

func (r *externalRAM) PreRead(addr uint16, bank int) (uint8, bool) {
	return 0xFF, r.c.ramEnabled
}

func (r *externalRAM) CheckRegister(addr uint16, kind memory.AccessKind) bool {
	if p, ok := r.c.controller.(ramPeripheral); ok {
		return p.checkRAM(addr)
	}
	return false
}

func (r *externalRAM) WriteRegister(addr uint16, v uint8) bool {
	r.c.controller.(ramPeripheral).writeRAM(addr, v)
	return true
}

func (r *externalRAM) ReadRegister(addr uint16) uint8 {
	return r.c.controller.(ramPeripheral).readRAM(addr)
}

// romOnly cartridges have no controller; writes to ROM are ignored.
type romOnly struct{}

func (romOnly) writeRegister(uint16, uint8) {}

func (romOnly) reset() {}

func (romOnly) fields() []memory.Field { return nil }
