// Package memory provides the banked, memory-mapped component that every
// piece of emulated hardware is built on, together with the Bus that
// routes the 16-bit address space to those components.
//
// A Component owns its storage and handles bank selection, savestate
// persistence and access validation. Peripherals customise a component
// by attaching themselves as its owner and implementing any of the
// optional capability interfaces (Peripheral, Guard, Resetter and
// Restorer), which the component discovers when it is attached.
package memory

import (
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/bits"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// AccessKind distinguishes reads from writes.
type AccessKind uint8

const (
	KindRead AccessKind = iota
	KindWrite
)

func (k AccessKind) String() string {
	if k == KindWrite {
		return "write"
	}
	return "read"
}

// Access describes the most recent access made to a component.
type Access struct {
	Kind    AccessKind
	Address uint16
	Bank    int
	Value   uint8
}

// Peripheral is implemented by owners that intercept accesses to
// hardware registers instead of storing them as plain memory.
type Peripheral interface {
	// CheckRegister reports whether an access to addr should be
	// handled by the peripheral.
	CheckRegister(addr uint16, kind AccessKind) bool
	// WriteRegister handles a register write, returning whether
	// the write was accepted.
	WriteRegister(addr uint16, v uint8) bool
	// ReadRegister handles a register read.
	ReadRegister(addr uint16) uint8
}

// Guard is implemented by owners that may reject accesses outright,
// e.g. while the hardware is powered off.
type Guard interface {
	PreWrite(addr uint16, bank int, v uint8) bool
	// PreRead returns ok=false to reject the read, in which case status
	// is returned to the caller in place of the stored data.
	PreRead(addr uint16, bank int) (status uint8, ok bool)
}

// Resetter is notified after a component has been reset.
type Resetter interface {
	OnReset()
}

// Restorer is notified after a component has been restored from a
// savestate.
type Restorer interface {
	OnRestore()
}

// Component is a banked block of memory mapped into the address space
// at a fixed offset.
type Component struct {
	id     [4]byte
	offset uint16
	size   int
	banks  [][]byte
	bank   int

	readOnly   bool
	persistRAM bool
	fields     []Field

	peripheral Peripheral
	guard      Guard
	resetter   Resetter
	restorer   Restorer

	last  Access
	log   log.Logger
	debug bool
}

// Option configures a Component.
type Option func(c *Component)

// WithBanks sets the number of banks allocated. The default is 1.
func WithBanks(n int) Option {
	return func(c *Component) {
		c.allocate(n)
	}
}

// ReadOnly marks the component as read-only. Register accesses are
// still delivered to the owner.
func ReadOnly() Option {
	return func(c *Component) {
		c.readOnly = true
	}
}

// PersistRAM controls whether the bank contents are included in
// savestates. The default is true.
func PersistRAM(persist bool) Option {
	return func(c *Component) {
		c.persistRAM = persist
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l log.Logger) Option {
	return func(c *Component) {
		c.log = l
	}
}

// WithDebug enables range validation of every access.
func WithDebug(debug bool) Option {
	return func(c *Component) {
		c.debug = debug
	}
}

// New creates a component identified by id (at most four characters,
// padded with spaces), mapped at offset and holding size bytes per bank.
func New(id string, offset uint16, size int, opts ...Option) *Component {
	c := &Component{
		offset:     offset,
		size:       size,
		persistRAM: true,
		log:        log.NewNullLogger(),
	}
	copy(c.id[:], fmt.Sprintf("%-4s", id))
	c.allocate(1)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Component) allocate(n int) {
	if n < 0 {
		n = 0
	}
	c.banks = make([][]byte, n)
	for i := range c.banks {
		c.banks[i] = make([]byte, c.size)
	}
	c.bank = 0
}

// Attach sets the owner of the component. Any capability interfaces the
// owner implements are used from then on.
func (c *Component) Attach(owner interface{}) {
	c.peripheral, _ = owner.(Peripheral)
	c.guard, _ = owner.(Guard)
	c.resetter, _ = owner.(Resetter)
	c.restorer, _ = owner.(Restorer)
}

// ID returns the identifier of the component.
func (c *Component) ID() string { return string(c.id[:]) }

// Offset returns the address the component is mapped at.
func (c *Component) Offset() uint16 { return c.offset }

// Size returns the number of bytes per bank.
func (c *Component) Size() int { return c.size }

// Banks returns the number of banks.
func (c *Component) Banks() int { return len(c.banks) }

// Bank returns the currently selected bank.
func (c *Component) Bank() int { return c.bank }

// IsReadOnly reports whether plain writes are rejected.
func (c *Component) IsReadOnly() bool { return c.readOnly }

// LastAccess returns the most recent access made through Read or Write.
func (c *Component) LastAccess() Access { return c.last }

// Contains reports whether addr falls within the component's window.
func (c *Component) Contains(addr uint16) bool {
	return addr >= c.offset && int(addr-c.offset) < c.size
}

// SetBank selects the bank backing the component's window. Values past
// the last bank select the last bank.
func (c *Component) SetBank(n int) {
	switch {
	case len(c.banks) == 0, n < 0:
		n = 0
	case n >= len(c.banks):
		if c.debug {
			c.log.Debugf("%s: bank %d out of range, using %d", c.ID(), n, len(c.banks)-1)
		}
		n = len(c.banks) - 1
	}
	c.bank = n
}

// inRange validates an access against the window and bank. Only
// consulted in debug mode.
func (c *Component) inRange(addr uint16, bank int, kind AccessKind) bool {
	if !c.Contains(addr) || bank >= len(c.banks) {
		c.log.Debugf("%s: %s out of range %s (bank %d)", c.ID(), kind, bits.Hex16(addr), bank)
		return false
	}
	return true
}

// Write writes v to addr, returning false if the write was rejected.
func (c *Component) Write(addr uint16, v uint8) bool {
	c.last = Access{Kind: KindWrite, Address: addr, Bank: c.bank, Value: v}

	if c.guard != nil && !c.guard.PreWrite(addr, c.bank, v) {
		return false
	}
	if c.peripheral != nil && c.peripheral.CheckRegister(addr, KindWrite) {
		return c.peripheral.WriteRegister(addr, v)
	}
	if c.readOnly {
		if c.debug {
			c.log.Debugf("%s: rejected write to read-only %s", c.ID(), bits.Hex16(addr))
		}
		return false
	}
	if len(c.banks) == 0 || c.debug && !c.inRange(addr, c.bank, KindWrite) {
		return false
	}

	c.banks[c.bank][addr-c.offset] = v
	return true
}

// Read reads the value at addr. If the read was rejected, the status
// reported by the owner is returned alongside false.
func (c *Component) Read(addr uint16) (uint8, bool) {
	c.last = Access{Kind: KindRead, Address: addr, Bank: c.bank}

	if c.guard != nil {
		if status, ok := c.guard.PreRead(addr, c.bank); !ok {
			c.last.Value = status
			return status, false
		}
	}
	if c.peripheral != nil && c.peripheral.CheckRegister(addr, KindRead) {
		v := c.peripheral.ReadRegister(addr)
		c.last.Value = v
		return v, true
	}
	if len(c.banks) == 0 || c.debug && !c.inRange(addr, c.bank, KindRead) {
		return 0xFF, false
	}

	v := c.banks[c.bank][addr-c.offset]
	c.last.Value = v
	return v, true
}

// FastRead reads from the selected bank without any validation,
// interception or access recording.
func (c *Component) FastRead(addr uint16) uint8 {
	return c.banks[c.bank][addr-c.offset]
}

// FastWrite writes to the selected bank without any validation,
// interception or access recording.
func (c *Component) FastWrite(addr uint16, v uint8) {
	c.banks[c.bank][addr-c.offset] = v
}

// Peek reads addr from the given bank, bypassing the selected bank.
func (c *Component) Peek(bank int, addr uint16) uint8 {
	return c.banks[bank][addr-c.offset]
}

// Poke writes addr in the given bank, bypassing the selected bank
// and the read-only flag.
func (c *Component) Poke(bank int, addr uint16, v uint8) {
	c.banks[bank][addr-c.offset] = v
}

// Data returns the backing slice of the given bank.
func (c *Component) Data(bank int) []byte {
	return c.banks[bank]
}

// LoadData copies data into consecutive banks starting at bank 0.
func (c *Component) LoadData(data []byte) {
	for i := range c.banks {
		start := i * c.size
		if start >= len(data) {
			return
		}
		copy(c.banks[i], data[start:])
	}
}

// Reset clears every bank and selects bank 0. The contents of
// read-only components are kept.
func (c *Component) Reset() {
	if !c.readOnly {
		for _, b := range c.banks {
			clear(b)
		}
	}
	c.bank = 0
	if c.resetter != nil {
		c.resetter.OnReset()
	}
}
