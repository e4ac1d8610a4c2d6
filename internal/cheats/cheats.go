// Package cheats implements Game Genie and GameShark cheat codes.
package cheats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// ErrNotFound is returned when enabling or disabling an unknown cheat.
var ErrNotFound = errors.New("cheats: cheat not found")

// Cheat is a named group of codes that are enabled together.
type Cheat struct {
	Name    string
	Enabled bool
	Codes   []Code

	patches []patch
}

// patch records a ROM byte replaced by a Game Genie code.
type patch struct {
	c    *memory.Component
	bank int
	addr uint16
	old  uint8
}

// Writer is the memory GameShark codes write to.
type Writer interface {
	Write(addr uint16, v uint8) bool
}

// Engine applies cheats to a running cartridge.
type Engine struct {
	cart *cartridge.Cartridge
	bus  Writer

	cheats []*Cheat
	log    log.Logger
}

// New returns an Engine patching cart and writing to bus.
func New(cart *cartridge.Cartridge, bus Writer, l log.Logger) *Engine {
	return &Engine{cart: cart, bus: bus, log: l}
}

// Cheats returns every loaded cheat.
func (e *Engine) Cheats() []*Cheat {
	return e.cheats
}

// Add parses codes into a new, disabled cheat.
func (e *Engine) Add(name string, codes ...string) (*Cheat, error) {
	for _, c := range e.cheats {
		if c.Name == name {
			return nil, fmt.Errorf("cheats: %q already loaded", name)
		}
	}

	cheat := &Cheat{Name: name}
	for _, raw := range codes {
		c, err := ParseCode(raw)
		if err != nil {
			return nil, err
		}
		e.log.Debugf("cheats: parsed %s", c)
		cheat.Codes = append(cheat.Codes, c)
	}
	e.cheats = append(e.cheats, cheat)
	return cheat, nil
}

func (e *Engine) find(name string) (*Cheat, error) {
	for _, c := range e.cheats {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Enable enables a cheat, patching ROM for its Game Genie codes.
func (e *Engine) Enable(name string) error {
	c, err := e.find(name)
	if err != nil || c.Enabled {
		return err
	}
	c.Enabled = true
	for _, code := range c.Codes {
		if code.Kind == GameGenie {
			c.patches = append(c.patches, e.patch(code)...)
		}
	}
	return nil
}

// Disable disables a cheat, restoring any ROM it patched.
func (e *Engine) Disable(name string) error {
	c, err := e.find(name)
	if err != nil || !c.Enabled {
		return err
	}
	c.Enabled = false
	for i := len(c.patches) - 1; i >= 0; i-- {
		p := c.patches[i]
		p.c.Poke(p.bank, p.addr, p.old)
	}
	c.patches = nil
	return nil
}

// patch applies a Game Genie code to every ROM bank that can be mapped
// at its address. ROM can't change underneath a code, so comparing
// once here is equivalent to comparing on every read.
func (e *Engine) patch(code Code) []patch {
	rom := e.cart.ROM0
	if code.Address >= types.ROMXStart {
		rom = e.cart.ROMX
	}

	var patches []patch
	for bank := 0; bank < rom.Banks(); bank++ {
		old := rom.Peek(bank, code.Address)
		if code.Compare && old != code.OldData {
			continue
		}
		patches = append(patches, patch{c: rom, bank: bank, addr: code.Address, old: old})
		rom.Poke(bank, code.Address, code.NewData)
	}
	return patches
}

// Frame applies the GameShark codes of every enabled cheat. It is
// called once per frame.
func (e *Engine) Frame() {
	for _, c := range e.cheats {
		if !c.Enabled {
			continue
		}
		for _, code := range c.Codes {
			if code.Kind != GameShark {
				continue
			}
			if code.Address >= types.ExtRAMStart && code.Address < types.WRAM0Start {
				e.writeRAM(code)
				continue
			}
			e.bus.Write(code.Address, code.NewData)
		}
	}
}

// writeRAM writes to the external RAM bank named by the code,
// regardless of the bank currently selected.
func (e *Engine) writeRAM(code Code) {
	ram := e.cart.RAM
	bank := int(code.Bank & 0x0F)
	if bank < ram.Banks() && ram.Contains(code.Address) {
		ram.Poke(bank, code.Address, code.NewData)
	}
}

// Parse reads cheats in the following format, returning them in the
// order they are found:
//
//	# Cheat Name
//	01FF23C1
//	00A-17B-C49
//
// Blank lines are ignored.
func Parse(r io.Reader) ([]*Cheat, error) {
	var cheats []*Cheat
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line[0] == '#':
			cheats = append(cheats, &Cheat{Name: strings.TrimSpace(line[1:])})
			continue
		case len(cheats) == 0:
			return nil, fmt.Errorf("cheats: code %q before a name", line)
		}

		c, err := ParseCode(line)
		if err != nil {
			return nil, err
		}
		cur := cheats[len(cheats)-1]
		cur.Codes = append(cur.Codes, c)
	}
	return cheats, scanner.Err()
}

// LoadFile adds the cheats in filename to the engine, disabled.
func (e *Engine) LoadFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	cheats, err := Parse(f)
	if err != nil {
		return err
	}
	for _, c := range cheats {
		if _, err := e.find(c.Name); err == nil {
			return fmt.Errorf("cheats: %q already loaded", c.Name)
		}
		e.cheats = append(e.cheats, c)
	}
	return nil
}

// Write writes cheats in the format read by Parse.
func Write(w io.Writer, cheats []*Cheat) error {
	for _, c := range cheats {
		if _, err := fmt.Fprintf(w, "# %s\n", c.Name); err != nil {
			return err
		}
		for _, code := range c.Codes {
			if _, err := fmt.Fprintln(w, code.Raw); err != nil {
				return err
			}
		}
	}
	return nil
}
