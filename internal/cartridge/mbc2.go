package cartridge

import "github.com/thelolagemann/gbcore/internal/memory"

// mbc2 supports up to 256kB of ROM and has 512 half-bytes of built in
// RAM, echoed across 0xA000-0xBFFF. Bit 8 of the register address
// selects between RAM enable and ROM bank.
type mbc2 struct {
	c    *Cartridge
	bank uint8
}

func (m *mbc2) writeRegister(addr uint16, v uint8) {
	if addr >= 0x4000 {
		return
	}
	if addr&0x0100 == 0 {
		m.c.ramEnabled = v&0x0F == 0x0A
		return
	}
	m.bank = v & 0x0F
	if m.bank == 0 {
		m.bank = 1
	}
	m.c.selectROM(int(m.bank))
}

func (m *mbc2) checkRAM(uint16) bool { return true }

// readRAM returns the stored nibble; the upper bits are open bus.
func (m *mbc2) readRAM(addr uint16) uint8 {
	return m.c.RAM.Data(0)[(addr-0xA000)&0x1FF] | 0xF0
}

func (m *mbc2) writeRAM(addr uint16, v uint8) {
	m.c.RAM.Data(0)[(addr-0xA000)&0x1FF] = v & 0x0F
}

func (m *mbc2) reset() {
	m.bank = 1
}

func (m *mbc2) fields() []memory.Field {
	return []memory.Field{memory.Var("mbc2.bank", &m.bank)}
}
