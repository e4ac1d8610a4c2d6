package cartridge

import "github.com/thelolagemann/gbcore/internal/memory"

// mbc5 supports up to 8MB of ROM through a 9-bit bank number, and 128kB
// of RAM. Unlike the older controllers, bank 0 may be mapped at 0x4000.
type mbc5 struct {
	c       *Cartridge
	romBank uint16
	ramBank uint8

	// bit 3 of the RAM bank register drives the rumble motor
	rumble bool
	motor  bool
}

func (m *mbc5) writeRegister(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.c.ramEnabled = v&0x0F == 0x0A
	case addr < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(v)
		m.c.selectROM(int(m.romBank))
	case addr < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(v&0x01)<<8
		m.c.selectROM(int(m.romBank))
	case addr < 0x6000:
		m.ramBank = v & 0x0F
		if m.rumble {
			m.motor = v&0x08 != 0
			m.ramBank &= 0x07
		}
		m.c.selectRAM(int(m.ramBank))
	}
}

func (m *mbc5) reset() {
	m.romBank, m.ramBank, m.motor = 1, 0, false
}

func (m *mbc5) fields() []memory.Field {
	return []memory.Field{
		memory.Var("mbc5.romBank", &m.romBank),
		memory.Var("mbc5.ramBank", &m.ramBank),
		memory.Var("mbc5.motor", &m.motor),
	}
}
