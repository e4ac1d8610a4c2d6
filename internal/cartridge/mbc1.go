package cartridge

import "github.com/thelolagemann/gbcore/internal/memory"

// mbc1 supports up to 2MB of ROM and 32kB of RAM. The 2-bit bank2
// register supplies either the upper ROM bank bits or the RAM bank,
// and in mode 1 also banks the fixed region at 0x0000.
type mbc1 struct {
	c *Cartridge

	bank1 uint8 // 5-bit ROM bank, never 0
	bank2 uint8
	mode  bool
}

func (m *mbc1) writeRegister(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.c.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		m.bank1 = v & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case addr < 0x6000:
		m.bank2 = v & 0x03
	default:
		m.mode = v&0x01 == 0x01
	}
	m.update()
}

func (m *mbc1) update() {
	m.c.selectROM(int(m.bank2)<<5 | int(m.bank1))
	if m.mode {
		m.c.ROM0.SetBank(int(m.bank2) % m.c.ROM0.Banks())
		m.c.selectRAM(int(m.bank2))
	} else {
		m.c.ROM0.SetBank(0)
		m.c.selectRAM(0)
	}
}

func (m *mbc1) reset() {
	m.bank1, m.bank2, m.mode = 1, 0, false
}

func (m *mbc1) fields() []memory.Field {
	return []memory.Field{
		memory.Var("mbc1.bank1", &m.bank1),
		memory.Var("mbc1.bank2", &m.bank2),
		memory.Var("mbc1.mode", &m.mode),
	}
}
