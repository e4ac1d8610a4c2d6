package cartridge

import (
	"time"

	"github.com/thelolagemann/gbcore/internal/memory"
)

const (
	rtcSeconds uint8 = iota + 0x08
	rtcMinutes
	rtcHours
	rtcDaysLow
	rtcDaysHigh // bit 0: day 8, bit 6: halt, bit 7: day carry
)

// rtc is the real time clock of MBC3 cartridges. The live registers
// keep counting while the cartridge is unpowered, so they are advanced
// by the time elapsed since the last update.
type rtc struct {
	live    [5]uint8
	latched [5]uint8
	last    int64 // unix seconds of the last update
}

func (r *rtc) halted() bool {
	return r.live[4]&0x40 != 0
}

// update advances the live registers to now.
func (r *rtc) update(now time.Time) {
	elapsed := now.Unix() - r.last
	r.last = now.Unix()
	if r.halted() || elapsed <= 0 {
		return
	}

	days := int64(r.live[3]) | int64(r.live[4]&0x01)<<8
	total := int64(r.live[0]) + int64(r.live[1])*60 + int64(r.live[2])*3600 + days*86400 + elapsed

	r.live[0] = uint8(total % 60)
	r.live[1] = uint8(total / 60 % 60)
	r.live[2] = uint8(total / 3600 % 24)
	days = total / 86400
	if days >= 512 {
		days %= 512
		r.live[4] |= 0x80
	}
	r.live[3] = uint8(days)
	r.live[4] = r.live[4]&0xFE | uint8(days>>8)
}

// write sets a live register, masking off unused bits.
func (r *rtc) write(reg, v uint8) {
	masks := [5]uint8{0x3F, 0x3F, 0x1F, 0xFF, 0xC1}
	r.live[reg-rtcSeconds] = v & masks[reg-rtcSeconds]
}

// mbc3 supports up to 2MB of ROM and 32kB of RAM, plus an optional
// real time clock whose registers replace RAM when selected.
type mbc3 struct {
	c *Cartridge

	romBank uint8
	// 0x00-0x03 selects a RAM bank, 0x08-0x0C a clock register
	selected uint8
	latch    uint8
	clock    rtc
	hasRTC   bool
}

func newMBC3(c *Cartridge) *mbc3 {
	t := c.header.CartridgeType
	m := &mbc3{c: c, hasRTC: t == MBC3TIMERBATT || t == MBC3TIMERRAMBATT}
	m.clock.last = c.now().Unix()
	return m
}

func (m *mbc3) writeRegister(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.c.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		m.romBank = v & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
		m.c.selectROM(int(m.romBank))
	case addr < 0x6000:
		m.selected = v & 0x0F
		if m.selected <= 0x03 {
			m.c.selectRAM(int(m.selected))
		}
	default:
		// writing 0 then 1 copies the live clock into the latched registers
		if m.hasRTC && m.latch == 0x00 && v == 0x01 {
			m.clock.update(m.c.now())
			m.clock.latched = m.clock.live
		}
		m.latch = v
	}
}

func (m *mbc3) clockSelected() bool {
	return m.selected >= rtcSeconds
}

// checkRAM intercepts RAM accesses while a clock register, or an
// unmapped register, is selected.
func (m *mbc3) checkRAM(uint16) bool {
	return m.selected > 0x03
}

func (m *mbc3) readRAM(uint16) uint8 {
	if !m.hasRTC || !m.clockSelected() || m.selected > rtcDaysHigh {
		return 0xFF
	}
	return m.clock.latched[m.selected-rtcSeconds]
}

func (m *mbc3) writeRAM(_ uint16, v uint8) {
	if !m.hasRTC || !m.clockSelected() || m.selected > rtcDaysHigh {
		return
	}
	m.clock.update(m.c.now())
	m.clock.write(m.selected, v)
}

func (m *mbc3) reset() {
	m.romBank, m.selected, m.latch = 1, 0, 0xFF
}

func (m *mbc3) fields() []memory.Field {
	fields := []memory.Field{
		memory.Var("mbc3.romBank", &m.romBank),
		memory.Var("mbc3.selected", &m.selected),
		memory.Var("mbc3.latch", &m.latch),
		memory.Var("mbc3.rtc.last", &m.clock.last),
	}
	for i := range m.clock.live {
		fields = append(fields,
			memory.Var("mbc3.rtc.live", &m.clock.live[i]),
			memory.Var("mbc3.rtc.latched", &m.clock.latched[i]),
		)
	}
	return fields
}
