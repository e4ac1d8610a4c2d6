package mmu

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/types"
)

// registers implements the IO registers owned by the MMU. Every other
// IO address is plain storage.
type registers struct {
	m *MMU
}

func (r *registers) CheckRegister(addr uint16, kind memory.AccessKind) bool {
	switch addr {
	case types.IF, types.DMA, types.BDIS:
		return true
	case types.VBK, types.SVBK, types.HDMA1, types.HDMA2, types.HDMA3, types.HDMA4, types.HDMA5:
		return true
	}
	return false
}

func (r *registers) ReadRegister(addr uint16) uint8 {
	m := r.m
	switch addr {
	case types.IF:
		return m.IO.FastRead(addr) | 0xE0
	case types.DMA:
		return m.IO.FastRead(addr)
	case types.VBK:
		if m.cgb {
			return 0xFE | uint8(m.VRAM.Bank())
		}
	case types.SVBK:
		if m.cgb {
			return 0xF8 | uint8(m.WRAMX.Bank()+1)
		}
	}
	return 0xFF
}

func (r *registers) WriteRegister(addr uint16, v uint8) bool {
	m := r.m
	switch addr {
	case types.IF:
		m.IO.FastWrite(addr, v&interrupts.Mask)
	case types.DMA:
		m.IO.FastWrite(addr, v)
		m.oamDMA(v)
	case types.BDIS:
		if v != 0 && !m.bootDone {
			m.bootDone = true
			m.mapBoot(false)
		}
	case types.VBK:
		if !m.cgb {
			return false
		}
		m.VRAM.SetBank(int(v & 0x01))
	case types.SVBK:
		if !m.cgb {
			return false
		}
		bank := v & 0x07
		if bank == 0 {
			bank = 1
		}
		m.WRAMX.SetBank(int(bank) - 1)
	case types.HDMA1, types.HDMA2, types.HDMA3, types.HDMA4:
		if !m.cgb {
			return false
		}
		m.IO.FastWrite(addr, v)
	case types.HDMA5:
		if !m.cgb {
			return false
		}
		m.vramDMA(v)
	}
	return true
}

// OnRestore maps the boot ROM back in if it was still active.
func (r *registers) OnRestore() {
	r.m.mapBoot(!r.m.bootDone)
}

// oamDMA copies 160 bytes from page v to OAM. The transfer completes
// at once rather than over 160 M-cycles.
func (m *MMU) oamDMA(v uint8) {
	src := uint16(v) << 8
	if src >= types.EchoStart {
		src -= 0x2000
	}
	for i := uint16(0); i < 0xA0; i++ {
		m.OAM.FastWrite(types.OAMStart+i, m.Read(src+i))
	}
}

// vramDMA performs a CGB general purpose transfer into VRAM. HBlank
// transfers are performed the same way, as there is no PPU to pace them.
func (m *MMU) vramDMA(v uint8) {
	src := uint16(m.IO.FastRead(types.HDMA1))<<8 | uint16(m.IO.FastRead(types.HDMA2)&0xF0)
	dst := uint16(m.IO.FastRead(types.HDMA3)&0x1F)<<8 | uint16(m.IO.FastRead(types.HDMA4)&0xF0)
	length := (uint16(v&0x7F) + 1) * 16

	for i := uint16(0); i < length; i++ {
		m.VRAM.FastWrite(types.VRAMStart+(dst+i)&0x1FFF, m.Read(src+i))
	}
	m.log.Debugf("mmu: vram dma %d bytes %04X -> %04X", length, src, types.VRAMStart+dst)
}
