// Package boot provides the boot ROM overlay. When the Game Boy powers
// on, the boot ROM is mapped over the start of the cartridge ROM until
// it unmaps itself by writing to 0xFF50.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/memory"
)

const (
	// DMGSize is the size of the DMG, MGB and SGB boot ROMs.
	DMGSize = 0x100
	// CGBSize is the size of the CGB boot ROM. The cartridge header at
	// 0x0100-0x01FF stays visible while it is mapped.
	CGBSize = 0x900
)

// ErrInvalidSize is returned for images that aren't a known boot ROM size.
var ErrInvalidSize = errors.New("boot: invalid boot rom size")

// ROM is a boot ROM, held in a read-only component mapped at 0x0000.
type ROM struct {
	*memory.Component
	checksum string
}

// New creates a boot ROM from a 256 or 2304 byte image.
func New(raw []byte) (*ROM, error) {
	if len(raw) != DMGSize && len(raw) != CGBSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, len(raw))
	}
	sum := md5.Sum(raw)

	b := &ROM{
		Component: memory.New("BOOT", 0x0000, len(raw), memory.ReadOnly(), memory.PersistRAM(false)),
		checksum:  hex.EncodeToString(sum[:]),
	}
	b.LoadData(raw)
	return b, nil
}

// CGB reports whether this is a colour boot ROM.
func (b *ROM) CGB() bool {
	return b.Size() == CGBSize
}

// Ranges returns the inclusive address ranges the boot ROM covers.
func (b *ROM) Ranges() [][2]uint16 {
	if b.CGB() {
		return [][2]uint16{{0x0000, 0x00FF}, {0x0200, 0x08FF}}
	}
	return [][2]uint16{{0x0000, 0x00FF}}
}

// Checksum returns the MD5 checksum of the boot ROM.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the hardware model the boot ROM belongs to, as
// identified by its checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownChecksums = map[string]string{
	DMG0:        "Game Boy (DMG-0)",
	DMG:         "Game Boy (DMG-01)",
	MGB:         "Game Boy Pocket",
	SGB:         "Super Game Boy",
	SGB2:        "Super Game Boy 2",
	CGB0:        "Game Boy Color (CGB-0)",
	CGB:         "Game Boy Color (CGB-A/B/C/D/E)",
	CGBAGB:      "Game Boy Advance (AGB-001)",
	Fortune:     "Fortune/Bitman 3000B",
	GameFighter: "Game Fighter",
	MaxStation:  "Max Station",
}

// MD5 checksums of known boot ROMs.
const (
	// DMG0 is the early DMG boot ROM, only sold in Japan. It flashes
	// the screen on a failed logo check instead of hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	DMG  = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by one byte, loading 0xFF into A.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs from SGB by one byte, loading 0xFF into A.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
	// CGB0 is the early CGB boot ROM, which doesn't initialise wave RAM.
	CGB0        = "7c773f3c0b01cb73bca8e83227287b7f"
	CGB         = "dbfce9db9deaa2567f6a84fde55f9680"
	CGBAGB      = "e6cefb5f7d352fab6681989763917c73"
	Fortune     = "92ed4eca17d61fcd53f8a64c3ce84743"
	GameFighter = "6a7b8ee12a793f66a969c6a2b8926cc9"
	MaxStation  = "77a7021db824010a678791f6d062943d"
)
