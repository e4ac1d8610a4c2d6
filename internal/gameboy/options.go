package gameboy

import (
	"github.com/thelolagemann/gbcore/internal/apu"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before it is assembled.
type Opt func(gb *GameBoy)

// Debug enables range checking on every memory component.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// NoAudio disables sample production. The APU still runs so its
// registers behave normally.
func NoAudio() Opt {
	return func(gb *GameBoy) {
		gb.buffer = nil
		gb.noAudio = true
	}
}

// WithSampleBuffer sets the buffer the APU pushes mixed frames to.
func WithSampleBuffer(b *apu.SampleBuffer) Opt {
	return func(gb *GameBoy) {
		if !gb.noAudio {
			gb.buffer = b
		}
	}
}

// WithSampleRate sets the number of frames produced per second.
func WithSampleRate(rate uint32) Opt {
	return func(gb *GameBoy) {
		gb.sampleRate = rate
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.log = log
	}
}

// WithState restores the machine from a raw savestate once it has
// been assembled.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// WithBootROM sets the boot ROM for the emulator. Without one the
// emulator starts at 0x100 with the registers set to the values upon
// completion of the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithRAM restores battery backed cartridge RAM.
func WithRAM(ram []byte) Opt {
	return func(gb *GameBoy) {
		gb.ram = ram
	}
}
