// Package gameboy assembles the emulation core into a single machine
// that can be stepped, saved and restored.
package gameboy

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/apu"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the number of T-cycles per second.
	ClockSpeed = cpu.ClockSpeed
	// TicksPerFrame is the number of machine cycles in one 59.7 Hz frame.
	TicksPerFrame = 70224 / cpu.MachineCycle
)

// GameBoy represents a Game Boy. It contains all the components of the
// Game Boy, driven one machine cycle at a time from Tick.
type GameBoy struct {
	CPU  *cpu.CPU
	MMU  *mmu.MMU
	APU  *apu.APU
	Cart *cartridge.Cartridge
	Boot *boot.ROM

	Cheats *cheats.Engine

	log log.Logger

	debug      bool
	noAudio    bool
	buffer     *apu.SampleBuffer
	sampleRate uint32
	bootROM    []byte
	ram        []byte
	state      []byte
}

// New returns a new GameBoy running the given cartridge ROM.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	gb := &GameBoy{
		log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(gb)
	}

	cart, err := cartridge.New(rom, cartridge.WithLogger(gb.log))
	if err != nil {
		return nil, err
	}
	if gb.ram != nil {
		cart.LoadRAM(gb.ram)
	}
	gb.Cart = cart

	apuOpts := []apu.Opt{apu.WithLogger(log.WithField(gb.log, "apu"))}
	if gb.buffer != nil {
		apuOpts = append(apuOpts, apu.WithSampleBuffer(gb.buffer))
	}
	if gb.sampleRate != 0 {
		apuOpts = append(apuOpts, apu.WithSampleRate(gb.sampleRate))
	}
	gb.APU = apu.New(apuOpts...)

	mmuOpts := []mmu.Opt{mmu.WithLogger(log.WithField(gb.log, "mmu")), mmu.Debug(gb.debug)}
	if gb.bootROM != nil {
		b, err := boot.New(gb.bootROM)
		if err != nil {
			return nil, err
		}
		gb.Boot = b
		mmuOpts = append(mmuOpts, mmu.WithBootROM(b))
		gb.log.Infof("using boot rom %s (%s)", b.Model(), b.Checksum())
	}
	gb.MMU = mmu.New(cart, gb.APU, mmuOpts...)
	gb.CPU = cpu.New(gb.MMU, cpu.WithLogger(log.WithField(gb.log, "cpu")))
	gb.Cheats = cheats.New(cart, gb.MMU, log.WithField(gb.log, "cheats"))

	if gb.Boot == nil {
		gb.CPU.Reset()
		gb.MMU.PostBoot()
	}

	if gb.state != nil {
		if err := gb.Load(gb.state); err != nil {
			return nil, fmt.Errorf("gameboy: restoring state: %w", err)
		}
	}

	gb.log.Infof("loaded %s", cart.Header())
	return gb, nil
}

// Tick advances the machine by one machine cycle.
func (g *GameBoy) Tick() {
	g.CPU.Tick()
	for i := 0; i < cpu.MachineCycle; i++ {
		g.MMU.Timer.Tick()
		g.APU.Tick()
	}
}

// Step executes a single instruction, returning the number of machine
// cycles it took.
func (g *GameBoy) Step() int {
	n := 0
	for {
		g.Tick()
		n++
		c := g.CPU.Cursor()
		if g.CPU.Halted() || c.Retired() && !c.Prefixed() {
			return n
		}
	}
}

// Run advances the machine by the given number of machine cycles.
func (g *GameBoy) Run(cycles int) {
	for i := 0; i < cycles; i++ {
		g.Tick()
	}
}

// Frame advances the machine by a single frame's worth of cycles,
// then applies any enabled GameShark codes.
func (g *GameBoy) Frame() {
	g.Run(TicksPerFrame)
	g.Cheats.Frame()
}

// Read returns the byte the CPU would see at addr.
func (g *GameBoy) Read(addr uint16) uint8 {
	return g.MMU.Read(addr)
}

// Save returns the raw savestate of the machine.
func (g *GameBoy) Save() []byte {
	s := types.NewState()
	g.CPU.State().Save(s)
	g.MMU.Save(s)
	return s.Bytes()
}

// Load restores the machine from a raw savestate produced by Save.
func (g *GameBoy) Load(raw []byte) error {
	s := types.StateFromBytes(raw)
	if err := g.CPU.State().Load(s); err != nil {
		return err
	}
	if err := g.MMU.Load(s); err != nil {
		return err
	}
	g.flushAudio()
	return s.Err()
}

// Reset power cycles the machine, keeping battery backed RAM. The boot
// ROM is skipped.
func (g *GameBoy) Reset() {
	ram := g.Cart.SaveRAM()
	g.MMU.Reset()
	g.Cart.LoadRAM(ram)
	g.CPU.Reset()
	g.MMU.PostBoot()
	g.flushAudio()
}

// flushAudio drops frames produced before the machine state jumped.
func (g *GameBoy) flushAudio() {
	if g.buffer != nil {
		g.buffer.Clear()
	}
}
