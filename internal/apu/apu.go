// Package apu implements the Game Boy's audio processing unit: two
// square channels (one with frequency sweep), a wave channel and a
// noise channel, clocked by a shared frame sequencer.
package apu

import (
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/bits"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the number of T-cycles per second.
	ClockSpeed = 4194304
	// DefaultSampleRate is the rate at which frames are produced
	// unless configured otherwise.
	DefaultSampleRate = 48000

	frameSequencerRate   = 512
	frameSequencerPeriod = ClockSpeed / frameSequencerRate

	registerCount = 0x30 // NR10 through the end of wave RAM
)

// readMasks holds the bits of each register that always read as 1.
var readMasks = [0x20]uint8{
	0x80, 0x3F, 0x00, 0xFF, 0xBF, // NR10-NR14
	0xFF, 0x3F, 0x00, 0xFF, 0xBF, // NR20-NR24
	0x7F, 0xFF, 0x9F, 0xFF, 0xBF, // NR30-NR34
	0xFF, 0xFF, 0x00, 0x00, 0xBF, // NR40-NR44
	0x00, 0x00, 0x70, // NR50-NR52
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
}

// APU represents the Game Boy's audio processing unit. Its registers
// and wave RAM are a single memory component mapped at 0xFF10.
type APU struct {
	*memory.Component

	powered bool

	chan1 *sweepChannel
	chan2 *squareChannel
	chan3 *waveChannel
	chan4 *noiseChannel

	// step is the next frame sequencer step to run.
	step           uint8
	sequencerTimer uint32

	sampleRate    uint32
	sampleCounter uint32
	buffer        *SampleBuffer

	log log.Logger
}

// Opt configures an APU.
type Opt func(a *APU)

// WithSampleBuffer sets the buffer that mixed frames are pushed to.
// Without one, no frames are produced.
func WithSampleBuffer(b *SampleBuffer) Opt {
	return func(a *APU) {
		a.buffer = b
	}
}

// WithSampleRate sets the number of frames produced per second.
func WithSampleRate(rate uint32) Opt {
	return func(a *APU) {
		if rate > 0 && rate <= ClockSpeed {
			a.sampleRate = rate
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(a *APU) {
		a.log = l
	}
}

// New returns a powered on APU.
func New(opts ...Opt) *APU {
	a := &APU{
		sampleRate: DefaultSampleRate,
		log:        log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Component = memory.New("APU ", types.NR10, registerCount, memory.WithLogger(a.log))
	a.chan1 = newSweepChannel()
	a.chan2 = newSquareChannel()
	a.chan3 = newWaveChannel(a.Data(0)[types.WaveRAMStart-types.NR10:])
	a.chan4 = newNoiseChannel()
	a.Attach(a)
	a.registerFields()

	a.powered = true
	a.FastWrite(types.NR52, 0x80)
	return a
}

// Powered reports whether the APU is switched on through NR52.
func (a *APU) Powered() bool { return a.powered }

// ChannelEnabled reports whether channel n (1-4) is playing.
func (a *APU) ChannelEnabled(n int) bool {
	if c := a.channel(n); c != nil {
		return c.enabled
	}
	return false
}

// Mute silences channel n (1-4) in the mixed output without affecting
// its emulation.
func (a *APU) Mute(n int, muted bool) {
	if c := a.channel(n); c != nil {
		c.muted = muted
	}
}

func (a *APU) channel(n int) *channel {
	switch n {
	case 1:
		return &a.chan1.channel
	case 2:
		return &a.chan2.channel
	case 3:
		return &a.chan3.channel
	case 4:
		return &a.chan4.channel
	}
	return nil
}

// firstHalf reports whether the next sequencer step leaves the length
// counters alone.
func (a *APU) firstHalf() bool {
	return a.step&1 == 1
}

// Tick advances the APU by one T-cycle.
func (a *APU) Tick() {
	if a.powered {
		if a.sequencerTimer++; a.sequencerTimer >= frameSequencerPeriod {
			a.sequencerTimer = 0
			a.sequence()
		}

		a.chan1.step()
		a.chan2.step()
		a.chan3.step()
		a.chan4.step()
	}

	if a.sampleCounter += a.sampleRate; a.sampleCounter >= ClockSpeed {
		a.sampleCounter -= ClockSpeed
		if a.buffer != nil {
			f := a.mix()
			a.buffer.Push(f.L, f.R)
		}
	}
}

// sequence runs one frame sequencer step. Every channel works out
// which steps concern it from the shared step number.
func (a *APU) sequence() {
	step := a.step
	a.chan1.sequencerStep(step)
	a.chan2.sequencerStep(step)
	a.chan3.sequencerStep(step)
	a.chan4.sequencerStep(step)
	a.step = (a.step + 1) & 7
}

// mix combines the channels into a stereo frame according to NR50 and
// NR51.
func (a *APU) mix() Frame {
	if !a.powered {
		return Frame{}
	}

	outputs := [4]float32{
		a.chan1.dacOutput(a.chan1.amplitude()),
		a.chan2.dacOutput(a.chan2.amplitude()),
		a.chan3.dacOutput(a.chan3.amplitude()),
		a.chan4.dacOutput(a.chan4.amplitude()),
	}
	panning := a.FastRead(types.NR51)
	volume := a.FastRead(types.NR50)

	var left, right float32
	for i, out := range outputs {
		if panning&(1<<(i+4)) != 0 {
			left += out
		}
		if panning&(1<<i) != 0 {
			right += out
		}
	}
	left *= float32(volume>>4&0x07+1) / 8 / 4
	right *= float32(volume&0x07+1) / 8 / 4
	return Frame{L: left, R: right}
}

// CheckRegister intercepts the sound registers, and wave RAM while the
// wave channel is playing.
func (a *APU) CheckRegister(addr uint16, kind memory.AccessKind) bool {
	if addr < types.WaveRAMStart {
		return true
	}
	return a.chan3.active()
}

// PreWrite rejects register writes while powered off. NR52, wave RAM
// and the length loads remain writable.
func (a *APU) PreWrite(addr uint16, bank int, v uint8) bool {
	if a.powered || addr >= types.NR52 {
		return true
	}
	switch addr {
	case types.NR11, types.NR21, types.NR31, types.NR41:
		return true
	}
	return false
}

// PreRead never rejects.
func (a *APU) PreRead(addr uint16, bank int) (uint8, bool) {
	return 0, true
}

// ReadRegister returns the readable bits of a register.
func (a *APU) ReadRegister(addr uint16) uint8 {
	if addr >= types.WaveRAMStart {
		if a.chan3.table.sinceRead < 2 {
			return *a.chan3.table.current()
		}
		return 0xFF
	}

	i := addr - types.NR10
	switch addr {
	case types.NR10:
		return a.chan1.readSweep() | readMasks[i]
	case types.NR12:
		return a.chan1.envelope.read()
	case types.NR22:
		return a.chan2.envelope.read()
	case types.NR42:
		return a.chan4.envelope.read()
	case types.NR43:
		return a.chan4.lfsr.read()
	case types.NR52:
		v := readMasks[i] | bits.Bool[uint8](a.powered)<<7
		for n := 1; n <= 4; n++ {
			v |= bits.Bool[uint8](a.ChannelEnabled(n)) << (n - 1)
		}
		return v
	}
	return a.FastRead(addr) | readMasks[i]
}

// WriteRegister applies a register write.
func (a *APU) WriteRegister(addr uint16, v uint8) bool {
	switch {
	case addr >= types.WaveRAMStart:
		if a.chan3.table.sinceRead < 2 {
			*a.chan3.table.current() = v
		}
		return true
	case addr > types.NR52:
		return false
	case addr == types.NR52:
		a.setPower(v&0x80 != 0)
		return true
	case !a.powered:
		// only the length counters are reachable
		switch addr {
		case types.NR11:
			a.chan1.length.load(v & 0x3F)
		case types.NR21:
			a.chan2.length.load(v & 0x3F)
		case types.NR31:
			a.chan3.length.load(v)
		case types.NR41:
			a.chan4.length.load(v & 0x3F)
		}
		return true
	}

	a.FastWrite(addr, v)
	firstHalf := a.firstHalf()

	switch addr {
	case types.NR10:
		a.chan1.setSweep(v)
	case types.NR11:
		a.chan1.setDuty(v)
	case types.NR12:
		a.chan1.setEnvelope(v)
	case types.NR13:
		a.chan1.setFrequencyLow(v)
	case types.NR14:
		if a.chan1.control(v, firstHalf) {
			a.chan1.trigger()
		}

	case types.NR21:
		a.chan2.setDuty(v)
	case types.NR22:
		a.chan2.setEnvelope(v)
	case types.NR23:
		a.chan2.setFrequencyLow(v)
	case types.NR24:
		if a.chan2.control(v, firstHalf) {
			a.chan2.trigger()
		}

	case types.NR30:
		a.chan3.setDAC(v&0x80 != 0)
	case types.NR31:
		a.chan3.length.load(v)
	case types.NR32:
		a.chan3.table.level = v >> 5 & 0x03
	case types.NR33:
		a.chan3.setFrequencyLow(v)
	case types.NR34:
		if a.chan3.control(v, firstHalf) {
			a.chan3.trigger()
		}

	case types.NR41:
		a.chan4.length.load(v & 0x3F)
	case types.NR42:
		a.chan4.setEnvelope(v)
	case types.NR43:
		a.chan4.lfsr.write(v)
	case types.NR44:
		if a.chan4.control(v, firstHalf) {
			a.chan4.trigger()
		}
	}
	return true
}

// setPower switches the APU on or off. Powering off clears every
// register except the length counters.
func (a *APU) setPower(on bool) {
	switch {
	case on && !a.powered:
		a.powered = true
		a.step = 0
		a.sequencerTimer = 0
		a.chan1.position, a.chan2.position = 0, 0
		a.chan3.table.sample = 0
	case !on && a.powered:
		lengths := [4]uint16{
			a.chan1.length.counter, a.chan2.length.counter,
			a.chan3.length.counter, a.chan4.length.counter,
		}
		for addr := types.NR10; addr < types.NR52; addr++ {
			a.WriteRegister(addr, 0)
		}
		a.chan1.length.counter, a.chan2.length.counter = lengths[0], lengths[1]
		a.chan3.length.counter, a.chan4.length.counter = lengths[2], lengths[3]
		for n := 1; n <= 4; n++ {
			a.channel(n).enabled = false
		}
		a.powered = false
	}
	a.FastWrite(types.NR52, 0)
	if a.powered {
		a.FastWrite(types.NR52, 0x80)
	}
}

// OnReset restores the power on state after the component is cleared.
func (a *APU) OnReset() {
	*a.chan1.squareChannel = *newSquareChannel()
	a.chan1.sweep = sweep{}
	*a.chan2 = *newSquareChannel()
	*a.chan3 = *newWaveChannel(a.Data(0)[types.WaveRAMStart-types.NR10:])
	*a.chan4 = *newNoiseChannel()
	a.step, a.sequencerTimer, a.sampleCounter = 0, 0, 0
	a.powered = true
	a.FastWrite(types.NR52, 0x80)
}
