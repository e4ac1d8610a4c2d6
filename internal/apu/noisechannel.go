package apu

// noiseChannel is channel 4, driven by the shift register.
type noiseChannel struct {
	channel
	envelope volumeEnvelope
	lfsr     shiftRegister
}

func newNoiseChannel() *noiseChannel {
	n := &noiseChannel{channel: channel{length: lengthCounter{max: 64}}}
	n.lfsr.reset()
	return n
}

func (n *noiseChannel) step() {
	if n.timer > 0 {
		n.timer--
	}
	if n.timer == 0 {
		n.timer = n.lfsr.period()
		n.lfsr.rollover()
	}
}

func (n *noiseChannel) sequencerStep(step uint8) {
	n.clockLength(step)
	if step == 7 {
		n.envelope.clock()
	}
}

func (n *noiseChannel) setEnvelope(v uint8) {
	n.envelope.write(v, n.active())
	n.setDAC(n.envelope.dacEnabled())
}

// trigger reseeds the shift register.
func (n *noiseChannel) trigger() {
	n.envelope.trigger()
	n.lfsr.reset()
	n.timer = n.lfsr.period()
}

func (n *noiseChannel) amplitude() uint8 {
	if !n.active() {
		return 0
	}
	return n.lfsr.output() * n.envelope.volume
}
