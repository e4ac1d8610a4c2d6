package apu

var dutyTable = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1}, // 12.5%
	{1, 0, 0, 0, 0, 0, 0, 1}, // 25%
	{1, 0, 0, 0, 0, 1, 1, 1}, // 50%
	{0, 1, 1, 1, 1, 1, 1, 0}, // 75%
}

// squareChannel is a pulse channel with a volume envelope, as used by
// channels 1 and 2.
type squareChannel struct {
	channel
	envelope volumeEnvelope
	duty     uint8
	position uint8
}

func newSquareChannel() *squareChannel {
	return &squareChannel{channel: channel{length: lengthCounter{max: 64}}}
}

func (s *squareChannel) period() uint32 {
	return (2048 - uint32(s.frequency)) * 4
}

// step advances the duty generator by one T-cycle.
func (s *squareChannel) step() {
	if s.timer > 0 {
		s.timer--
	}
	if s.timer == 0 {
		s.timer = s.period()
		s.position = (s.position + 1) & 7
	}
}

func (s *squareChannel) sequencerStep(step uint8) {
	s.clockLength(step)
	if step == 7 {
		s.envelope.clock()
	}
}

// setDuty applies NRx1.
func (s *squareChannel) setDuty(v uint8) {
	s.duty = v >> 6
	s.length.load(v & 0x3F)
}

func (s *squareChannel) setEnvelope(v uint8) {
	s.envelope.write(v, s.active())
	s.setDAC(s.envelope.dacEnabled())
}

func (s *squareChannel) trigger() {
	s.envelope.trigger()
	s.timer = s.period()
}

func (s *squareChannel) amplitude() uint8 {
	if !s.active() {
		return 0
	}
	return dutyTable[s.duty][s.position] * s.envelope.volume
}

// sweep periodically adjusts channel 1's frequency.
type sweep struct {
	period  uint8
	negate  bool
	shift   uint8
	timer   uint8
	shadow  uint16
	enabled bool
	negated bool // a negating calculation happened since the trigger
}

// sweepChannel is channel 1: a square channel with frequency sweep.
type sweepChannel struct {
	*squareChannel
	sweep sweep
}

func newSweepChannel() *sweepChannel {
	return &sweepChannel{squareChannel: newSquareChannel()}
}

// setSweep applies NR10. Clearing negate after a negating calculation
// disables the channel.
func (c *sweepChannel) setSweep(v uint8) {
	c.sweep.period = v >> 4 & 0x07
	c.sweep.negate = v&0x08 != 0
	c.sweep.shift = v & 0x07
	if !c.sweep.negate && c.sweep.negated {
		c.enabled = false
	}
}

func (c *sweepChannel) readSweep() uint8 {
	v := c.sweep.period<<4 | c.sweep.shift
	if c.sweep.negate {
		v |= 0x08
	}
	return v
}

func (c *sweepChannel) reloadSweep() {
	c.sweep.timer = c.sweep.period
	if c.sweep.timer == 0 {
		c.sweep.timer = 8
	}
}

func (c *sweepChannel) trigger() {
	c.squareChannel.trigger()
	c.sweep.shadow = c.frequency
	c.reloadSweep()
	c.sweep.enabled = c.sweep.period > 0 || c.sweep.shift > 0
	c.sweep.negated = false
	if c.sweep.shift > 0 {
		c.calculate()
	}
}

// calculate returns the next sweep frequency, disabling the channel on
// overflow.
func (c *sweepChannel) calculate() uint16 {
	delta := c.sweep.shadow >> c.sweep.shift
	next := c.sweep.shadow + delta
	if c.sweep.negate {
		next = c.sweep.shadow - delta
		c.sweep.negated = true
	}
	if next > 0x07FF {
		c.enabled = false
	}
	return next
}

func (c *sweepChannel) clockSweep() {
	if c.sweep.timer > 0 {
		c.sweep.timer--
	}
	if c.sweep.timer != 0 {
		return
	}
	c.reloadSweep()

	if !c.sweep.enabled || c.sweep.period == 0 {
		return
	}
	if next := c.calculate(); next <= 0x07FF && c.sweep.shift > 0 {
		c.sweep.shadow = next
		c.frequency = next
		c.calculate()
	}
}

func (c *sweepChannel) sequencerStep(step uint8) {
	c.squareChannel.sequencerStep(step)
	if step&3 == 2 {
		c.clockSweep()
	}
}
