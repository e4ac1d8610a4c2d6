package apu

import "github.com/thelolagemann/gbcore/internal/types"

// channel holds the state shared by all four sound channels.
type channel struct {
	enabled bool
	dac     bool
	length  lengthCounter

	frequency uint16 // 11-bit period value from NRx3/NRx4
	timer     uint32 // T-cycles until the generator next advances
	muted     bool
}

// active reports whether the channel is producing output.
func (c *channel) active() bool {
	return c.enabled && c.dac
}

// setDAC powers the channel's DAC. A channel can't play with its DAC
// off.
func (c *channel) setDAC(on bool) {
	c.dac = on
	if !on {
		c.enabled = false
	}
}

// clockLength clocks the length counter on even sequencer steps.
func (c *channel) clockLength(step uint8) {
	if step&1 == 0 && c.length.clock() {
		c.enabled = false
	}
}

// setFrequencyLow applies NRx3.
func (c *channel) setFrequencyLow(v uint8) {
	c.frequency = c.frequency&0x0700 | uint16(v)
}

// control applies NRx4, reporting whether the channel was triggered.
func (c *channel) control(v uint8, firstHalf bool) bool {
	c.frequency = c.frequency&0x00FF | uint16(v&0x07)<<8
	if c.length.setEnable(v&types.Bit6 != 0, firstHalf) {
		c.enabled = false
	}
	if v&types.Bit7 == 0 {
		return false
	}

	c.enabled = c.dac
	c.length.trigger(firstHalf)
	return true
}

// dacOutput converts a 4-bit amplitude to the DAC's -1..1 range. A
// powered off DAC outputs silence.
func (c *channel) dacOutput(amplitude uint8) float32 {
	if !c.dac || c.muted {
		return 0
	}
	return float32(amplitude)/7.5 - 1
}
