package apu

import "github.com/thelolagemann/gbcore/internal/types"

// volumeEnvelope ramps a channel's 4-bit volume on the 64 Hz sequencer
// step.
type volumeEnvelope struct {
	initial  uint8
	addMode  bool
	period   uint8
	timer    uint8
	volume   uint8
	updating bool
}

func (e *volumeEnvelope) clock() {
	if e.period == 0 || !e.updating {
		return
	}
	if e.timer > 0 {
		e.timer--
	}
	if e.timer != 0 {
		return
	}
	e.timer = e.period

	switch {
	case e.addMode && e.volume < 0x0F:
		e.volume++
	case !e.addMode && e.volume > 0:
		e.volume--
	}
	if e.volume == 0 || e.volume == 0x0F {
		e.updating = false
	}
}

// write applies NRx2. Writes to a playing channel modify its live volume (zombie mode).
func (e *volumeEnvelope) write(v uint8, playing bool) {
	addMode := v&types.Bit3 != 0
	if playing {
		if e.period == 0 && e.updating || !e.addMode {
			e.volume++
		}
		if addMode != e.addMode {
			e.volume = 0x10 - e.volume
		}
		e.volume &= 0x0F
	}

	e.initial = v >> 4
	e.addMode = addMode
	e.period = v & 0x07
}

// dacEnabled reports whether the register value powers the DAC: any
// initial volume, or add mode.
func (e *volumeEnvelope) dacEnabled() bool {
	return e.initial != 0 || e.addMode
}

func (e *volumeEnvelope) read() uint8 {
	v := e.initial<<4 | e.period
	if e.addMode {
		v |= types.Bit3
	}
	return v
}

func (e *volumeEnvelope) trigger() {
	e.timer = e.period
	e.volume = e.initial
	e.updating = true
}
