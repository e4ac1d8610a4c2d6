package apu

// waveChannel is channel 3, playing back wave RAM.
type waveChannel struct {
	channel
	table waveTable
}

func newWaveChannel(ram []byte) *waveChannel {
	return &waveChannel{
		channel: channel{length: lengthCounter{max: 256}},
		table:   waveTable{ram: ram},
	}
}

func (w *waveChannel) period() uint32 {
	return (2048 - uint32(w.frequency)) * 2
}

func (w *waveChannel) step() {
	if w.table.sinceRead < 0xFF {
		w.table.sinceRead++
	}
	if w.timer > 0 {
		w.timer--
	}
	if w.timer == 0 {
		w.timer = w.period()
		w.table.advance()
	}
}

func (w *waveChannel) sequencerStep(step uint8) {
	w.clockLength(step)
}

// trigger restarts playback. The first sample is delayed by a few
// cycles on hardware.
func (w *waveChannel) trigger() {
	w.table.trigger()
	w.timer = w.period() + 6
}

func (w *waveChannel) amplitude() uint8 {
	if !w.active() {
		return 0
	}
	return w.table.output()
}
