package apu

// lengthCounter silences a channel once a programmable number of
// 256 Hz ticks has elapsed.
type lengthCounter struct {
	counter uint16
	max     uint16 // 64, or 256 for the wave channel
	enabled bool
}

// load sets the counter from the length field of NRx1.
func (l *lengthCounter) load(v uint8) {
	l.counter = l.max - uint16(v)&(l.max-1)
}

// clock decrements the counter, reporting whether it expired.
func (l *lengthCounter) clock() bool {
	if !l.enabled || l.counter == 0 {
		return false
	}
	l.counter--
	return l.counter == 0
}

// setEnable applies the length enable bit of NRx4. Enabling the counter
// while the next sequencer step won't clock it clocks it once straight
// away, which may expire it.
func (l *lengthCounter) setEnable(on, firstHalf bool) (expired bool) {
	if on && !l.enabled && firstHalf && l.counter > 0 {
		l.counter--
		expired = l.counter == 0
	}
	l.enabled = on
	return expired
}

// trigger reloads an expired counter. If the next sequencer step won't
// clock it, the reloaded counter is clocked once straight away.
func (l *lengthCounter) trigger(firstHalf bool) {
	if l.counter != 0 {
		return
	}
	l.counter = l.max
	if l.enabled && firstHalf {
		l.counter--
	}
}
