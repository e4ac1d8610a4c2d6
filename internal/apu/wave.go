package apu

// waveShift maps the output level of NR32 to the shift applied to each
// sample: mute, 100%, 50% and 25%.
var waveShift = [4]uint8{4, 0, 1, 2}

// waveTable plays back the 32 4-bit samples held in wave RAM, high
// nibble first.
type waveTable struct {
	ram      []byte // 16 bytes of wave RAM
	position uint8
	sample   uint8 // last nibble read
	level    uint8

	// sinceRead counts T-cycles since wave RAM was last read by the
	// channel. The CPU can only reach wave RAM during that cycle.
	sinceRead uint8
}

func (w *waveTable) nibble(i uint8) uint8 {
	b := w.ram[i/2&0x0F]
	if i&1 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

// advance moves to the next sample, wrapping after 32.
func (w *waveTable) advance() {
	w.position = (w.position + 1) & 0x1F
	w.sample = w.nibble(w.position)
	w.sinceRead = 0
}

// trigger rewinds the table. The sample buffer isn't refilled, so
// sample 0 isn't heard until the table loops.
func (w *waveTable) trigger() {
	w.position = 0
}

func (w *waveTable) output() uint8 {
	return w.sample >> waveShift[w.level]
}

// current returns the byte of wave RAM the channel last read.
func (w *waveTable) current() *byte {
	return &w.ram[w.position/2]
}
