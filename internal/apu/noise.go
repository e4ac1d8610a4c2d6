package apu

// noiseDivisors maps the divisor code of NR43 to a period in T-cycles.
var noiseDivisors = [8]uint32{8, 16, 32, 48, 64, 80, 96, 112}

// shiftRegister is the 15-bit linear feedback shift register that
// drives the noise channel.
type shiftRegister struct {
	lfsr       uint16
	short      bool // 7-bit mode
	clockShift uint8
	divisor    uint8
}

// write applies NR43.
func (s *shiftRegister) write(v uint8) {
	s.clockShift = v >> 4
	s.short = v&0x08 != 0
	s.divisor = v & 0x07
}

func (s *shiftRegister) read() uint8 {
	v := s.clockShift<<4 | s.divisor
	if s.short {
		v |= 0x08
	}
	return v
}

// period returns the number of T-cycles between rollovers.
func (s *shiftRegister) period() uint32 {
	return noiseDivisors[s.divisor] << s.clockShift
}

func (s *shiftRegister) reset() {
	s.lfsr = 0x7FFF
}

// rollover shifts the register right, feeding bit 0 XOR bit 1 back
// into bit 14, and bit 6 too in 7-bit mode.
func (s *shiftRegister) rollover() {
	x := (s.lfsr ^ s.lfsr>>1) & 1
	s.lfsr = s.lfsr>>1 | x<<14
	if s.short {
		s.lfsr = s.lfsr&^(1<<6) | x<<6
	}
}

// output returns 1 when bit 0 is clear.
func (s *shiftRegister) output() uint8 {
	return uint8(^s.lfsr & 1)
}
