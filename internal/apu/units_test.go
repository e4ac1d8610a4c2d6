package apu

import "testing"

func TestLengthCounter(t *testing.T) {
	t.Run("expiry", func(t *testing.T) {
		l := lengthCounter{max: 64, enabled: true}
		l.load(62)
		if l.counter != 2 {
			t.Fatalf("expected counter 2, got %d", l.counter)
		}
		if l.clock() {
			t.Errorf("expected counter not to expire after 1 clock")
		}
		if !l.clock() {
			t.Errorf("expected counter to expire after 2 clocks")
		}
		if l.clock() || l.counter != 0 {
			t.Errorf("expected expired counter to stay at 0")
		}
	})
	t.Run("disabled", func(t *testing.T) {
		l := lengthCounter{max: 256}
		l.load(0xFF)
		for i := 0; i < 500; i++ {
			if l.clock() || l.counter != 1 {
				t.Fatalf("clock %d: expected disabled counter to hold at 1, got %d", i, l.counter)
			}
		}
	})
	t.Run("enable extra clock", func(t *testing.T) {
		l := lengthCounter{max: 64}
		l.load(63)
		if l.setEnable(true, false) || l.counter != 1 {
			t.Errorf("expected no extra clock in the second half, got %d", l.counter)
		}

		l = lengthCounter{max: 64}
		l.load(63)
		if !l.setEnable(true, true) {
			t.Errorf("expected extra clock to expire the counter")
		}

		// already enabled counters aren't clocked again
		l = lengthCounter{max: 64, enabled: true}
		l.load(60)
		l.setEnable(true, true)
		if l.counter != 4 {
			t.Errorf("expected 4, got %d", l.counter)
		}
	})
	t.Run("trigger", func(t *testing.T) {
		tests := []struct {
			name      string
			counter   uint16
			enabled   bool
			firstHalf bool
			expected  uint16
		}{
			{"reload", 0, false, false, 64},
			{"reload second half", 0, true, false, 64},
			{"reload extra clock", 0, true, true, 63},
			{"reload disabled first half", 0, false, true, 64},
			{"running", 12, true, true, 12},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				l := lengthCounter{max: 64, counter: tt.counter, enabled: tt.enabled}
				l.trigger(tt.firstHalf)
				if l.counter != tt.expected {
					t.Errorf("expected %d, got %d", tt.expected, l.counter)
				}
			})
		}
	})
}

func TestVolumeEnvelope(t *testing.T) {
	t.Run("increase saturates", func(t *testing.T) {
		var e volumeEnvelope
		e.write(0x09, false) // volume 0, add, period 1
		e.trigger()
		for i := 0; i < 20; i++ {
			e.clock()
		}
		if e.volume != 15 || e.updating {
			t.Errorf("expected frozen volume 15, got %d (updating %t)", e.volume, e.updating)
		}
	})
	t.Run("decrease saturates", func(t *testing.T) {
		var e volumeEnvelope
		e.write(0xA2, false) // volume 10, subtract, period 2
		e.trigger()
		for i := 0; i < 19; i++ {
			e.clock()
		}
		if e.volume != 1 {
			t.Errorf("expected volume 1 after 19 clocks, got %d", e.volume)
		}
		e.clock()
		if e.volume != 0 || e.updating {
			t.Errorf("expected frozen volume 0, got %d (updating %t)", e.volume, e.updating)
		}
	})
	t.Run("period 0", func(t *testing.T) {
		var e volumeEnvelope
		e.write(0x78, false)
		e.trigger()
		e.clock()
		if e.volume != 7 {
			t.Errorf("expected volume 7, got %d", e.volume)
		}
	})
	t.Run("zombie mode", func(t *testing.T) {
		var e volumeEnvelope
		e.write(0x50, false)
		e.trigger()
		e.write(0x58, true)
		if e.volume != 10 {
			t.Errorf("expected 16-(5+1)=10, got %d", e.volume)
		}

		// without a mode change the volume is only incremented
		e = volumeEnvelope{}
		e.write(0x50, false)
		e.trigger()
		e.write(0x50, true)
		if e.volume != 6 {
			t.Errorf("expected 6, got %d", e.volume)
		}
	})
	t.Run("dac", func(t *testing.T) {
		var e volumeEnvelope
		for v, expected := range map[uint8]bool{0x00: false, 0x07: false, 0x08: true, 0x10: true} {
			e.write(v, false)
			if e.dacEnabled() != expected {
				t.Errorf("NRx2=%02X: expected dac %t", v, expected)
			}
			if e.read() != v {
				t.Errorf("expected read back %02X, got %02X", v, e.read())
			}
		}
	})
}

func TestShiftRegister(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		var s shiftRegister
		s.reset()
		for i := 0; i < 13; i++ {
			s.rollover()
		}
		for _, expected := range []uint16{0x0001, 0x4000, 0x2000, 0x1000, 0x0800} {
			s.rollover()
			if s.lfsr != expected {
				t.Fatalf("expected %04X, got %04X", expected, s.lfsr)
			}
		}
	})
	t.Run("period", func(t *testing.T) {
		var s shiftRegister
		s.reset()
		for i := 1; i <= 32767; i++ {
			s.rollover()
			if s.lfsr == 0x7FFF && i != 32767 {
				t.Fatalf("sequence repeated after %d rollovers", i)
			}
		}
		if s.lfsr != 0x7FFF {
			t.Errorf("expected sequence to repeat after 32767 rollovers, got %04X", s.lfsr)
		}
	})
	t.Run("short", func(t *testing.T) {
		var s shiftRegister
		s.write(0x08)
		s.reset()
		for _, expected := range []uint16{0x3FBF, 0x1F9F, 0x0F8F} {
			s.rollover()
			if s.lfsr != expected {
				t.Errorf("expected %04X, got %04X", expected, s.lfsr)
			}
		}
		for i := 0; i < 200; i++ {
			s.rollover()
			if s.lfsr>>14&1 != s.lfsr>>6&1 {
				t.Fatalf("expected bit 6 to mirror bit 14, got %015b", s.lfsr)
			}
		}
	})
	t.Run("output", func(t *testing.T) {
		s := shiftRegister{lfsr: 0x4000}
		if s.output() != 1 {
			t.Errorf("expected 1 when bit 0 is clear")
		}
		s.lfsr = 0x0001
		if s.output() != 0 {
			t.Errorf("expected 0 when bit 0 is set")
		}
	})
	t.Run("period cycles", func(t *testing.T) {
		var s shiftRegister
		s.write(0x21) // shift 2, divisor 16
		if p := s.period(); p != 64 {
			t.Errorf("expected 64, got %d", p)
		}
		if s.read() != 0x21 {
			t.Errorf("expected 21, got %02X", s.read())
		}
	})
}

func TestWaveTable(t *testing.T) {
	ram := make([]byte, 16)
	ram[0], ram[1], ram[15] = 0x12, 0x34, 0xEF
	w := waveTable{ram: ram}

	if w.nibble(0) != 1 || w.nibble(1) != 2 || w.nibble(2) != 3 || w.nibble(31) != 0xF {
		t.Errorf("expected high nibble first")
	}

	w.advance()
	if w.position != 1 || w.sample != 2 {
		t.Errorf("expected position 1 sample 2, got %d %d", w.position, w.sample)
	}

	t.Run("trigger keeps sample", func(t *testing.T) {
		w.trigger()
		if w.position != 0 || w.sample != 2 {
			t.Errorf("expected position 0 with stale sample 2, got %d %d", w.position, w.sample)
		}
	})
	t.Run("loop", func(t *testing.T) {
		for i := 0; i < 32; i++ {
			w.advance()
		}
		if w.position != 0 || w.sample != 1 {
			t.Errorf("expected wrap to sample 0, got position %d sample %d", w.position, w.sample)
		}
	})
	t.Run("volume", func(t *testing.T) {
		w.sample = 0x0F
		for level, expected := range []uint8{0, 15, 7, 3} {
			w.level = uint8(level)
			if out := w.output(); out != expected {
				t.Errorf("level %d: expected %d, got %d", level, expected, out)
			}
		}
	})
}
