package apu

import (
	"math"
	"testing"

	"github.com/thelolagemann/gbcore/internal/types"
)

func tick(a *APU, n int) {
	for i := 0; i < n; i++ {
		a.Tick()
	}
}

func read(t *testing.T, a *APU, addr uint16) uint8 {
	t.Helper()
	v, ok := a.Read(addr)
	if !ok {
		t.Fatalf("read of %04X rejected", addr)
	}
	return v
}

func TestAPU_Registers(t *testing.T) {
	a := New()

	t.Run("power on", func(t *testing.T) {
		if v := read(t, a, types.NR52); v != 0xF0 {
			t.Errorf("expected NR52 F0, got %02X", v)
		}
	})
	t.Run("read masks", func(t *testing.T) {
		tests := []struct {
			addr          uint16
			write, expect uint8
		}{
			{types.NR10, 0x00, 0x80},
			{types.NR10, 0x7F, 0xFF},
			{types.NR11, 0x80, 0xBF},
			{types.NR12, 0x00, 0x00},
			{types.NR13, 0x12, 0xFF},
			{types.NR14, 0x00, 0xBF},
			{types.NR14, 0x40, 0xFF},
			{0xFF15, 0x00, 0xFF},
			{types.NR30, 0x00, 0x7F},
			{types.NR32, 0x20, 0xBF},
			{types.NR43, 0x5A, 0x5A},
			{types.NR44, 0x00, 0xBF},
			{types.NR50, 0x77, 0x77},
			{types.NR51, 0xF3, 0xF3},
			{0xFF27, 0x00, 0xFF},
			{0xFF2F, 0x12, 0xFF},
		}
		for _, tt := range tests {
			a.Write(tt.addr, tt.write)
			if v := read(t, a, tt.addr); v != tt.expect {
				t.Errorf("%04X: wrote %02X, expected %02X, got %02X", tt.addr, tt.write, tt.expect, v)
			}
		}
	})
	t.Run("unused registers ignore writes", func(t *testing.T) {
		if a.Write(0xFF27, 0x00) {
			t.Errorf("expected write to FF27 to be rejected")
		}
	})
}

func TestAPU_Trigger(t *testing.T) {
	t.Run("dac on", func(t *testing.T) {
		a := New()
		a.Write(types.NR22, 0xF0)
		a.Write(types.NR24, 0x80)
		if !a.ChannelEnabled(2) {
			t.Errorf("expected channel 2 to be enabled")
		}
		if v := read(t, a, types.NR52); v != 0xF2 {
			t.Errorf("expected NR52 F2, got %02X", v)
		}
	})
	t.Run("dac off", func(t *testing.T) {
		a := New()
		a.Write(types.NR12, 0x00)
		a.Write(types.NR14, 0x80)
		if a.ChannelEnabled(1) {
			t.Errorf("expected channel 1 to stay disabled without its DAC")
		}
	})
	t.Run("dac power off disables", func(t *testing.T) {
		a := New()
		a.Write(types.NR42, 0xF0)
		a.Write(types.NR44, 0x80)
		a.Write(types.NR42, 0x00)
		if a.ChannelEnabled(4) {
			t.Errorf("expected channel 4 to be disabled with its DAC")
		}
	})
	t.Run("length expiry", func(t *testing.T) {
		a := New()
		a.Write(types.NR21, 0x3F) // length 1
		a.Write(types.NR22, 0xF0)
		a.Write(types.NR24, 0xC0)

		tick(a, frameSequencerPeriod-1)
		if !a.ChannelEnabled(2) {
			t.Fatalf("expected channel 2 to still be playing")
		}
		tick(a, 1)
		if a.ChannelEnabled(2) {
			t.Errorf("expected channel 2 to be silenced by its length counter")
		}
	})
	t.Run("sweep overflow", func(t *testing.T) {
		a := New()
		a.Write(types.NR10, 0x01) // period 0, add, shift 1
		a.Write(types.NR12, 0xF0)
		a.Write(types.NR13, 0xFF)
		a.Write(types.NR14, 0x87) // frequency 0x7FF
		if a.ChannelEnabled(1) {
			t.Errorf("expected trigger time overflow to disable channel 1")
		}
	})
}

func TestAPU_Power(t *testing.T) {
	a := New()
	a.Write(types.NR50, 0x77)
	a.Write(types.NR21, 0x3E) // length 2
	a.Write(types.NR22, 0xF0)
	a.Write(types.NR24, 0x80)

	a.Write(types.NR52, 0x00)
	if v := read(t, a, types.NR52); v != 0x70 {
		t.Errorf("expected NR52 70, got %02X", v)
	}
	if a.ChannelEnabled(2) {
		t.Errorf("expected channels to be disabled")
	}
	if a.chan2.length.counter != 2 {
		t.Errorf("expected length counter to survive power off, got %d", a.chan2.length.counter)
	}

	t.Run("writes rejected", func(t *testing.T) {
		if a.Write(types.NR50, 0x77) {
			t.Errorf("expected NR50 write to be rejected")
		}
		if v := read(t, a, types.NR50); v != 0 {
			t.Errorf("expected NR50 00, got %02X", v)
		}
	})
	t.Run("length writable", func(t *testing.T) {
		if !a.Write(types.NR41, 0x3F) {
			t.Errorf("expected NR41 write to be accepted")
		}
		if a.chan4.length.counter != 1 {
			t.Errorf("expected length 1, got %d", a.chan4.length.counter)
		}
	})
	t.Run("wave ram writable", func(t *testing.T) {
		if !a.Write(types.WaveRAMStart, 0xA5) || read(t, a, types.WaveRAMStart) != 0xA5 {
			t.Errorf("expected wave RAM to be writable while powered off")
		}
	})
	t.Run("sequencer halted", func(t *testing.T) {
		tick(a, frameSequencerPeriod*2)
		if a.step != 0 {
			t.Errorf("expected frame sequencer to be halted, got step %d", a.step)
		}
	})
	t.Run("power on", func(t *testing.T) {
		a.Write(types.NR52, 0x80)
		if !a.Powered() {
			t.Fatalf("expected APU to be powered")
		}
		if v := read(t, a, types.NR50); v != 0 {
			t.Errorf("expected registers to be cleared, got NR50 %02X", v)
		}
		if !a.Write(types.NR50, 0x12) || read(t, a, types.NR50) != 0x12 {
			t.Errorf("expected writes to be accepted after power on")
		}
	})
}

func TestAPU_WaveRAM(t *testing.T) {
	a := New()
	for i := uint16(0); i < 16; i++ {
		a.Write(types.WaveRAMStart+i, uint8(i*0x11))
	}
	if v := read(t, a, types.WaveRAMStart+3); v != 0x33 {
		t.Errorf("expected 33, got %02X", v)
	}

	a.Write(types.NR30, 0x80)
	a.Write(types.NR34, 0x80)
	if !a.ChannelEnabled(3) {
		t.Fatalf("expected channel 3 to be enabled")
	}
	tick(a, 4)

	if v := read(t, a, types.WaveRAMStart+3); v != 0xFF {
		t.Errorf("expected FF outside of the channel's read, got %02X", v)
	}
	a.Write(types.WaveRAMStart+3, 0x00)
	if a.Data(0)[0x23] != 0x33 {
		t.Errorf("expected write to be ignored while playing")
	}

	a.Write(types.NR30, 0x00)
	if v := read(t, a, types.WaveRAMStart+3); v != 0x33 {
		t.Errorf("expected direct access once stopped, got %02X", v)
	}
}

func TestAPU_Mixing(t *testing.T) {
	b := NewSampleBuffer(64)
	a := New(WithSampleBuffer(b), WithSampleRate(ClockSpeed/4))
	a.Write(types.NR50, 0x77)
	a.Write(types.NR51, 0xFF)
	a.Write(types.NR22, 0xF0)
	a.Write(types.NR24, 0x80)

	tick(a, 40)
	if b.Len() != 10 {
		t.Fatalf("expected 10 frames, got %d", b.Len())
	}
	for b.Len() > 0 {
		f, _ := b.Pull()
		if math.Abs(float64(f.L)) != 0.25 || f.L != f.R {
			t.Errorf("expected +-0.25 on both sides, got %v", f)
		}
	}

	t.Run("mute", func(t *testing.T) {
		a.Mute(2, true)
		tick(a, 40)
		for b.Len() > 0 {
			if f, _ := b.Pull(); f != (Frame{}) {
				t.Errorf("expected silence, got %v", f)
			}
		}
		a.Mute(2, false)
	})
	t.Run("panning", func(t *testing.T) {
		a.Write(types.NR51, 0x20) // channel 2 left only
		tick(a, 40)
		for b.Len() > 0 {
			if f, _ := b.Pull(); f.R != 0 || f.L == 0 {
				t.Errorf("expected left only output, got %v", f)
			}
		}
	})
}

func TestAPU_State(t *testing.T) {
	configure := func(a *APU) {
		a.Write(types.NR50, 0x77)
		a.Write(types.NR51, 0xFF)
		a.Write(types.NR10, 0x21)
		a.Write(types.NR12, 0xA3)
		a.Write(types.NR13, 0x40)
		a.Write(types.NR14, 0xC5)
		a.Write(types.NR42, 0xF1)
		a.Write(types.NR43, 0x13)
		a.Write(types.NR44, 0x80)
	}

	b1 := NewSampleBuffer(4096)
	a := New(WithSampleBuffer(b1))
	configure(a)
	tick(a, 30000)

	s := types.NewState()
	a.Save(s)

	b2 := NewSampleBuffer(4096)
	restored := New(WithSampleBuffer(b2))
	s.ResetPosition()
	if err := restored.Load(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.chan4.lfsr.lfsr != a.chan4.lfsr.lfsr || restored.chan1.frequency != a.chan1.frequency {
		t.Errorf("expected channel state to be restored")
	}

	b1.Clear()
	tick(a, 20000)
	tick(restored, 20000)
	if b1.Len() != b2.Len() {
		t.Fatalf("expected %d frames, got %d", b1.Len(), b2.Len())
	}
	for b1.Len() > 0 {
		f1, _ := b1.Pull()
		f2, _ := b2.Pull()
		if f1 != f2 {
			t.Fatalf("expected %v, got %v", f1, f2)
		}
	}
}
