package apu

import "github.com/thelolagemann/gbcore/internal/memory"

// registerFields adds the internal state of the APU and its channels to
// the component's savestate. Mute settings are a property of the host
// and aren't saved.
func (a *APU) registerFields() {
	a.Register(
		memory.Var("powered", &a.powered),
		memory.Var("step", &a.step),
		memory.Var("sequencerTimer", &a.sequencerTimer),
		memory.Var("sampleCounter", &a.sampleCounter),
	)

	a.Register(channelFields("ch1", &a.chan1.channel)...)
	a.Register(envelopeFields("ch1", &a.chan1.envelope)...)
	a.Register(
		memory.Var("ch1.duty", &a.chan1.duty),
		memory.Var("ch1.position", &a.chan1.position),
		memory.Var("ch1.sweep.period", &a.chan1.sweep.period),
		memory.Var("ch1.sweep.negate", &a.chan1.sweep.negate),
		memory.Var("ch1.sweep.shift", &a.chan1.sweep.shift),
		memory.Var("ch1.sweep.timer", &a.chan1.sweep.timer),
		memory.Var("ch1.sweep.shadow", &a.chan1.sweep.shadow),
		memory.Var("ch1.sweep.enabled", &a.chan1.sweep.enabled),
		memory.Var("ch1.sweep.negated", &a.chan1.sweep.negated),
	)

	a.Register(channelFields("ch2", &a.chan2.channel)...)
	a.Register(envelopeFields("ch2", &a.chan2.envelope)...)
	a.Register(
		memory.Var("ch2.duty", &a.chan2.duty),
		memory.Var("ch2.position", &a.chan2.position),
	)

	a.Register(channelFields("ch3", &a.chan3.channel)...)
	a.Register(
		memory.Var("ch3.position", &a.chan3.table.position),
		memory.Var("ch3.sample", &a.chan3.table.sample),
		memory.Var("ch3.level", &a.chan3.table.level),
		memory.Var("ch3.sinceRead", &a.chan3.table.sinceRead),
	)

	a.Register(channelFields("ch4", &a.chan4.channel)...)
	a.Register(envelopeFields("ch4", &a.chan4.envelope)...)
	a.Register(
		memory.Var("ch4.lfsr", &a.chan4.lfsr.lfsr),
		memory.Var("ch4.short", &a.chan4.lfsr.short),
		memory.Var("ch4.clockShift", &a.chan4.lfsr.clockShift),
		memory.Var("ch4.divisor", &a.chan4.lfsr.divisor),
	)
}

func channelFields(prefix string, c *channel) []memory.Field {
	return []memory.Field{
		memory.Var(prefix+".enabled", &c.enabled),
		memory.Var(prefix+".dac", &c.dac),
		memory.Var(prefix+".length", &c.length.counter),
		memory.Var(prefix+".lengthEnabled", &c.length.enabled),
		memory.Var(prefix+".frequency", &c.frequency),
		memory.Var(prefix+".timer", &c.timer),
	}
}

func envelopeFields(prefix string, e *volumeEnvelope) []memory.Field {
	return []memory.Field{
		memory.Var(prefix+".envelope.initial", &e.initial),
		memory.Var(prefix+".envelope.add", &e.addMode),
		memory.Var(prefix+".envelope.period", &e.period),
		memory.Var(prefix+".envelope.timer", &e.timer),
		memory.Var(prefix+".envelope.volume", &e.volume),
		memory.Var(prefix+".envelope.updating", &e.updating),
	}
}
