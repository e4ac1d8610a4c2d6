package audio

import (
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/thelolagemann/gbcore/internal/apu"
)

// ErrNoFrames is returned when plotting an empty recording.
var ErrNoFrames = errors.New("audio: no frames to plot")

var (
	leftColour  = color.RGBA{R: 0xE0, G: 0x40, B: 0x40, A: 0xFF}
	rightColour = color.RGBA{R: 0x40, G: 0x60, B: 0xE0, A: 0xFF}
)

// Waveform builds a plot of both channels against time in milliseconds.
func Waveform(frames []apu.Frame, sampleRate int) (*plot.Plot, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	left := make(plotter.XYs, len(frames))
	right := make(plotter.XYs, len(frames))
	for i, f := range frames {
		ms := float64(i) * 1000 / float64(sampleRate)
		left[i] = plotter.XY{X: ms, Y: float64(f.L)}
		right[i] = plotter.XY{X: ms, Y: float64(f.R)}
	}

	p := plot.New()
	p.Title.Text = "Waveform"
	p.X.Label.Text = "ms"
	p.Y.Label.Text = "amplitude"
	p.Y.Min, p.Y.Max = -1, 1
	p.Add(plotter.NewGrid())

	for _, ch := range []struct {
		name   string
		xys    plotter.XYs
		colour color.Color
	}{
		{"left", left, leftColour},
		{"right", right, rightColour},
	} {
		line, err := plotter.NewLine(ch.xys)
		if err != nil {
			return nil, err
		}
		line.Color = ch.colour
		p.Add(line)
		p.Legend.Add(ch.name, line)
	}
	return p, nil
}

// PlotWaveform renders the waveform of frames to path. The image format
// follows the file extension (png, svg, pdf...).
func PlotWaveform(path string, frames []apu.Frame, sampleRate int) error {
	p, err := Waveform(frames, sampleRate)
	if err != nil {
		return err
	}
	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}
