package audio

import (
	"errors"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/thelolagemann/gbcore/internal/apu"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

const bitDepth = 16

// ErrInvalidWAV is returned when decoding something that isn't a WAV file.
var ErrInvalidWAV = errors.New("audio: invalid wav file")

// WriteWAV encodes frames as a 16-bit stereo PCM WAV file.
func WriteWAV(w io.WriteSeeker, frames []apu.Frame, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 2, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           make([]int, 0, len(frames)*2),
		SourceBitDepth: bitDepth,
	}
	for _, f := range frames {
		buf.Data = append(buf.Data, toPCM(f.L), toPCM(f.R))
	}

	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// SaveWAV writes frames to the WAV file at path.
func SaveWAV(path string, frames []apu.Frame, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, frames, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadWAV decodes a stereo WAV file written by WriteWAV, returning its
// frames and sample rate.
func ReadWAV(r io.ReadSeeker) ([]apu.Frame, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	chans := int(dec.NumChans)
	frames := make([]apu.Frame, 0, len(buf.Data)/max(chans, 1))
	for i := 0; i+chans-1 < len(buf.Data); i += chans {
		f := apu.Frame{L: fromPCM(buf.Data[i])}
		f.R = f.L
		if chans > 1 {
			f.R = fromPCM(buf.Data[i+1])
		}
		frames = append(frames, f)
	}
	return frames, int(dec.SampleRate), nil
}

func toPCM(v float32) int {
	return int(utils.Clamp(-1, v, 1) * 32767)
}

func fromPCM(v int) float32 {
	return float32(v) / 32767
}
