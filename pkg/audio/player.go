// Package audio plays, records and plots the frames produced by the APU.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/thelolagemann/gbcore/internal/apu"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

const bytesPerFrame = 8 // two float32 channels

// Stream adapts a SampleBuffer to an io.Reader of interleaved
// little-endian float32 stereo frames. Underruns are stretched rather
// than padded with silence.
type Stream struct {
	buf    *apu.SampleBuffer
	frames []apu.Frame

	mu     sync.Mutex
	volume float32
}

// NewStream returns a Stream reading from buf at full volume.
func NewStream(buf *apu.SampleBuffer) *Stream {
	return &Stream{buf: buf, volume: 1}
}

// SetVolume sets the output gain, clamped to [0, 1].
func (s *Stream) SetVolume(v float32) {
	s.mu.Lock()
	s.volume = utils.Clamp(0, v, 1)
	s.mu.Unlock()
}

func (s *Stream) Read(p []byte) (int, error) {
	n := len(p) / bytesPerFrame
	if n == 0 {
		return 0, nil
	}
	if cap(s.frames) < n {
		s.frames = make([]apu.Frame, n)
	}
	frames := s.frames[:n]
	s.buf.PullN(frames)

	s.mu.Lock()
	vol := s.volume
	s.mu.Unlock()

	for i, f := range frames {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(f.L*vol))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(f.R*vol))
	}
	return n * bytesPerFrame, nil
}

// Player plays a Stream through the system audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	stream *Stream
}

// NewPlayer opens the audio device at the given sample rate. Only one
// Player may be created per process.
func NewPlayer(buf *apu.SampleBuffer, sampleRate int) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := NewStream(buf)
	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(s),
		stream: s,
	}, nil
}

// Play starts playback.
func (p *Player) Play() {
	p.player.Play()
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.player.Pause()
}

// SetVolume sets the output gain, clamped to [0, 1].
func (p *Player) SetVolume(v float32) {
	p.stream.SetVolume(v)
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	return p.player.Close()
}
