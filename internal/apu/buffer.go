package apu

import "sync"

// Frame is a single stereo sample in the range -1 to 1.
type Frame struct {
	L, R float32
}

// SampleBuffer is a fixed capacity ring of frames shared between the
// emulation goroutine, which pushes, and an audio backend, which pulls.
// When full, the oldest frame is overwritten.
type SampleBuffer struct {
	mu     sync.Mutex
	frames []Frame
	head   int // index of the oldest frame
	count  int
	last   Frame
}

// NewSampleBuffer returns a buffer holding up to capacity frames.
func NewSampleBuffer(capacity int) *SampleBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleBuffer{frames: make([]Frame, capacity)}
}

// Cap returns the capacity of the buffer.
func (b *SampleBuffer) Cap() int {
	return len(b.frames)
}

// Len returns the number of buffered frames.
func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Push appends a frame, discarding the oldest frame if the buffer is
// full.
func (b *SampleBuffer) Push(l, r float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tail := (b.head + b.count) % len(b.frames)
	b.frames[tail] = Frame{L: l, R: r}
	if b.count == len(b.frames) {
		b.head = (b.head + 1) % len(b.frames)
	} else {
		b.count++
	}
}

// Pull removes the oldest frame. When the buffer is empty the most
// recently pulled frame is returned again, along with false.
func (b *SampleBuffer) Pull() (Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return b.last, false
	}
	b.last = b.pop()
	return b.last, true
}

// Last returns the most recently pulled frame.
func (b *SampleBuffer) Last() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *SampleBuffer) pop() Frame {
	f := b.frames[b.head]
	b.head = (b.head + 1) % len(b.frames)
	b.count--
	return f
}

// PullN fills dst with frames, stretching whatever is buffered across
// all of dst by linear interpolation so that an underrunning producer
// is heard as a pitch change rather than a click. It reports whether
// dst was served entirely from buffered frames; false means some or
// all of dst was backfilled. With nothing buffered dst is filled with
// the last frame pulled.
func (b *SampleBuffer) PullN(dst []Frame) bool {
	if len(dst) == 0 {
		return true
	}

	// each frame is popped under its own lock so a concurrent Push
	// never waits on the whole request
	src := make([]Frame, 0, min(b.Len(), len(dst)))
	for len(src) < cap(src) {
		f, ok := b.Pull()
		if !ok {
			break
		}
		src = append(src, f)
	}

	n := len(src)
	switch n {
	case 0:
		last := b.Last()
		for i := range dst {
			dst[i] = last
		}
		return false
	case len(dst):
		copy(dst, src)
		return true
	case 1:
		for i := range dst {
			dst[i] = src[0]
		}
		return false
	}

	scale := float32(n-1) / float32(len(dst)-1)
	for i := range dst {
		pos := float32(i) * scale
		j := int(pos)
		if j >= n-1 {
			dst[i] = src[n-1]
			continue
		}
		frac := pos - float32(j)
		dst[i] = Frame{
			L: src[j].L + (src[j+1].L-src[j].L)*frac,
			R: src[j].R + (src[j+1].R-src[j].R)*frac,
		}
	}
	return false
}

// Clear discards every buffered frame.
func (b *SampleBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head, b.count = 0, 0
}
