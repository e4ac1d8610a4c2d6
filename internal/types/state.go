package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrShortState is returned when a State runs out of data before
// all of the requested values could be read.
var ErrShortState = errors.New("state: unexpected end of data")

// State represents a serialized emulator state. Values are appended
// in little endian order and read back in the same order they were
// written, allowing savestates to be created and restored between runs.
//
// Reads past the end of the data do not panic; instead the read returns
// the zero value and the error is latched, to be retrieved with Err.
type State struct {
	raw           []byte // raw state data (for serialization)
	readPosition  int    // current read position
	writePosition int    // current write position
	err           error  // first read error encountered
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) error // Load the state of the object
	Save(*State)       // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// ResetPosition resets the read and write positions,
// allowing the state to be read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.writePosition = 0
	s.err = nil
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// Remaining returns the number of unread bytes.
func (s *State) Remaining() int {
	return len(s.raw) - s.readPosition
}

// Position returns the current read position.
func (s *State) Position() int {
	return s.readPosition
}

// Seek moves the read position to pos.
func (s *State) Seek(pos int) {
	if pos < 0 || pos > len(s.raw) {
		s.fail(pos - s.readPosition)
		return
	}
	s.readPosition = pos
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
	s.writePosition++
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
	s.writePosition += 2
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
	s.writePosition += 4
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteFloat32(value float32) {
	s.Write32(math.Float32bits(value))
}

func (s *State) WriteFloat64(value float64) {
	s.Write64(math.Float64bits(value))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
	s.writePosition++
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
	s.writePosition += len(data)
}

// available reports whether n more bytes can be read, latching
// ErrShortState otherwise.
func (s *State) available(n int) bool {
	if s.err != nil {
		return false
	}
	if s.readPosition+n > len(s.raw) {
		s.fail(n)
		return false
	}
	return true
}

func (s *State) fail(n int) {
	if s.err == nil {
		s.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortState, n, s.readPosition, len(s.raw)-s.readPosition)
	}
}

func (s *State) Read8() uint8 {
	if !s.available(1) {
		return 0
	}
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	if !s.available(2) {
		return 0
	}
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) Read32() uint32 {
	if !s.available(4) {
		return 0
	}
	value := uint32(s.raw[s.readPosition]) | uint32(s.raw[s.readPosition+1])<<8 | uint32(s.raw[s.readPosition+2])<<16 | uint32(s.raw[s.readPosition+3])<<24
	s.readPosition += 4
	return value
}

func (s *State) Read64() uint64 {
	if !s.available(8) {
		return 0
	}
	lo := s.Read32()
	hi := s.Read32()
	return uint64(hi)<<32 | uint64(lo)
}

func (s *State) ReadFloat32() float32 {
	return math.Float32frombits(s.Read32())
}

func (s *State) ReadFloat64() float64 {
	return math.Float64frombits(s.Read64())
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

// ReadData fills p with the next len(p) bytes. On a short read p is
// left untouched.
func (s *State) ReadData(p []byte) {
	if !s.available(len(p)) {
		return
	}
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

func (s *State) Bytes() []byte {
	return s.raw
}
