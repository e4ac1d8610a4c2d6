// Package savestate wraps the component blocks of a savestate in a file
// container that identifies the format, detects corruption and can
// compress the payload.
//
// A container is laid out as
//
//	0-3   magic "GBSS"
//	4     version
//	5     flags (bit 0: payload is brotli compressed)
//	6-13  xxhash64 of the uncompressed payload, little endian
//	14-   payload
package savestate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
)

const (
	// Magic identifies a savestate container.
	Magic = "GBSS"
	// Version is the container version written by Encode.
	Version = 1

	// FlagCompressed marks a brotli compressed payload.
	FlagCompressed = 1 << 0

	headerSize = 14
	quality    = 7
)

var (
	// ErrBadMagic is returned for data that isn't a savestate container.
	ErrBadMagic = errors.New("savestate: bad magic")
	// ErrVersion is returned for containers of an unknown version.
	ErrVersion = errors.New("savestate: unsupported version")
	// ErrChecksum is returned when the payload doesn't match its checksum.
	ErrChecksum = errors.New("savestate: checksum mismatch")
)

// Encode wraps a raw savestate in a container, compressing it if
// requested.
func Encode(raw []byte, compress bool) ([]byte, error) {
	var flags uint8
	payload := raw
	if compress {
		var err error
		if payload, err = cbrotli.Encode(raw, cbrotli.WriterOptions{Quality: quality}); err != nil {
			return nil, fmt.Errorf("savestate: compressing: %w", err)
		}
		flags |= FlagCompressed
	}

	out := make([]byte, headerSize, headerSize+len(payload))
	copy(out, Magic)
	out[4] = Version
	out[5] = flags
	binary.LittleEndian.PutUint64(out[6:], xxhash.Sum64(raw))
	return append(out, payload...), nil
}

// Decode unwraps a container, returning the raw savestate.
func Decode(data []byte) ([]byte, error) {
	if len(data) < headerSize || string(data[:4]) != Magic {
		return nil, ErrBadMagic
	}
	if data[4] != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, data[4])
	}

	raw := data[headerSize:]
	if data[5]&FlagCompressed != 0 {
		var err error
		if raw, err = cbrotli.Decode(raw); err != nil {
			return nil, fmt.Errorf("%w: decompressing: %v", ErrChecksum, err)
		}
	}
	if sum := binary.LittleEndian.Uint64(data[6:]); xxhash.Sum64(raw) != sum {
		return nil, fmt.Errorf("%w: expected %016x, got %016x", ErrChecksum, sum, xxhash.Sum64(raw))
	}
	return raw, nil
}

// WriteFile encodes raw and writes it to path.
func WriteFile(path string, raw []byte, compress bool) error {
	data, err := Encode(raw, compress)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads and decodes the container at path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
