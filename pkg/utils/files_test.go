package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	rom := []byte{0x00, 0xC3, 0x50, 0x01}

	t.Run("raw", func(t *testing.T) {
		b, err := LoadFile(writeFile(t, "game.gb", rom))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(b, rom) {
			t.Errorf("expected % X, got % X", rom, b)
		}
	})
	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		w.Write(rom)
		w.Close()

		b, err := LoadFile(writeFile(t, "game.gb.gz", buf.Bytes()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(b, rom) {
			t.Errorf("expected % X, got % X", rom, b)
		}
	})
	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, _ := w.Create("readme.txt")
		f.Write([]byte("hello"))
		f, _ = w.Create("game.GBC")
		f.Write(rom)
		w.Close()

		b, err := LoadFile(writeFile(t, "game.zip", buf.Bytes()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(b, rom) {
			t.Errorf("expected % X, got % X", rom, b)
		}
	})
	t.Run("empty zip", func(t *testing.T) {
		var buf bytes.Buffer
		zip.NewWriter(&buf).Close()

		if _, err := LoadFile(writeFile(t, "empty.zip", buf.Bytes())); !errors.Is(err, ErrEmptyArchive) {
			t.Errorf("expected ErrEmptyArchive, got %v", err)
		}
	})
	t.Run("missing", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.gb")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})
}

func TestClamp(t *testing.T) {
	if v := Clamp(0, 12, 10); v != 10 {
		t.Errorf("expected 10, got %d", v)
	}
	if v := Clamp(0.0, -0.5, 1.0); v != 0 {
		t.Errorf("expected 0, got %f", v)
	}
	if v := Clamp[uint8](1, 5, 9); v != 5 {
		t.Errorf("expected 5, got %d", v)
	}
}
