// Package utils provides helpers for loading ROM images from disk.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned for archives that contain no files.
var ErrEmptyArchive = errors.New("utils: empty archive")

// romExtensions are the extensions preferred when picking a file out of
// an archive.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first ROM image, or their first file
// if none has a ROM extension.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decompress(filename, data)
}

// Decompress decodes data according to the extension of filename.
// Unknown extensions are returned as is.
func Decompress(filename string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		files := make([]archived, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		return readFirst(filename, files)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("utils: %s: %w", filename, err)
		}
		files := make([]archived, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		return readFirst(filename, files)
	}
	return data, nil
}

// archived is a file within a zip or 7z archive.
type archived interface {
	Open() (io.ReadCloser, error)
	FileInfo() os.FileInfo
}

func readFirst(filename string, files []archived) ([]byte, error) {
	var pick archived
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if pick == nil {
			pick = f
		}
		ext := strings.ToLower(filepath.Ext(f.FileInfo().Name()))
		for _, e := range romExtensions {
			if ext == e {
				return readArchived(f)
			}
		}
	}
	if pick == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyArchive, filename)
	}
	return readArchived(pick)
}

func readArchived(f archived) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
