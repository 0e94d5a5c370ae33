package vectors

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// NewReader wraps r with a decompressor chosen by the extension of name:
// .zst for zstd, .lz4 for the lz4 frame format, anything else plain.
func NewReader(r io.Reader, name string) (io.ReadCloser, error) {
	switch filepath.Ext(name) {
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader for %s: %w", name, err)
		}
		return dec.IOReadCloser(), nil
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return io.NopCloser(r), nil
}

// NewWriter is the compressing counterpart of NewReader. Closing the
// returned writer flushes the compressor but not w.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	switch filepath.Ext(name) {
	case ".zst":
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer for %s: %w", name, err)
		}
		return enc, nil
	case ".lz4":
		return lz4.NewWriter(w), nil
	}
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Read parses every vector in r. Blank lines and text after # are ignored.
func Read(r io.Reader) ([]Vector, error) {
	var vs []Vector
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		v, err := ParseVector(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		vs = append(vs, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vs, nil
}

// Open reads a vector file, decompressing it by extension.
func Open(path string) ([]Vector, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := NewReader(file, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	vs, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vs, nil
}

// Encode writes one vector per line.
func Encode(w io.Writer, vs []Vector) error {
	bw := bufio.NewWriter(w)
	for _, v := range vs {
		if _, err := fmt.Fprintln(bw, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write stores vs at path, compressing by extension.
func Write(path string, vs []Vector) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := NewWriter(file, path)
	if err != nil {
		return err
	}
	if err := Encode(w, vs); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return w.Close()
}
