package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrUnknownCompression is returned for an unrecognized compression name.
var ErrUnknownCompression = errors.New("unknown compression")

// Compression selects how an output file is compressed.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// String returns the configuration name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Ext returns the file extension the compression appends, with its dot.
func (c Compression) Ext() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	}
	return ""
}

// ParseCompression converts a configuration name to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	}
	return CompressionNone, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// CompressionForPath infers the compression from a file extension.
func CompressionForPath(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(path, ".zst"):
		return CompressionZstd
	}
	return CompressionNone
}

// WithCompression appends the extension of c to path unless already present.
func WithCompression(path string, c Compression) string {
	if ext := c.Ext(); ext != "" && !strings.HasSuffix(path, ext) {
		return path + ext
	}
	return path
}

// TrimCompression strips a known compression extension from path.
func TrimCompression(path string) string {
	return strings.TrimSuffix(path, CompressionForPath(path).Ext())
}

// NewWriter wraps w so that data written is compressed with c. Closing the
// returned writer flushes the compressor but does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
}

// NewReader returns a reader that decompresses r according to c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return zr, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		return dec.IOReadCloser(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// outputFile is a created file behind an optional compressor.
type outputFile struct {
	io.WriteCloser
	file *os.File
}

// Create creates path, compressed according to its extension.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, CompressionForPath(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &outputFile{WriteCloser: w, file: f}, nil
}

// Close flushes the compressor and closes the file.
func (o *outputFile) Close() error {
	werr := o.WriteCloser.Close()
	ferr := o.file.Close()
	if werr != nil {
		return werr
	}
	return ferr
}

// Open opens path for reading, decompressing according to its extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, CompressionForPath(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &inputFile{ReadCloser: r, file: f}, nil
}

type inputFile struct {
	io.ReadCloser
	file *os.File
}

func (i *inputFile) Close() error {
	i.ReadCloser.Close()
	return i.file.Close()
}
