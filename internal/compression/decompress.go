// Package compression reads text documents that may be gzip, bzip2 or xz compressed.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/toolbench/internal/security"
)

// MaxDecompressedSize bounds how much text a single document may expand to.
const MaxDecompressedSize = 100 * 1024 * 1024

// Kind identifies a compression container.
type Kind string

const (
	KindNone  Kind = ""
	KindGzip  Kind = "gzip"
	KindBzip2 Kind = "bzip2"
	KindXz    Kind = "xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect picks the container from the file extension, falling back to the
// leading magic bytes.
func Detect(name string, data []byte) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return KindGzip
	case ".bz2":
		return KindBzip2
	case ".xz":
		return KindXz
	}

	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return KindGzip
	case bytes.HasPrefix(data, xzMagic):
		return KindXz
	case bytes.HasPrefix(data, bzip2Magic):
		return KindBzip2
	}
	return KindNone
}

// Decompress returns the plain contents of data. Uncompressed input is
// returned unchanged.
func Decompress(name string, data []byte) ([]byte, error) {
	var r io.Reader
	switch kind := Detect(name, data); kind {
	case KindNone:
		return data, nil
	case KindGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case KindBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	case KindXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, MaxDecompressedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	return out, nil
}

// ReadFile reads path from fs and decompresses it if needed.
func ReadFile(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decompress(path, data)
}
