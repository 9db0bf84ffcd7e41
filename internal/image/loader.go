// Package image provides utilities for loading, encoding and re-compressing images.
package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"

	"github.com/spf13/afero"
	_ "golang.org/x/image/webp" // Register WebP format
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from a filesystem.
type FileLoader struct {
	fs afero.Fs
}

// NewFileLoaderFs creates a FileLoader over fs.
func NewFileLoaderFs(fs afero.Fs) *FileLoader {
	return &FileLoader{fs: fs}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
// A file that exists but cannot be decoded yields an error wrapping ErrDecodeFailed.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := l.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode decodes an image from r, wrapping failures in ErrDecodeFailed.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w (format: %q): %v", ErrDecodeFailed, format, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has zero dimensions", ErrDecodeFailed)
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (image.Image, error) {
	return Decode(bytes.NewReader(data))
}

// ValidateImagePath checks that path exists and its header decodes as a
// supported image format.
func ValidateImagePath(fs afero.Fs, path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}
