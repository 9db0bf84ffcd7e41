package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// Format is an output raster encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

const (
	// DefaultJPEGQuality is the compressor's default quality.
	DefaultJPEGQuality = 0.8

	// MinJPEGQuality is the lowest quality the compressor accepts.
	MinJPEGQuality = 0.1
)

// ParseFormat accepts "png", "jpeg" and "jpg" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: png, jpeg)", s)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// FormatFromPath infers the format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}

// ValidateQuality checks a JPEG quality in the 0.1-1.0 range.
func ValidateQuality(q float64) error {
	if math.IsNaN(q) || q < MinJPEGQuality || q > 1 {
		return fmt.Errorf("quality must be between %.1f and 1.0, got %g", MinJPEGQuality, q)
	}
	return nil
}

// Encode writes img to w. quality is only used for JPEG.
// Failures are returned as *ExportError.
func Encode(w io.Writer, img image.Image, format Format, quality float64) error {
	if img == nil || img.Bounds().Empty() {
		return &ExportError{Format: string(format), Err: ErrContextUnavailable}
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		if verr := ValidateQuality(quality); verr != nil {
			return &ExportError{Format: string(format), Err: verr}
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: int(math.Round(quality * 100))})
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return &ExportError{Format: string(format), Err: err}
	}
	return nil
}

// EncodeBytes encodes img into memory.
func EncodeBytes(img image.Image, format Format, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes img and writes it to path on fs.
// Nothing is written when encoding fails.
func WriteFile(fs afero.Fs, path string, img image.Image, format Format, quality float64) error {
	data, err := EncodeBytes(img, format, quality)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Recompress redraws img at full size on an RGBA canvas and encodes it as JPEG.
func Recompress(w io.Writer, img image.Image, quality float64) error {
	if img == nil || img.Bounds().Empty() {
		return &ExportError{Format: string(FormatJPEG), Err: ErrContextUnavailable}
	}
	b := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Src)
	return Encode(w, canvas, FormatJPEG, quality)
}
