package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/spf13/afero"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"JPG", FormatJPEG, false},
		{"jpeg", FormatJPEG, false},
		{"svg", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"card.png":        FormatPNG,
		"card.jpg":        FormatJPEG,
		"out/card.JPEG":   FormatJPEG,
		"card":            FormatPNG,
		"card.jpeg.webp":  FormatPNG,
		"archive.tar.jpg": FormatJPEG,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}

	if got := FormatJPEG.Ext(); got != ".jpg" {
		t.Errorf("FormatJPEG.Ext() = %q, want .jpg", got)
	}
	if got := FormatPNG.Ext(); got != ".png" {
		t.Errorf("FormatPNG.Ext() = %q, want .png", got)
	}
}

func TestValidateQuality(t *testing.T) {
	for _, q := range []float64{0.1, 0.8, 1} {
		if err := ValidateQuality(q); err != nil {
			t.Errorf("ValidateQuality(%g) error = %v", q, err)
		}
	}
	for _, q := range []float64{0, 0.05, 1.01, -1} {
		if err := ValidateQuality(q); err == nil {
			t.Errorf("ValidateQuality(%g) expected error", q)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	src := gradient(64, 48)

	for _, format := range []Format{FormatPNG, FormatJPEG} {
		t.Run(string(format), func(t *testing.T) {
			data, err := EncodeBytes(src, format, 0.9)
			if err != nil {
				t.Fatalf("EncodeBytes() error = %v", err)
			}
			img, err := DecodeBytes(data)
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Errorf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
		})
	}
}

func TestEncodeFailures(t *testing.T) {
	var buf bytes.Buffer

	err := Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 0, 0)), FormatPNG, 0)
	if !errors.Is(err, ErrEncodeFailed) || !errors.Is(err, ErrContextUnavailable) {
		t.Errorf("empty image: error = %v", err)
	}

	err = Encode(&buf, gradient(4, 4), FormatJPEG, 2)
	var exportErr *ExportError
	if !errors.As(err, &exportErr) || exportErr.Format != "jpeg" {
		t.Errorf("bad quality: error = %v, want *ExportError for jpeg", err)
	}

	err = Encode(&buf, gradient(4, 4), Format("tiff"), 0)
	if !errors.Is(err, ErrEncodeFailed) {
		t.Errorf("unknown format: error = %v", err)
	}
}

func TestRecompress(t *testing.T) {
	src := gradient(120, 80)

	var low, high bytes.Buffer
	if err := Recompress(&low, src, 0.1); err != nil {
		t.Fatalf("Recompress(0.1) error = %v", err)
	}
	if err := Recompress(&high, src, 1); err != nil {
		t.Fatalf("Recompress(1) error = %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(low.Bytes()))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("bounds = %v, want 120x80", img.Bounds())
	}
	if low.Len() >= high.Len() {
		t.Errorf("quality 0.1 produced %d bytes, quality 1 produced %d", low.Len(), high.Len())
	}
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/out", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(fs, "/out/card.png", gradient(8, 8), FormatPNG, 0); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if ok, _ := afero.Exists(fs, "/out/card.png"); !ok {
		t.Error("expected /out/card.png to exist")
	}

	if err := WriteFile(fs, "/out/empty.png", image.NewNRGBA(image.Rectangle{}), FormatPNG, 0); err == nil {
		t.Error("WriteFile(empty) expected error")
	}
	if ok, _ := afero.Exists(fs, "/out/empty.png"); ok {
		t.Error("nothing should be written on encode failure")
	}
}
