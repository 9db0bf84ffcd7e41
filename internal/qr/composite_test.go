package qr

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	imageutil "github.com/jmylchreest/toolbench/internal/image"
)

const payload = "https://hanzllasoomro.vercel.app/"

func mustBitmap(t *testing.T, opts Options) *Bitmap {
	t.Helper()
	bm, err := New(payload, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return bm
}

func mustComposite(t *testing.T, bm *Bitmap, logo image.Image) *image.NRGBA {
	t.Helper()
	canvas, err := Composite(bm, logo)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	return canvas
}

func TestCompositeRequiresBitmap(t *testing.T) {
	if _, err := Composite(nil, nil); !errors.Is(err, imageutil.ErrContextUnavailable) {
		t.Errorf("Composite(nil) error = %v, want ErrContextUnavailable", err)
	}
	if _, err := Composite(&Bitmap{}, nil); !errors.Is(err, imageutil.ErrContextUnavailable) {
		t.Errorf("Composite(empty) error = %v, want ErrContextUnavailable", err)
	}
}

func TestCompositeRender(t *testing.T) {
	bm := mustBitmap(t, Options{Foreground: "#102030", Background: "#f0e0d0"})
	canvas := mustComposite(t, bm, nil)

	if b := canvas.Bounds(); b.Dx() != CanvasSize || b.Dy() != CanvasSize {
		t.Fatalf("bounds = %v, want %dx%d", b, CanvasSize, CanvasSize)
	}

	fg := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}
	bg := color.NRGBA{R: 0xf0, G: 0xe0, B: 0xd0, A: 255}
	var dark, light int
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			switch canvas.NRGBAAt(x, y) {
			case fg:
				dark++
			case bg:
				light++
			default:
				t.Fatalf("pixel (%d,%d) = %+v is neither colour", x, y, canvas.NRGBAAt(x, y))
			}
		}
	}
	if dark == 0 || light == 0 {
		t.Errorf("dark=%d light=%d, want both present", dark, light)
	}

	// The quiet zone is light and the top-left finder corner is dark.
	if canvas.NRGBAAt(0, 0) != bg {
		t.Error("margin pixel should be background")
	}
	l := newLayout(bm.Size())
	first := int(math.Ceil(l.margin))
	if canvas.NRGBAAt(first+1, first+1) != fg {
		t.Error("finder corner should be foreground")
	}
}

func TestLayoutKeepsFractionalMargin(t *testing.T) {
	// 21 modules plus the quiet zone give a scale of 350/23, about 15.22.
	l := newLayout(21)
	scale := float64(CanvasSize) / 23

	if l.margin != scale {
		t.Errorf("margin = %v, want %v", l.margin, scale)
	}
	if want := int(math.Floor(23 * scale)); l.symbol != want {
		t.Errorf("symbol = %d, want %d", l.symbol, want)
	}

	// Pixel 15 is still quiet zone; the first module starts at pixel 16.
	if _, _, ok := l.module(15, 20); ok {
		t.Error("pixel 15 should lie in the margin")
	}
	if row, col, ok := l.module(16, 16); !ok || row != 0 || col != 0 {
		t.Errorf("module(16, 16) = (%d, %d, %v), want (0, 0, true)", row, col, ok)
	}
	if row, col, ok := l.module(31, 30); !ok || row != 0 || col != 1 {
		t.Errorf("module(31, 30) = (%d, %d, %v), want (0, 1, true)", row, col, ok)
	}
	last := int(math.Ceil(float64(l.symbol)-l.margin)) - 1
	if _, col, ok := l.module(last, 16); !ok || col != 20 {
		t.Errorf("module(%d, 16) col = %d ok = %v, want 20 true", last, col, ok)
	}
	if _, _, ok := l.module(last+1, 16); ok {
		t.Errorf("pixel %d should lie in the trailing margin", last+1)
	}
}

func TestCompositeTransparentRendersOnWhite(t *testing.T) {
	bm := mustBitmap(t, Options{Foreground: "#000000", Background: TransparentSentinel})
	canvas := mustComposite(t, bm, nil)

	if got := canvas.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("margin pixel = %+v, want opaque white", got)
	}
}

func TestCompositeEdgeTrim(t *testing.T) {
	// Dark background puts dark pixels in every edge band.
	bm := mustBitmap(t, Options{Foreground: "#ffffff", Background: "#000000", Rounding: RoundingEdgeTrim})
	canvas := mustComposite(t, bm, nil)

	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			c := canvas.NRGBAAt(x, y)
			band := x < 2 || y < 2 || x >= CanvasSize-2 || y >= CanvasSize-2
			switch {
			case !band && c.A != 255:
				t.Fatalf("pixel (%d,%d) outside the band has alpha %d", x, y, c.A)
			case band && c.R < 128 && c.A != 0:
				t.Fatalf("dark band pixel (%d,%d) kept alpha %d", x, y, c.A)
			case band && c.R >= 128 && c.A != 255:
				t.Fatalf("light band pixel (%d,%d) lost alpha", x, y)
			}
		}
	}
}

func TestCompositeEdgeTrimLeavesLightMarginAlone(t *testing.T) {
	bm := mustBitmap(t, DefaultOptions())
	canvas := mustComposite(t, bm, nil)

	for i := 3; i < len(canvas.Pix); i += 4 {
		if canvas.Pix[i] != 255 {
			t.Fatalf("alpha changed at byte %d", i)
		}
	}
}

func TestCompositeGeometricRounding(t *testing.T) {
	plain := mustComposite(t, mustBitmap(t, Options{Rounding: RoundingNone}), nil)
	rounded := mustComposite(t, mustBitmap(t, Options{Rounding: RoundingGeometric}), nil)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	changed := 0
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			p, r := plain.NRGBAAt(x, y), rounded.NRGBAAt(x, y)
			if r.A != 255 {
				t.Fatalf("pixel (%d,%d) alpha %d, want opaque", x, y, r.A)
			}
			if p == r {
				continue
			}
			if r != white || p == white {
				t.Fatalf("pixel (%d,%d) changed %+v -> %+v, only dark to background allowed", x, y, p, r)
			}
			changed++
		}
	}
	if changed == 0 {
		t.Error("geometric rounding changed no pixels")
	}

	// The outermost corner of the top-left finder is exposed and gets cut.
	m := int(math.Ceil(newLayout(mustBitmap(t, DefaultOptions()).Size()).margin))
	if rounded.NRGBAAt(m, m) != white {
		t.Error("finder outer corner should be rounded off")
	}
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func isRed(c color.NRGBA) bool {
	return c.R >= 250 && c.G <= 5 && c.B <= 5 && c.A == 255
}

func TestLogoRect(t *testing.T) {
	if got, want := LogoRect(), image.Rect(140, 140, 210, 210); got != want {
		t.Errorf("LogoRect() = %v, want %v", got, want)
	}
}

func TestCompositeLogo(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	for _, size := range []image.Point{{10, 10}, {70, 70}, {500, 300}} {
		t.Run(image.Rectangle{Max: size}.String(), func(t *testing.T) {
			bm := mustBitmap(t, Options{Rounding: RoundingNone})
			base := mustComposite(t, bm, nil)
			withLogo := mustComposite(t, bm, solid(size.X, size.Y, red))

			rect := LogoRect()
			mask := &roundedRect{rect: rect, radius: LogoRadius}
			for y := 0; y < CanvasSize; y++ {
				for x := 0; x < CanvasSize; x++ {
					got := withLogo.NRGBAAt(x, y)
					if mask.Contains(x, y) {
						if !isRed(got) {
							t.Fatalf("pixel (%d,%d) inside the clip = %+v, want logo", x, y, got)
						}
						continue
					}
					if got != base.NRGBAAt(x, y) {
						t.Fatalf("pixel (%d,%d) outside the clip changed", x, y)
					}
				}
			}

			// Spot checks on the clip geometry.
			if !mask.Contains(175, 175) || !mask.Contains(140, 175) || !mask.Contains(209, 175) {
				t.Error("clip should cover the centre and edge midpoints")
			}
			if mask.Contains(140, 140) || mask.Contains(209, 209) || mask.Contains(139, 175) || mask.Contains(210, 175) {
				t.Error("clip should exclude the rounded corners and the outside")
			}
		})
	}
}

func TestCompositeRoundTrip(t *testing.T) {
	for _, mode := range []RoundingMode{RoundingNone, RoundingEdgeTrim} {
		t.Run(string(mode), func(t *testing.T) {
			bm := mustBitmap(t, Options{Rounding: mode})
			canvas := mustComposite(t, bm, nil)

			payloads, err := Decode(canvas)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(payloads) != 1 || payloads[0] != payload {
				t.Errorf("Decode() = %q, want [%q]", payloads, payload)
			}
		})
	}
}
