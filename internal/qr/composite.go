package qr

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	imageutil "github.com/jmylchreest/toolbench/internal/image"
)

const (
	// CanvasSize is the side length of the rendered canvas in pixels.
	CanvasSize = 350

	// Margin is the quiet zone drawn around the symbol, in modules.
	Margin = 1

	// darkThreshold is the red channel value below which a pixel counts as dark.
	darkThreshold = 128

	// edgeBand is the width of the trimmed band along each canvas edge.
	edgeBand = 2

	// LogoFraction is the logo side relative to the canvas side.
	LogoFraction = 0.2

	// LogoRadius is the corner radius of the logo clip. It does not scale with the canvas.
	LogoRadius = 12
)

// Composite renders bm onto a CanvasSize square, applies its rounding mode
// and draws logo, if any, into the centre. The logo overwrites whatever
// modules lie beneath it.
func Composite(bm *Bitmap, logo image.Image) (*image.NRGBA, error) {
	if bm == nil || bm.Size() == 0 {
		return nil, imageutil.ErrContextUnavailable
	}

	canvas := render(bm)

	switch bm.Rounding {
	case RoundingEdgeTrim:
		trimEdges(canvas)
	case RoundingGeometric:
		roundModules(canvas, bm)
	}

	if logo != nil && !logo.Bounds().Empty() {
		overlayLogo(canvas, logo)
	}
	return canvas, nil
}

// layout maps canvas pixels to modules. The margin stays fractional so
// module edges land where the scaled quiet zone ends.
type layout struct {
	scale  float64
	margin float64
	symbol int
}

func newLayout(modules int) layout {
	scale := float64(CanvasSize) / float64(modules+2*Margin)
	return layout{
		scale:  scale,
		margin: Margin * scale,
		symbol: int(math.Floor(float64(modules+2*Margin) * scale)),
	}
}

// module returns the module under pixel p and whether p lies on the symbol.
func (l layout) module(x, y int) (row, col int, ok bool) {
	fx, fy := float64(x), float64(y)
	limit := float64(l.symbol) - l.margin
	if fx < l.margin || fy < l.margin || fx >= limit || fy >= limit {
		return 0, 0, false
	}
	return int((fy - l.margin) / l.scale), int((fx - l.margin) / l.scale), true
}

// render paints modules onto an opaque canvas. A transparent background is
// rendered on white; only rounding may clear alpha afterwards.
func render(bm *Bitmap) *image.NRGBA {
	light := bm.Background
	if bm.Transparent {
		light = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	l := newLayout(bm.Size())
	canvas := image.NewNRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			c := light
			if row, col, ok := l.module(x, y); ok && bm.Dark(row, col) {
				c = bm.Foreground
			}
			canvas.SetNRGBA(x, y, c)
		}
	}
	return canvas
}

// inEdgeBand reports whether (x, y) lies within edgeBand pixels of any edge.
func inEdgeBand(x, y, w, h int) bool {
	return x < edgeBand || y < edgeBand || x >= w-edgeBand || y >= h-edgeBand
}

// trimEdges zeroes the alpha of dark pixels inside the edge bands.
func trimEdges(canvas *image.NRGBA) {
	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !inEdgeBand(x, y, w, h) {
				continue
			}
			i := canvas.PixOffset(b.Min.X+x, b.Min.Y+y)
			if canvas.Pix[i] < darkThreshold {
				canvas.Pix[i+3] = 0
			}
		}
	}
}

// roundModules cuts a quarter circle off every dark module corner whose two
// orthogonal neighbours are light. Cut pixels are painted opaque background.
func roundModules(canvas *image.NRGBA, bm *Bitmap) {
	light := bm.Background
	if bm.Transparent {
		light = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	const r = 1.0 / 3 // corner radius in module units
	l := newLayout(bm.Size())
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			row, col, ok := l.module(x, y)
			if !ok || !bm.Dark(row, col) {
				continue
			}
			fx := (float64(x)+0.5-l.margin)/l.scale - float64(col)
			fy := (float64(y)+0.5-l.margin)/l.scale - float64(row)

			var cx, cy float64
			var dr, dc int
			switch {
			case fx < r && fy < r:
				cx, cy, dr, dc = r, r, -1, -1
			case fx > 1-r && fy < r:
				cx, cy, dr, dc = 1-r, r, -1, 1
			case fx < r && fy > 1-r:
				cx, cy, dr, dc = r, 1-r, 1, -1
			case fx > 1-r && fy > 1-r:
				cx, cy, dr, dc = 1-r, 1-r, 1, 1
			default:
				continue
			}
			if bm.Dark(row+dr, col) || bm.Dark(row, col+dc) {
				continue
			}
			if math.Hypot(fx-cx, fy-cy) > r {
				canvas.SetNRGBA(x, y, light)
			}
		}
	}
}

// LogoRect returns the square the logo is drawn into.
func LogoRect() image.Rectangle {
	side := int(CanvasSize * LogoFraction)
	origin := CanvasSize/2 - side/2
	return image.Rect(origin, origin, origin+side, origin+side)
}

// overlayLogo scales logo into LogoRect and composites it through a rounded-square clip.
func overlayLogo(canvas *image.NRGBA, logo image.Image) {
	rect := LogoRect()
	scaled := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, logo.Bounds(), draw.Src, nil)

	mask := &roundedRect{rect: rect, radius: LogoRadius}
	draw.DrawMask(canvas, rect, scaled, image.Point{}, mask, rect.Min, draw.Over)
}

// roundedRect is an alpha mask that is opaque inside a rounded rectangle.
type roundedRect struct {
	rect   image.Rectangle
	radius float64
}

func (m *roundedRect) ColorModel() color.Model { return color.AlphaModel }

func (m *roundedRect) Bounds() image.Rectangle { return m.rect }

func (m *roundedRect) At(x, y int) color.Color {
	if m.Contains(x, y) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

// Contains reports whether the centre of pixel (x, y) falls inside the shape.
func (m *roundedRect) Contains(x, y int) bool {
	if !image.Pt(x, y).In(m.rect) {
		return false
	}
	px, py := float64(x)+0.5, float64(y)+0.5
	minX, minY := float64(m.rect.Min.X)+m.radius, float64(m.rect.Min.Y)+m.radius
	maxX, maxY := float64(m.rect.Max.X)-m.radius, float64(m.rect.Max.Y)-m.radius
	cx := max(minX, min(px, maxX))
	cy := max(minY, min(py, maxY))
	return math.Hypot(px-cx, py-cy) <= m.radius
}
