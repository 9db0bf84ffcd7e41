// Package qr generates matrix codes and composites them into final artifacts.
//
// A Bitmap is generated once per request from the payload text. Composite
// renders it onto a fixed 350px canvas, optionally trims or rounds dark
// modules and overlays a logo. SVG regenerates the same payload as a vector
// document without any of the raster post-processing.
package qr

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/jmylchreest/toolbench/internal/colour"
)

// TransparentSentinel is the background value that requests a transparent background.
const TransparentSentinel = "transparent"

// RoundingMode selects how dark modules are rounded.
type RoundingMode string

const (
	// RoundingNone leaves the rendered canvas untouched.
	RoundingNone RoundingMode = "none"

	// RoundingEdgeTrim clears the alpha of dark pixels in a 2px band along
	// each canvas edge.
	RoundingEdgeTrim RoundingMode = "edge"

	// RoundingGeometric rounds the exposed corners of each dark module.
	RoundingGeometric RoundingMode = "geometric"
)

// ParseRoundingMode accepts none, edge or geometric.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch m := RoundingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case RoundingNone, RoundingEdgeTrim, RoundingGeometric:
		return m, nil
	case "":
		return RoundingNone, nil
	default:
		return "", fmt.Errorf("invalid rounding mode: %s (valid: none, edge, geometric)", s)
	}
}

// Options controls bitmap generation.
type Options struct {
	// Foreground is the dark module colour, "#RRGGBB".
	Foreground string
	// Background is the light module colour, or TransparentSentinel.
	Background string
	// Rounding selects module rounding; empty means none.
	Rounding RoundingMode
}

// DefaultOptions returns black modules on white with edge trimming.
func DefaultOptions() Options {
	return Options{
		Foreground: "#000000",
		Background: "#ffffff",
		Rounding:   RoundingEdgeTrim,
	}
}

// Bitmap is a square module grid without quiet zone plus its colours.
type Bitmap struct {
	// Modules is indexed [row][col]; true is a dark module.
	Modules [][]bool

	Foreground  color.NRGBA
	Background  color.NRGBA
	Transparent bool
	Rounding    RoundingMode
}

// Size returns the number of modules per side.
func (b *Bitmap) Size() int {
	return len(b.Modules)
}

// Dark reports whether the module at (row, col) is dark. Out-of-range
// coordinates are light.
func (b *Bitmap) Dark(row, col int) bool {
	if row < 0 || col < 0 || row >= len(b.Modules) || col >= len(b.Modules[row]) {
		return false
	}
	return b.Modules[row][col]
}

// colours resolves the foreground and background options.
func (o Options) colours() (fg, bg color.NRGBA, transparent bool, err error) {
	fgHex := o.Foreground
	if fgHex == "" {
		fgHex = "#000000"
	}
	fgRGB, err := colour.ParseHex(fgHex)
	if err != nil {
		return fg, bg, false, fmt.Errorf("invalid foreground: %w", err)
	}

	bgRGB := colour.RGB{R: 255, G: 255, B: 255}
	switch strings.ToLower(strings.TrimSpace(o.Background)) {
	case TransparentSentinel:
		transparent = true
	case "":
	default:
		bgRGB, err = colour.ParseHex(o.Background)
		if err != nil {
			return fg, bg, false, fmt.Errorf("invalid background: %w", err)
		}
	}

	fg = color.NRGBA{R: fgRGB.R, G: fgRGB.G, B: fgRGB.B, A: 255}
	bg = color.NRGBA{R: bgRGB.R, G: bgRGB.G, B: bgRGB.B, A: 255}
	return fg, bg, transparent, nil
}

// New encodes text at error correction level Medium and returns its bitmap.
func New(text string, opts Options) (*Bitmap, error) {
	if text == "" {
		return nil, fmt.Errorf("payload cannot be empty")
	}

	fg, bg, transparent, err := opts.colours()
	if err != nil {
		return nil, err
	}

	rounding := opts.Rounding
	if rounding == "" {
		rounding = RoundingNone
	}
	if _, err := ParseRoundingMode(string(rounding)); err != nil {
		return nil, err
	}

	modules, err := encode(text)
	if err != nil {
		return nil, err
	}

	return &Bitmap{
		Modules:     modules,
		Foreground:  fg,
		Background:  bg,
		Transparent: transparent,
		Rounding:    rounding,
	}, nil
}

// encode returns the module grid of text without its quiet zone.
func encode(text string) ([][]bool, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	full := q.Bitmap()
	symbol := 17 + 4*q.VersionNumber
	border := (len(full) - symbol) / 2
	if border < 0 || symbol <= 0 {
		return nil, fmt.Errorf("unexpected symbol size %d for version %d", len(full), q.VersionNumber)
	}

	modules := make([][]bool, symbol)
	for r := range symbol {
		modules[r] = append([]bool(nil), full[border+r][border:border+symbol]...)
	}
	return modules, nil
}
