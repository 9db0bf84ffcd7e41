// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// RGBA returns the colour as an opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB, dropping alpha.
// The conversion goes through the non-premultiplied model so translucent
// pixels keep their stored channel values.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Entry is a single ranked palette colour.
type Entry struct {
	Hex   string `json:"hex"`
	RGB   RGB    `json:"rgb"`
	Rank  int    `json:"rank"`
	Count int    `json:"count,omitempty"`
}

// Palette is an ordered set of entries, most frequent first.
type Palette struct {
	Entries []Entry
}

// NewPalette creates a Palette from colours already in rank order.
func NewPalette(colours []RGB, counts []int) *Palette {
	entries := make([]Entry, len(colours))
	for i, c := range colours {
		entries[i] = Entry{
			Hex:  c.Hex(),
			RGB:  c,
			Rank: i + 1,
		}
		if i < len(counts) {
			entries[i].Count = counts[i]
		}
	}
	return &Palette{Entries: entries}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// ToHex returns the hex codes in rank order.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		hexColours[i] = e.Hex
	}
	return hexColours
}

// ToRGBSlice returns the colours in rank order.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColours := make([]RGB, len(p.Entries))
	for i, e := range p.Entries {
		rgbColours[i] = e.RGB
	}
	return rgbColours
}

// Join returns all hex codes on one line separated by ", ".
func (p *Palette) Join() string {
	return strings.Join(p.ToHex(), ", ")
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Source string  `json:"source,omitempty"`
	Count  int     `json:"count"`
	Colors []Entry `json:"colors"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON(source string) ([]byte, error) {
	entries := p.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(PaletteJSON{
		Source: source,
		Count:  len(entries),
		Colors: entries,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Entries))
	for _, e := range p.Entries {
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", e.Rank, e.Hex, e.RGB.String())
	}
	return sb.String()
}

// Get returns the entry at the specified index.
func (p *Palette) Get(index int) (Entry, error) {
	if index < 0 || index >= len(p.Entries) {
		return Entry{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Entries))
	}
	return p.Entries[index], nil
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, Entry) bool) {
	return func(yield func(int, Entry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
