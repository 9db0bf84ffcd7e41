package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#RGB" or "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("empty colour")
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 3 && len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: want 3 or 6 digits", s)
	}
	s = "#" + s
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Blend interpolates between a and b in Lab space; t is clamped to [0, 1].
func Blend(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ca, _ := colorful.MakeColor(a.RGBA())
	cb, _ := colorful.MakeColor(b.RGBA())
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return RGB{R: r, G: g, B: bl}
}

// Luminance returns the relative luminance of c in [0, 1].
func Luminance(c RGB) float64 {
	cf, _ := colorful.MakeColor(c.RGBA())
	r, g, b := cf.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
