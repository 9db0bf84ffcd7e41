package card

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/toolbench/internal/colour"
)

// Theme selects the card background and text colours.
type Theme string

const (
	ThemeLight     Theme = "light"
	ThemeDark      Theme = "dark"
	ThemeGradient1 Theme = "gradient-1"
	ThemeGradient2 Theme = "gradient-2"
)

// ValidThemes returns the supported themes.
func ValidThemes() []Theme {
	return []Theme{ThemeLight, ThemeDark, ThemeGradient1, ThemeGradient2}
}

// ParseTheme accepts any of ValidThemes; empty selects dark.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return ThemeDark, nil
	}
	for _, v := range ValidThemes() {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid theme: %s (valid: %v)", s, ValidThemes())
}

// style is a resolved background: a flat colour when from == to.
type style struct {
	from colour.RGB
	to   colour.RGB
	text colour.RGB
}

var (
	white = colour.RGB{R: 0xff, G: 0xff, B: 0xff}
	black = colour.RGB{}
)

// resolveStyle maps a theme and optional background override to colours.
// An override replaces the background but keeps the theme's text contrast:
// black text on light, white on everything else.
func resolveStyle(theme Theme, override string) (style, error) {
	if override != "" {
		bg, err := colour.ParseHex(override)
		if err != nil {
			return style{}, fmt.Errorf("invalid background: %w", err)
		}
		text := white
		if theme == ThemeLight {
			text = black
		}
		return style{from: bg, to: bg, text: text}, nil
	}

	switch theme {
	case ThemeLight:
		return style{from: white, to: white, text: black}, nil
	case ThemeGradient1:
		return style{
			from: colour.RGB{R: 0x66, G: 0x7e, B: 0xea},
			to:   colour.RGB{R: 0x76, G: 0x4b, B: 0xa2},
			text: white,
		}, nil
	case ThemeGradient2:
		return style{
			from: colour.RGB{R: 0xff, G: 0x9a, B: 0x9e},
			to:   colour.RGB{R: 0xfe, G: 0xcf, B: 0xef},
			text: black,
		}, nil
	default:
		dark := colour.RGB{R: 0x15, G: 0x20, B: 0x2b}
		return style{from: dark, to: dark, text: white}, nil
	}
}
