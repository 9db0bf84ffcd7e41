package colour

import (
	"fmt"
	"image"
	"slices"

	"github.com/cenkalti/dominantcolor"
)

// DominantExtractor ranks colours by the weight dominantcolor assigns them.
type DominantExtractor struct{}

// NewDominantExtractor creates a new DominantExtractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{}
}

// Extract returns at most count dominant colours, heaviest first.
func (e *DominantExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := checkCount(count); err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return NewPalette(nil, nil), nil
	}

	found := dominantcolor.FindWeight(img, count)
	slices.SortStableFunc(found, func(a, b dominantcolor.Color) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})

	colours := make([]RGB, 0, count)
	seen := make(map[RGB]bool)
	for _, c := range found {
		rgb := RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B}
		if seen[rgb] {
			continue
		}
		seen[rgb] = true
		colours = append(colours, rgb)
		if len(colours) == count {
			break
		}
	}
	return NewPalette(colours, nil), nil
}
