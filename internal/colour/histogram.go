package colour

import (
	"fmt"
	"image"
	"slices"
)

const (
	// sampleLimit caps the sampled region on each axis. Larger images are
	// cropped to their top-left corner, not resized.
	sampleLimit = 400

	// quantStep is the per-channel bucket width.
	quantStep = 16
)

// HistogramExtractor ranks colours by how often their quantized bucket occurs.
type HistogramExtractor struct {
	maxWidth  int
	maxHeight int
}

// NewHistogramExtractor creates a HistogramExtractor with the default 400x400 sample window.
func NewHistogramExtractor() *HistogramExtractor {
	return &HistogramExtractor{
		maxWidth:  sampleLimit,
		maxHeight: sampleLimit,
	}
}

// bucket is one histogram cell.
type bucket struct {
	key   RGB
	count int
}

// Quantize rounds a channel to the nearest multiple of 16, clamped to 255.
func Quantize(c uint8) uint8 {
	q := (int(c) + quantStep/2) / quantStep * quantStep
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// QuantizeRGB quantizes each channel of c independently.
func QuantizeRGB(c RGB) RGB {
	return RGB{R: Quantize(c.R), G: Quantize(c.G), B: Quantize(c.B)}
}

// Extract builds the bucket histogram of the sampled region and returns the
// count most frequent buckets. Ties keep first-encountered order. An image
// with no pixels yields an empty palette.
func (e *HistogramExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := checkCount(count); err != nil {
		return nil, err
	}

	buckets := e.histogram(img)

	slices.SortStableFunc(buckets, func(a, b bucket) int {
		return b.count - a.count
	})

	if len(buckets) > count {
		buckets = buckets[:count]
	}

	colours := make([]RGB, len(buckets))
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		colours[i] = b.key
		counts[i] = b.count
	}
	return NewPalette(colours, counts), nil
}

// histogram returns the buckets of the sampled region in first-seen order.
func (e *HistogramExtractor) histogram(img image.Image) []bucket {
	bounds := img.Bounds()
	w := min(bounds.Dx(), e.maxWidth)
	h := min(bounds.Dy(), e.maxHeight)
	if w <= 0 || h <= 0 {
		return nil
	}

	index := make(map[RGB]int)
	var buckets []bucket
	for y := bounds.Min.Y; y < bounds.Min.Y+h; y++ {
		for x := bounds.Min.X; x < bounds.Min.X+w; x++ {
			key := QuantizeRGB(ToRGB(img.At(x, y)))
			if i, ok := index[key]; ok {
				buckets[i].count++
				continue
			}
			index[key] = len(buckets)
			buckets = append(buckets, bucket{key: key, count: 1})
		}
	}
	return buckets
}
