package colour

import (
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	maxSamples int
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxSamples: 5000, // Limit total samples for performance
	}
}

// Extract clusters sampled pixels into count groups and returns the cluster
// centres, most populated first. When the image holds no more than count
// distinct colours they are returned directly, ranked by frequency.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := checkCount(count); err != nil {
		return nil, err
	}

	pixels := e.samplePixels(img)
	if len(pixels) == 0 {
		return NewPalette(nil, nil), nil
	}

	unique, counts := rankExact(pixels)
	if count >= len(unique) {
		return NewPalette(unique, counts), nil
	}

	dataset := make(clusters.Observations, len(pixels))
	for i, p := range pixels {
		dataset[i] = clusters.Coordinates{float64(p.R), float64(p.G), float64(p.B)}
	}

	cc, err := kmeans.New().Partition(dataset, count)
	if err != nil {
		return nil, fmt.Errorf("failed to partition pixels: %w", err)
	}

	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	colours := make([]RGB, 0, count)
	sizes := make([]int, 0, count)
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		colours = append(colours, RGB{
			R: clampChannel(c.Center[0]),
			G: clampChannel(c.Center[1]),
			B: clampChannel(c.Center[2]),
		})
		sizes = append(sizes, len(c.Observations))
	}
	return NewPalette(colours, sizes), nil
}

// samplePixels walks the image on a regular grid so that at most maxSamples
// pixels are returned.
func (e *KMeansExtractor) samplePixels(img image.Image) []RGB {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	step := 1
	if w*h > e.maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(e.maxSamples))) + 1
	}

	pixels := make([]RGB, 0, min(w*h, e.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, ToRGB(img.At(x, y)))
		}
	}
	return pixels
}

// rankExact counts exact colours and returns them most frequent first.
func rankExact(pixels []RGB) ([]RGB, []int) {
	index := make(map[RGB]int)
	var buckets []bucket
	for _, p := range pixels {
		if i, ok := index[p]; ok {
			buckets[i].count++
			continue
		}
		index[p] = len(buckets)
		buckets = append(buckets, bucket{key: p, count: 1})
	}
	slices.SortStableFunc(buckets, func(a, b bucket) int {
		return b.count - a.count
	})

	colours := make([]RGB, len(buckets))
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		colours[i] = b.key
		counts[i] = b.count
	}
	return colours, counts
}

func clampChannel(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}
