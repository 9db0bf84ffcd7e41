// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	// The returned palette never holds more than count entries.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmHistogram counts 16-step quantized buckets and ranks them by frequency.
	AlgorithmHistogram Algorithm = "histogram"

	// AlgorithmDominant ranks weighted dominant colours.
	AlgorithmDominant Algorithm = "dominant"

	// AlgorithmKMeans uses k-means clustering for colour extraction.
	AlgorithmKMeans Algorithm = "kmeans"
)

const (
	// DefaultColourCount matches the six swatches of the palette view.
	DefaultColourCount = 6

	// MaxColourCount is the upper bound accepted by ExtractorConfig.
	MaxColourCount = 256
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmHistogram,
		AlgorithmDominant,
		AlgorithmKMeans,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmHistogram, "":
		return NewHistogramExtractor(), nil
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmHistogram,
		ColorCount: DefaultColourCount,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	return validateCount(c.ColorCount)
}

// validateCount bounds a configured count to 1..MaxColourCount.
func validateCount(count int) error {
	if err := checkCount(count); err != nil {
		return err
	}
	if count > MaxColourCount {
		return fmt.Errorf("colour count too large: %d (maximum: %d)", count, MaxColourCount)
	}
	return nil
}

// checkCount is the extractors' own bound. Counts above MaxColourCount are
// valid and simply return every available colour.
func checkCount(count int) error {
	if count < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	return nil
}
