package cli

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables that override flag defaults.
const (
	envPaletteColours   = "TOOLBENCH_PALETTE_COLOURS"
	envPaletteAlgorithm = "TOOLBENCH_PALETTE_ALGORITHM"
	envJPEGQuality      = "TOOLBENCH_JPEG_QUALITY"
	envQRForeground     = "TOOLBENCH_QR_FOREGROUND"
	envQRBackground     = "TOOLBENCH_QR_BACKGROUND"
)

// envString returns the trimmed value of key, or def when unset or blank.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns key parsed as an int, or def when unset or malformed.
// Range checks happen when the flag value is validated.
func envInt(key string, def int) int {
	n, err := strconv.Atoi(envString(key, ""))
	if err != nil {
		return def
	}
	return n
}

// envFloat returns key parsed as a float64, or def when unset or malformed.
func envFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(envString(key, ""), 64)
	if err != nil {
		return def
	}
	return f
}
