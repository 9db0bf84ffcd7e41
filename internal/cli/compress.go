package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	imageutil "github.com/jmylchreest/toolbench/internal/image"
)

var (
	// Compress command flags
	compressQuality float64
	compressOutput  string
)

var defaultCompressOutput = "compressed" + imageutil.FormatJPEG.Ext()

func newCompressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compress <image>",
		Aliases: []string{string(ToolJPEG)},
		Short:   "Re-encode an image as a smaller JPEG",
		Long: `Re-encode an image as JPEG at the chosen quality.

The image is redrawn at its full size, so only the encoding changes.
Quality ranges from 0.1 to 1.0.

Supported input formats: JPEG, PNG, GIF, WebP

Examples:
  # Default quality 0.8, written to compressed.jpg
  toolbench compress photo.png

  # Aggressive compression to a chosen file
  toolbench compress --quality 0.3 -o small.jpg photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: runCompress,
	}

	cmd.Flags().Float64VarP(&compressQuality, "quality", "Q",
		envFloat(envJPEGQuality, imageutil.DefaultJPEGQuality),
		"JPEG quality (0.1-1.0) [$"+envJPEGQuality+"]")
	cmd.Flags().StringVarP(&compressOutput, "output", "o", defaultCompressOutput, "output file")
	return cmd
}

// runCompress executes the compress command.
func runCompress(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd, ToolJPEG)
	path := args[0]

	if err := imageutil.ValidateQuality(compressQuality); err != nil {
		return err
	}

	if err := imageutil.ValidateImagePath(appFs, path); err != nil {
		return fmt.Errorf("invalid input image: %w", err)
	}

	info, err := appFs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	img, err := imageutil.NewFileLoaderFs(appFs).Load(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	logger.Debug("image loaded", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	var buf bytes.Buffer
	if err := imageutil.Recompress(&buf, img, compressQuality); err != nil {
		return err
	}
	if err := afero.WriteFile(appFs, compressOutput, buf.Bytes(), 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
		return fmt.Errorf("failed to write %s: %w", compressOutput, err)
	}

	before, after := info.Size(), int64(buf.Len())
	logger.Info("compressed image",
		"output", compressOutput,
		"quality", compressQuality,
		"original_bytes", before,
		"compressed_bytes", after,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s (%s)\n", compressOutput, formatBytes(before), formatBytes(after), savings(before, after))
	return nil
}

// formatBytes renders n in B, KB or MB with one decimal.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// savings describes the size change from before to after.
func savings(before, after int64) string {
	if before <= 0 {
		return "n/a"
	}
	pct := 100 * float64(before-after) / float64(before)
	if pct < 0 {
		return fmt.Sprintf("%.1f%% larger", -pct)
	}
	return fmt.Sprintf("%.1f%% smaller", pct)
}
