package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/toolbench/internal/colour"
	imageutil "github.com/jmylchreest/toolbench/internal/image"
)

var (
	// Palette command flags
	paletteColours   int
	paletteAlgorithm string
	paletteFormat    string
	paletteOutput    string
	palettePreview   bool
)

var paletteFormats = []string{"hex", "list", "rgb", "json", "table"}

func newPaletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette <image> [image...]",
		Short: "Extract the most common colours of an image",
		Long: `Extract a colour palette from one or more images.

The default histogram algorithm samples the top-left 400x400 pixels,
snaps every channel to a step of 16 and ranks the resulting colours by
how often they occur. The dominant and kmeans algorithms cluster colours
instead.

Supported image formats: JPEG, PNG, GIF, WebP

Images that cannot be decoded produce an empty palette and a warning.

Examples:
  # Six most common colours, one hex code per line
  toolbench palette photo.jpg

  # All colours on one comma separated line
  toolbench palette --format list photo.jpg

  # Ten colours from two images as JSON
  toolbench palette -c 10 -f json a.png b.webp

  # Cluster colours with k-means and show swatches
  toolbench palette -a kmeans --preview photo.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPalette,
	}

	cmd.Flags().IntVarP(&paletteColours, "colours", "c",
		envInt(envPaletteColours, colour.DefaultColourCount),
		fmt.Sprintf("number of colours to extract (1-%d) [$%s]", colour.MaxColourCount, envPaletteColours))
	cmd.Flags().StringVarP(&paletteAlgorithm, "algorithm", "a",
		envString(envPaletteAlgorithm, string(colour.AlgorithmHistogram)),
		fmt.Sprintf("extraction algorithm (%s) [$%s]", joinAlgorithms(), envPaletteAlgorithm))
	cmd.Flags().StringVarP(&paletteFormat, "format", "f", "hex",
		"output format ("+strings.Join(paletteFormats, ", ")+")")
	cmd.Flags().StringVarP(&paletteOutput, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&palettePreview, "preview", false, "show colour swatches when writing to a terminal")
	return cmd
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd, ToolPalette)

	config := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(strings.ToLower(paletteAlgorithm)),
		ColorCount: paletteColours,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !validPaletteFormat(paletteFormat) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", paletteFormat, strings.Join(paletteFormats, ", "))
	}

	extractor, err := colour.NewExtractor(config.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	loader := imageutil.NewFileLoaderFs(appFs)
	palettes := make([]*colour.Palette, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := extractPalette(loader, extractor, path, config.ColorCount, logger.With("path", path))
			if err != nil {
				return err
			}
			palettes[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	preview := palettePreview && paletteOutput == "" && colour.IsTerminal(cmd.OutOrStdout())
	if palettePreview && !preview {
		logger.Debug("swatch preview disabled, output is not a terminal")
	}

	output, err := formatPalettes(args, palettes, paletteFormat, preview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if paletteOutput != "" {
		logger.Debug("writing palette", "output", paletteOutput)
		if err := afero.WriteFile(appFs, paletteOutput, []byte(output), 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote palette", "output", paletteOutput)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// extractPalette loads one image and extracts its palette. An image that
// cannot be decoded yields an empty palette.
func extractPalette(loader imageutil.Loader, extractor colour.Extractor, path string, count int, logger hclog.Logger) (*colour.Palette, error) {
	img, err := loader.Load(path)
	if errors.Is(err, imageutil.ErrDecodeFailed) {
		logger.Warn("could not decode image, palette is empty", "error", err)
		return colour.NewPalette(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	b := img.Bounds()
	logger.Debug("image loaded", "width", b.Dx(), "height", b.Dy())

	palette, err := extractor.Extract(img, count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours from %s: %w", path, err)
	}
	logger.Debug("extracted colours", "count", palette.Len())
	return palette, nil
}

func validPaletteFormat(format string) bool {
	for _, f := range paletteFormats {
		if f == format {
			return true
		}
	}
	return false
}

func joinAlgorithms() string {
	algs := colour.ValidAlgorithms()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// formatPalettes renders the palettes in argument order. Text formats get
// a "# <source>" header per image when there is more than one; JSON
// becomes an array.
func formatPalettes(sources []string, palettes []*colour.Palette, format string, preview bool) (string, error) {
	if format == "json" {
		return formatPalettesJSON(sources, palettes)
	}

	var b strings.Builder
	for i, p := range palettes {
		if len(palettes) > 1 {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "# %s\n", sources[i])
		}
		out, err := formatPalette(p, format, preview)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func formatPalettesJSON(sources []string, palettes []*colour.Palette) (string, error) {
	if len(palettes) == 1 {
		data, err := palettes[0].ToJSON(sources[0])
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	}

	docs := make([]json.RawMessage, len(palettes))
	for i, p := range palettes {
		data, err := p.ToJSON(sources[i])
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		docs[i] = data
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to convert to JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// formatPalette formats a single palette according to format.
func formatPalette(palette *colour.Palette, format string, preview bool) (string, error) {
	var b strings.Builder
	switch format {
	case "hex":
		for _, e := range palette.Entries {
			if preview {
				b.WriteString(colour.FormatColourWithPreview(e.RGB, 8))
			} else {
				b.WriteString(e.Hex)
			}
			b.WriteByte('\n')
		}
	case "list":
		if palette.Len() > 0 {
			b.WriteString(palette.Join())
			b.WriteByte('\n')
		}
	case "rgb":
		for _, rgb := range palette.ToRGBSlice() {
			if preview {
				b.WriteString(colour.ColourPreview(rgb, 8) + "  ")
			}
			b.WriteString(rgb.String())
			b.WriteByte('\n')
		}
	case "table":
		table := NewTable("Rank", "Hex", "RGB", "Count")
		for _, e := range palette.All() {
			table.AddRow(strconv.Itoa(e.Rank), e.Hex, e.RGB.String(), strconv.Itoa(e.Count))
		}
		b.WriteString(table.Render())
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(paletteFormats, ", "))
	}
	return b.String(), nil
}
