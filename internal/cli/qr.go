package cli

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	imageutil "github.com/jmylchreest/toolbench/internal/image"
	"github.com/jmylchreest/toolbench/internal/qr"
)

var (
	// QR command flags
	qrForeground string
	qrBackground string
	qrRounding   roundingFlag
	qrLogo       string
	qrFormat     string
	qrOutput     string
	qrVerify     bool
)

func newQRCmd() *cobra.Command {
	defaults := qr.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "qr <text>",
		Short: "Generate a QR code as PNG or SVG",
		Long: `Generate a QR code for a URL or any text.

PNG output is a 350x350 canvas with a one-module margin. Dark modules
touching the canvas edge are trimmed by default; use --rounding to pick
none, edge or geometric. A logo, if given, is drawn into the centre
clipped to a rounded square.

SVG output is regenerated from the text and colours only: rounding and
logos apply to PNG output alone.

Use "transparent" as the background for a transparent SVG background.

Examples:
  # Black on white PNG written to qr.png
  toolbench qr https://example.com

  # Coloured code with a logo, checked by decoding it again
  toolbench qr --fg "#1d3557" --bg "#f1faee" --logo logo.png --verify https://example.com

  # Vector output with a transparent background
  toolbench qr --format svg --bg transparent -o code.svg "hello world"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runQR,
	}

	cmd.Flags().StringVar(&qrForeground, "fg", envString(envQRForeground, defaults.Foreground),
		"dark module colour [$"+envQRForeground+"]")
	cmd.Flags().StringVar(&qrBackground, "bg", envString(envQRBackground, defaults.Background),
		`light module colour, or "transparent" [$`+envQRBackground+"]")
	qrRounding = roundingFlag(defaults.Rounding)
	cmd.Flags().Var(&qrRounding, "rounding", "module rounding (none, edge, geometric)")
	cmd.Flags().StringVar(&qrLogo, "logo", "", "image to draw in the centre of PNG output")
	cmd.Flags().StringVarP(&qrFormat, "format", "f", "png", "output format (png, svg)")
	cmd.Flags().StringVarP(&qrOutput, "output", "o", "", "output file (default: qr.<format>)")
	cmd.Flags().BoolVar(&qrVerify, "verify", false, "decode the PNG output and check it matches the text")
	return cmd
}

// runQR executes the qr command.
func runQR(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd, ToolQR)
	text := strings.Join(args, " ")

	opts := qr.Options{
		Foreground: qrForeground,
		Background: qrBackground,
		Rounding:   qr.RoundingMode(qrRounding),
	}

	format := strings.ToLower(qrFormat)
	output := qrOutput
	if output == "" {
		output = "qr." + format
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "png":
		data, err = renderQRPNG(text, opts, logger)
	case "svg":
		if qrLogo != "" {
			logger.Warn("logo is ignored for svg output")
		}
		if qrVerify {
			logger.Warn("verification is only available for png output")
		}
		var buf bytes.Buffer
		err = qr.SVG(&buf, text, opts)
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s (supported: png, svg)", qrFormat)
	}
	if err != nil {
		return err
	}

	if err := afero.WriteFile(appFs, output, data, 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Info("wrote qr code", "output", output, "bytes", len(data))
	return nil
}

// renderQRPNG builds, composites and encodes the raster code.
func renderQRPNG(text string, opts qr.Options, logger hclog.Logger) ([]byte, error) {
	bm, err := qr.New(text, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	logger.Debug("generated bitmap", "modules", bm.Size(), "rounding", bm.Rounding)

	logo, err := loadLogo(qrLogo, logger)
	if err != nil {
		return nil, err
	}

	canvas, err := qr.Composite(bm, logo)
	if err != nil {
		return nil, fmt.Errorf("failed to composite qr code: %w", err)
	}

	if qrVerify {
		payloads, err := qr.Decode(canvas)
		if err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		if !slices.Contains(payloads, text) {
			return nil, fmt.Errorf("verification failed: decoded %q, want %q", payloads, text)
		}
		logger.Info("verified qr code")
	}

	return imageutil.EncodeBytes(canvas, imageutil.FormatPNG, 0)
}

// loadLogo loads the optional logo. A logo that cannot be decoded is
// skipped with a warning.
func loadLogo(path string, logger hclog.Logger) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	logo, err := imageutil.NewFileLoaderFs(appFs).Load(path)
	if errors.Is(err, imageutil.ErrDecodeFailed) {
		logger.Warn("could not decode logo, skipping overlay", "path", path, "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load logo: %w", err)
	}
	return logo, nil
}

// roundingFlag is a pflag.Value that only accepts valid rounding modes.
type roundingFlag qr.RoundingMode

var _ pflag.Value = (*roundingFlag)(nil)

func (f *roundingFlag) String() string { return string(*f) }

func (f *roundingFlag) Set(s string) error {
	m, err := qr.ParseRoundingMode(s)
	if err != nil {
		return err
	}
	*f = roundingFlag(m)
	return nil
}

func (f *roundingFlag) Type() string { return "rounding" }
