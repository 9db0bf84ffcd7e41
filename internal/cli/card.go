package cli

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toolbench/internal/card"
	imageutil "github.com/jmylchreest/toolbench/internal/image"
)

var (
	// Card command flags
	cardName       string
	cardUsername   string
	cardVerified   bool
	cardText       string
	cardTheme      string
	cardBackground string
	cardAvatar     string
	cardScale      int
	cardFormat     string
	cardFileName   string
	cardOutput     string
)

// cardJPEGQuality is the fixed quality of JPEG card exports.
const cardJPEGQuality = 0.92

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card [text...]",
		Short: "Render a post as a PNG or JPEG card",
		Long: `Render a short post as a shareable image card.

Hashtags, mentions and links are drawn in the accent colour. The card is
600 pixels wide at scale 1 and grows in height with the text; --scale
enlarges the whole card up to 4x.

Themes: light, dark, gradient-1, gradient-2

The card is written to <file-name>.<format> in the current directory.
With --output the path is used as given and, unless --format is set, the
format follows its extension (.jpg and .jpeg give JPEG, anything else PNG).

Examples:
  # Dark card written to tweet-card.png
  toolbench card --name "Ada" --username ada "Shipping #golang today"

  # Verified, gradient theme, double resolution JPEG
  toolbench card --name Ada --username ada --verified --theme gradient-1 \
    --scale 2 --format jpeg --avatar me.png "Hello @world"

  # Format taken from the output path
  toolbench card --name Ada -o cards/ada.jpg "Hello"`,
		RunE: runCard,
	}

	cmd.Flags().StringVar(&cardName, "name", "", "display name")
	cmd.Flags().StringVar(&cardUsername, "username", "", "handle shown after @")
	cmd.Flags().BoolVar(&cardVerified, "verified", false, "show the verified badge")
	cmd.Flags().StringVar(&cardText, "text", "", "post text (default: the arguments)")
	cmd.Flags().StringVar(&cardTheme, "theme", string(card.ThemeDark), "card theme (light, dark, gradient-1, gradient-2)")
	cmd.Flags().StringVar(&cardBackground, "background", "", "background colour overriding the theme, e.g. #334455")
	cmd.Flags().StringVar(&cardAvatar, "avatar", "", "avatar image, clipped to a circle")
	cmd.Flags().IntVar(&cardScale, "scale", 1, fmt.Sprintf("export scale (1-%d)", card.MaxScale))
	cmd.Flags().StringVarP(&cardFormat, "format", "f", "png", "output format (png, jpeg)")
	cmd.Flags().StringVar(&cardFileName, "file-name", "tweet-card", "output file name without extension")
	cmd.Flags().StringVarP(&cardOutput, "output", "o", "", "output path, overrides --file-name")
	return cmd
}

// runCard executes the card command.
func runCard(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd, ToolCard)

	text := cardText
	if text == "" {
		text = strings.Join(args, " ")
	} else if len(args) > 0 {
		return fmt.Errorf("give text as arguments or --text, not both")
	}

	theme, err := card.ParseTheme(cardTheme)
	if err != nil {
		return err
	}
	format, err := imageutil.ParseFormat(cardFormat)
	if err != nil {
		return err
	}
	output := cardFileName + "." + string(format)
	if cardOutput != "" {
		output = cardOutput
		if !cmd.Flags().Changed("format") {
			format = imageutil.FormatFromPath(cardOutput)
		}
	} else if strings.TrimSpace(cardFileName) == "" {
		return fmt.Errorf("file name cannot be empty")
	}

	var avatar image.Image
	if cardAvatar != "" {
		avatar, err = imageutil.NewFileLoaderFs(appFs).Load(cardAvatar)
		switch {
		case errors.Is(err, imageutil.ErrDecodeFailed):
			logger.Warn("could not decode avatar, using initial", "path", cardAvatar, "error", err)
			avatar = nil
		case err != nil:
			return fmt.Errorf("failed to load avatar: %w", err)
		}
	}

	img, err := card.Render(card.Card{
		Name:       cardName,
		Username:   cardUsername,
		Verified:   cardVerified,
		Text:       text,
		Theme:      theme,
		Background: cardBackground,
		Avatar:     avatar,
	}, cardScale)
	if err != nil {
		return fmt.Errorf("failed to render card: %w", err)
	}

	if err := imageutil.WriteFile(appFs, output, img, format, cardJPEGQuality); err != nil {
		return err
	}
	logger.Info("wrote card", "output", output, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
