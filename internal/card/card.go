// Package card renders short posts as shareable image cards.
package card

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/toolbench/internal/colour"
)

const (
	// Width is the card width at scale 1.
	Width = 600

	padding    = 24
	avatarSize = 48
	gap        = 12
	lineHeight = 18
	badgeSize  = 14

	// MaxScale is the largest accepted export scale.
	MaxScale = 4
)

var (
	face        = basicfont.Face7x13
	accent      = colour.RGB{R: 0x1d, G: 0x9b, B: 0xf0}
	mutedOnDark = colour.RGB{R: 0x8b, G: 0x98, B: 0xa5}
	mutedOnLite = colour.RGB{R: 0x53, G: 0x64, B: 0x71}
)

// Card is the content of one post.
type Card struct {
	Name     string
	Username string
	Verified bool
	Text     string
	Theme    Theme
	// Background overrides the theme background when set ("#RRGGBB").
	Background string
	// Avatar is drawn clipped to a circle; nil draws an initial instead.
	Avatar image.Image
}

// Render draws c at scale 1 and enlarges it by scale (1 to MaxScale).
func Render(c Card, scale int) (*image.NRGBA, error) {
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("scale must be between 1 and %d, got %d", MaxScale, scale)
	}
	st, err := resolveStyle(c.Theme, c.Background)
	if err != nil {
		return nil, err
	}

	lines := wrap(highlight(c.Text), columns())
	height := heightFor(len(lines))

	img := image.NewNRGBA(image.Rect(0, 0, Width, height))
	paintBackground(img, st)
	drawAvatar(img, c, st)
	drawHeader(img, c, st)

	y := padding + avatarSize + gap + face.Ascent
	for _, l := range lines {
		drawLine(img, l, padding, y, st.text)
		y += lineHeight
	}

	if scale == 1 {
		return img, nil
	}
	out := image.NewNRGBA(image.Rect(0, 0, Width*scale, height*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out, nil
}

// Size returns the pixel size Render produces for c at scale.
func Size(c Card, scale int) image.Point {
	lines := wrap(highlight(c.Text), columns())
	return image.Pt(Width*scale, heightFor(len(lines))*scale)
}

// columns is the number of glyphs that fit between the side paddings.
func columns() int {
	return (Width - 2*padding) / advance()
}

func heightFor(lines int) int {
	return padding + avatarSize + gap + lines*lineHeight + padding
}

func advance() int {
	return face.Advance
}

// paintBackground fills img with a flat colour or a 135 degree gradient.
func paintBackground(img *image.NRGBA, st style) {
	b := img.Bounds()
	if st.from == st.to {
		draw.Draw(img, b, image.NewUniform(st.from.RGBA()), image.Point{}, draw.Src)
		return
	}

	const steps = 256
	var ramp [steps]color.NRGBA
	for i := range ramp {
		c := colour.Blend(st.from, st.to, float64(i)/(steps-1))
		ramp[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}

	w, h := float64(b.Dx()-1), float64(b.Dy()-1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := 0.0
			if w+h > 0 {
				t = (float64(x) + float64(y)) / (w + h)
			}
			img.SetNRGBA(x, y, ramp[int(math.Round(t*(steps-1)))])
		}
	}
}

// drawAvatar draws the avatar, or the name's initial on a neutral disc.
func drawAvatar(img *image.NRGBA, c Card, st style) {
	rect := image.Rect(padding, padding, padding+avatarSize, padding+avatarSize)
	mask := &circle{center: image.Pt(rect.Min.X+avatarSize/2, rect.Min.Y+avatarSize/2), radius: avatarSize / 2}

	if c.Avatar != nil && !c.Avatar.Bounds().Empty() {
		scaled := image.NewNRGBA(image.Rect(0, 0, avatarSize, avatarSize))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), c.Avatar, c.Avatar.Bounds(), draw.Src, nil)
		draw.DrawMask(img, rect, scaled, image.Point{}, mask, rect.Min, draw.Over)
		return
	}

	disc := colour.Blend(st.from, st.text, 0.3)
	draw.DrawMask(img, rect, image.NewUniform(disc.RGBA()), image.Point{}, mask, rect.Min, draw.Over)

	initial := strings.ToUpper(firstRune(c.Name))
	if initial == "" {
		return
	}
	x := rect.Min.X + (avatarSize-advance())/2
	y := rect.Min.Y + (avatarSize+face.Ascent)/2 - 1
	drawString(img, initial, x, y, st.text)
}

// drawHeader draws the bold name, the verified badge and the handle.
func drawHeader(img *image.NRGBA, c Card, st style) {
	x := padding + avatarSize + gap
	y := padding + face.Ascent + 4

	name := c.Name
	if name == "" {
		name = "Anonymous"
	}
	drawString(img, name, x, y, st.text)
	drawString(img, name, x+1, y, st.text)

	if c.Verified {
		bx := x + len([]rune(name))*advance() + 1 + 6
		drawBadge(img, image.Pt(bx+badgeSize/2, y-face.Ascent/2))
	}

	muted := mutedOnDark
	if colour.Luminance(st.text) < 0.5 {
		muted = mutedOnLite
	}
	if handle := strings.TrimPrefix(c.Username, "@"); handle != "" {
		drawString(img, "@"+handle, x, y+lineHeight, muted)
	}
}

// drawBadge draws a filled accent disc with a white tick.
func drawBadge(img *image.NRGBA, center image.Point) {
	mask := &circle{center: center, radius: badgeSize / 2}
	draw.DrawMask(img, mask.Bounds(), image.NewUniform(accent.RGBA()), image.Point{}, mask, mask.Bounds().Min, draw.Over)

	tick := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i <= 2; i++ {
		img.SetNRGBA(center.X-3+i, center.Y+i-1, tick)
		img.SetNRGBA(center.X-3+i, center.Y+i, tick)
	}
	for i := 0; i <= 4; i++ {
		img.SetNRGBA(center.X-1+i, center.Y+1-i, tick)
		img.SetNRGBA(center.X-1+i, center.Y+2-i, tick)
	}
}

// drawLine draws one wrapped line, switching to the accent colour for highlighted runs.
func drawLine(img *image.NRGBA, l line, x, y int, text colour.RGB) {
	d := &font.Drawer{Dst: img, Face: face, Dot: fixed.P(x, y)}
	for _, g := range l {
		c := text
		if g.accent {
			c = accent
		}
		d.Src = image.NewUniform(c.RGBA())
		d.DrawString(string(g.r))
	}
}

func drawString(img *image.NRGBA, s string, x, y int, c colour.RGB) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.RGBA()),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func firstRune(s string) string {
	for _, r := range strings.TrimSpace(s) {
		return string(r)
	}
	return ""
}

// circle is an alpha mask that is opaque inside a disc.
type circle struct {
	center image.Point
	radius int
}

func (c *circle) ColorModel() color.Model { return color.AlphaModel }

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.center.X-c.radius, c.center.Y-c.radius, c.center.X+c.radius, c.center.Y+c.radius)
}

func (c *circle) At(x, y int) color.Color {
	dx := float64(x-c.center.X) + 0.5
	dy := float64(y-c.center.Y) + 0.5
	if dx*dx+dy*dy <= float64(c.radius*c.radius) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}
