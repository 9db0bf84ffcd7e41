package qr

import (
	"fmt"
	"image"
	"image/color"

	"github.com/liyue201/goqr"
	"golang.org/x/image/draw"
)

// verifyPadding is the white border added around an image before recognition.
// The rendered canvas only carries a one-module quiet zone.
const verifyPadding = 48

// Decode recognises every matrix code in img and returns their payloads.
func Decode(img image.Image) ([]string, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("image cannot be empty")
	}

	codes, err := goqr.Recognize(pad(img))
	if err != nil {
		return nil, fmt.Errorf("failed to recognise code: %w", err)
	}

	payloads := make([]string, 0, len(codes))
	for _, c := range codes {
		payloads = append(payloads, string(c.Payload))
	}
	return payloads, nil
}

// pad flattens img onto an opaque white canvas with a verifyPadding border.
// Pixels with cleared alpha become white, as a scanner would see them.
func pad(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*verifyPadding, b.Dy()+2*verifyPadding))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(verifyPadding, verifyPadding, verifyPadding+b.Dx(), verifyPadding+b.Dy()), img, b.Min, draw.Over)
	return out
}
