package qr

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/jmylchreest/toolbench/internal/colour"
	imageutil "github.com/jmylchreest/toolbench/internal/image"
)

// SVGMargin is the quiet zone of the vector export, in modules.
const SVGMargin = 4

// SVG regenerates text as a vector document using only the colours in opts.
// Rounding and logo compositing are not applied. A transparent background
// omits the background rectangle.
func SVG(w io.Writer, text string, opts Options) error {
	opts.Rounding = RoundingNone
	bm, err := New(text, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writeSVG(&buf, bm)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &imageutil.ExportError{Format: "svg", Err: err}
	}
	return nil
}

// writeSVG emits one rect per horizontal run of dark modules.
func writeSVG(w io.Writer, bm *Bitmap) {
	n := bm.Size()
	total := n + 2*SVGMargin

	canvas := svg.New(w)
	canvas.Start(total, total,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, total, total),
		`shape-rendering="crispEdges"`)
	if !bm.Transparent {
		canvas.Rect(0, 0, total, total, "fill:"+hex(bm.Background.R, bm.Background.G, bm.Background.B))
	}

	canvas.Gstyle("fill:" + hex(bm.Foreground.R, bm.Foreground.G, bm.Foreground.B))
	for row := range n {
		for col := 0; col < n; {
			if !bm.Dark(row, col) {
				col++
				continue
			}
			start := col
			for col < n && bm.Dark(row, col) {
				col++
			}
			canvas.Rect(start+SVGMargin, row+SVGMargin, col-start, 1)
		}
	}
	canvas.Gend()
	canvas.End()
}

func hex(r, g, b uint8) string {
	return colour.RGB{R: r, G: g, B: b}.Hex()
}
