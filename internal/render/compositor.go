// UMBRA ⸻ internal/render/compositor.go
// scrim fill and two-pass label text

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	scrimColor  = color.NRGBA{A: 120}
	shadowColor = color.NRGBA{A: 160}
)

const ellipsis = "…"

// draws the scrim band and label onto a copy of src; src itself is never
// modified and the copy keeps its exact pixel dimensions
func Composite(src image.Image, label string, engine *Engine) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source image")
	}

	canvas := imaging.Clone(src)
	bounds := canvas.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	face, err := engine.Face(FontSizeFor(height))
	if err != nil {
		return nil, err
	}

	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	band := BandFor(width, height, textHeight)

	draw.Draw(canvas, band.Scrim, image.NewUniform(scrimColor), image.Point{}, draw.Over)

	if label == "" || band.Text.Empty() {
		return canvas, nil
	}

	text := ellipsize(face, label, band.Text.Dx())

	// left aligned, vertically centered inside the text rect
	x := band.Text.Min.X
	baseline := band.Text.Min.Y + (band.Text.Dy()-textHeight)/2 + metrics.Ascent.Ceil()

	// glyphs are clipped to the text rect
	clip := canvas.SubImage(band.Text).(*image.NRGBA)

	shadow := &font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(shadowColor),
		Face: face,
		Dot:  fixed.P(x+1, baseline+1),
	}
	shadow.DrawString(text)

	foreground := &font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	foreground.DrawString(text)

	return canvas, nil
}

// trims the label with a trailing ellipsis until it fits maxWidth
func ellipsize(face font.Face, label string, maxWidth int) string {
	measure := font.Drawer{Face: face}
	if measure.MeasureString(label).Ceil() <= maxWidth {
		return label
	}

	runes := []rune(label)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		trimmed := string(runes) + ellipsis
		if measure.MeasureString(trimmed).Ceil() <= maxWidth {
			return trimmed
		}
	}

	return ellipsis
}
