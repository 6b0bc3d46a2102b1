// UMBRA ⸻ internal/render/geometry.go
// band geometry for the bottom label scrim

package render

import "image"

// layout of the scrim band along the bottom edge of an image
type Band struct {
	Pad   int
	Scrim image.Rectangle
	Text  image.Rectangle
}

// uniform inset separating the scrim edges from the text rect
func PadFor(height int) int {
	return max(8, int(0.012*float64(height)))
}

// point size for the label; never reduced for long text
func FontSizeFor(height int) float64 {
	return max(10, 0.042*float64(height))
}

// band layout for an image of the given size holding a single text line of
// the measured height; the upper clamp is applied last and wins on tiny
// images, collapsing the band rather than letting it dominate the frame
func BandFor(width, height, textHeight int) Band {
	pad := PadFor(height)

	scrimH := max(textHeight+2*pad, max(18, int(0.05*float64(height))))
	scrimH = min(scrimH, int(0.15*float64(height)))

	scrim := image.Rect(0, height-scrimH, width, height)

	return Band{
		Pad:   pad,
		Scrim: scrim,
		Text:  scrim.Inset(pad),
	}
}
