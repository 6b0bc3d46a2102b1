// UMBRA ⸻ internal/render/compositor_test.go
// scrim and label compositing tests

package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
)

var fixtureColor = color.NRGBA{R: 30, G: 80, B: 160, A: 255}

func newEngineForTest(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	t.Cleanup(func() { engine.Close() })

	return engine
}

func bandForImage(t *testing.T, engine *Engine, width, height int) Band {
	t.Helper()

	face, err := engine.Face(FontSizeFor(height))
	if err != nil {
		t.Fatalf("Face returned error: %v", err)
	}

	metrics := face.Metrics()
	return BandFor(width, height, (metrics.Ascent + metrics.Descent).Ceil())
}

func TestCompositePreservesDimensionsAndSource(t *testing.T) {
	engine := newEngineForTest(t)

	src := imaging.New(400, 300, fixtureColor)
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	out, err := Composite(src, "Holiday 2025", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}

	if out.Bounds() != src.Bounds() {
		t.Fatalf("output bounds %v differ from source %v", out.Bounds(), src.Bounds())
	}

	if !bytes.Equal(before, src.Pix) {
		t.Fatalf("source pixels were modified")
	}
}

func TestCompositeOnlyDarkensTheBottomBand(t *testing.T) {
	engine := newEngineForTest(t)
	band := bandForImage(t, engine, 400, 300)

	src := imaging.New(400, 300, fixtureColor)
	out, err := Composite(src, "Holiday 2025", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}

	for y := 0; y < band.Scrim.Min.Y; y++ {
		for x := 0; x < 400; x++ {
			if out.NRGBAAt(x, y) != fixtureColor {
				t.Fatalf("pixel (%d,%d) above the band changed: %v", x, y, out.NRGBAAt(x, y))
			}
		}
	}

	// sampled left of the text inset, so scrim only
	got := out.NRGBAAt(2, 299)
	if got == fixtureColor {
		t.Fatalf("band pixel unchanged")
	}
	if got.R >= fixtureColor.R || got.G >= fixtureColor.G || got.B >= fixtureColor.B {
		t.Fatalf("band pixel not darkened: %v", got)
	}
	if got.A != 255 {
		t.Fatalf("band pixel lost opacity: %v", got)
	}
}

func TestCompositeEmptyLabelDrawsUniformScrim(t *testing.T) {
	engine := newEngineForTest(t)
	band := bandForImage(t, engine, 400, 300)

	src := imaging.New(400, 300, fixtureColor)
	out, err := Composite(src, "", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}

	if out.NRGBAAt(0, 299) == fixtureColor {
		t.Fatalf("expected the scrim to darken the band")
	}

	for y := band.Scrim.Min.Y; y < 300; y++ {
		row := out.NRGBAAt(0, y)
		for x := 1; x < 400; x++ {
			if out.NRGBAAt(x, y) != row {
				t.Fatalf("band row %d not uniform at x=%d", y, x)
			}
		}
	}
}

func TestCompositeLabelAddsGlyphPixels(t *testing.T) {
	engine := newEngineForTest(t)
	band := bandForImage(t, engine, 400, 300)

	src := imaging.New(400, 300, fixtureColor)

	plain, err := Composite(src, "", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}
	labeled, err := Composite(src, "Holiday 2025", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}

	changed := false
	for y := band.Text.Min.Y; y < band.Text.Max.Y && !changed; y++ {
		for x := band.Text.Min.X; x < band.Text.Max.X; x++ {
			if labeled.NRGBAAt(x, y) != plain.NRGBAAt(x, y) {
				changed = true
				break
			}
		}
	}

	if !changed {
		t.Fatalf("label drew no glyph pixels inside the text rect")
	}
}

func TestCompositeIsDeterministic(t *testing.T) {
	engine := newEngineForTest(t)

	src := imaging.New(320, 240, fixtureColor)

	first, err := Composite(src, "Same input", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}
	second, err := Composite(src, "Same input", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatalf("identical inputs produced different outputs")
	}
}

func TestCompositeTwiceDarkensFurther(t *testing.T) {
	engine := newEngineForTest(t)

	src := imaging.New(400, 300, fixtureColor)

	once, err := Composite(src, "Trip", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}
	twice, err := Composite(once, "Trip", engine)
	if err != nil {
		t.Fatalf("Composite returned error: %v", err)
	}

	p1 := once.NRGBAAt(2, 299)
	p2 := twice.NRGBAAt(2, 299)
	if p2.B >= p1.B {
		t.Fatalf("second pass did not darken the band: %v then %v", p1, p2)
	}
}

func TestCompositeRejectsNilSource(t *testing.T) {
	engine := newEngineForTest(t)

	if _, err := Composite(nil, "x", engine); err == nil {
		t.Fatalf("expected nil source to be rejected")
	}
}

func TestEllipsizeKeepsFittingLabels(t *testing.T) {
	engine := newEngineForTest(t)
	face, err := engine.Face(14)
	if err != nil {
		t.Fatalf("Face returned error: %v", err)
	}

	if got := ellipsize(face, "ok", 1000); got != "ok" {
		t.Fatalf("fitting label was altered: %q", got)
	}
}

func TestEllipsizeTrimsToWidth(t *testing.T) {
	engine := newEngineForTest(t)
	face, err := engine.Face(14)
	if err != nil {
		t.Fatalf("Face returned error: %v", err)
	}

	long := "This label is far too long to fit in a narrow band"
	got := ellipsize(face, long, 80)

	if got == long {
		t.Fatalf("expected the label to be trimmed")
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("trimmed label missing ellipsis: %q", got)
	}

	measure := font.Drawer{Face: face}
	if measure.MeasureString(got).Ceil() > 80 {
		t.Fatalf("trimmed label still too wide: %q", got)
	}
}

func TestEllipsizeDegradesToBareEllipsis(t *testing.T) {
	engine := newEngineForTest(t)
	face, err := engine.Face(14)
	if err != nil {
		t.Fatalf("Face returned error: %v", err)
	}

	if got := ellipsize(face, "wide", 1); got != "…" {
		t.Fatalf("expected bare ellipsis, got %q", got)
	}
}
