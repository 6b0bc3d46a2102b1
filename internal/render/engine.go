// UMBRA ⸻ internal/render/engine.go
// font engine lifecycle and face construction

package render

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// fixed density so point sizes keep their desktop meaning
const fontDPI = 96

// preferred system faces, probed in order before the embedded fallback
var systemFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation2/LiberationSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
}

// owns the parsed font and every face cut from it
type Engine struct {
	font  *opentype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// parses the first usable system font, falling back to the embedded bold face
func NewEngine() (*Engine, error) {
	for _, path := range systemFonts {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		parsed, err := opentype.Parse(data)
		if err != nil {
			continue
		}

		return &Engine{font: parsed, faces: make(map[float64]font.Face)}, nil
	}

	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}

	return &Engine{font: parsed, faces: make(map[float64]font.Face)}, nil
}

// face at the given point size, cached for reuse within the engine
func (e *Engine) Face(size float64) (font.Face, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if face, ok := e.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(e.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}

	e.faces[size] = face
	return face, nil
}

// releases every face the engine handed out; must run on failure paths too
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for size, face := range e.faces {
		if closer, ok := face.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		delete(e.faces, size)
	}

	return firstErr
}
