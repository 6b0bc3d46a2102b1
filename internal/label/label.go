// UMBRA ⸻ internal/label/label.go
// main labeling orchestration

package label

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sombra/internal/formats"
	"sombra/internal/render"
	"sombra/internal/util"
)

// how the labeled bitmap is persisted
type Mode int

const (
	// replace the source through a temporary sibling and rename
	ModeOverwrite Mode = iota

	// write a fresh sibling carrying the labeled suffix
	ModeCopy
)

type Options struct {
	// overwrite the original or write a sibling copy?
	Mode Mode

	// bump a numeric counter instead of replacing an existing copy output?
	AvoidCollisions bool

	// decode the output again after saving?
	VerifyOutput bool
}

func DefaultOptions() *Options {
	return &Options{
		Mode:            ModeCopy,
		AvoidCollisions: false,
		VerifyOutput:    false,
	}
}

type Result struct {
	Success      bool
	SourcePath   string
	OutputPath   string
	Label        string
	Replaced     bool
	Width        int
	Height       int
	Verification *VerificationResult
}

// composites the label onto the image at path and persists the result
func LabelFile(path, text string, options *Options) (*Result, error) {
	if options == nil {
		options = DefaultOptions()
	}

	result := &Result{
		SourcePath: path,
		Label:      text,
	}

	if _, err := os.Stat(path); err != nil {
		return result, pathMissing(path)
	}

	img, _, err := formats.DecodeFile(path)
	if err != nil {
		return result, loadFailed(path, err)
	}

	encode, err := formats.GetEncoder(formats.MimePNG)
	if err != nil {
		return result, encoderMissing(formats.MimePNG, err)
	}

	engine, err := render.NewEngine()
	if err != nil {
		return result, fmt.Errorf("font engine unavailable: %w", err)
	}
	defer engine.Close()

	labeled, err := render.Composite(img, text, engine)
	if err != nil {
		return result, fmt.Errorf("compositing failed: %w", err)
	}

	bounds := labeled.Bounds()
	result.Width = bounds.Dx()
	result.Height = bounds.Dy()

	var saved string
	switch options.Mode {
	case ModeOverwrite:
		saved, err = saveOverwrite(labeled, path, encode)
	default:
		saved, err = saveCopy(labeled, path, encode, options.AvoidCollisions)
	}
	if err != nil {
		return result, saveFailed(path, err)
	}

	result.OutputPath = saved
	result.Replaced = saved == path

	if options.VerifyOutput {
		verification, err := VerifyOutput(saved, result.Width, result.Height)
		if err != nil {
			return result, saveFailed(saved, err)
		}
		result.Verification = verification
	}

	result.Success = result.Verification == nil || result.Verification.Success

	return result, nil
}

// reports whether path names an output or temp file this tool produces;
// used to keep unattended runs from re-labeling their own results
func IsDerivedPath(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Contains(stem, LabeledSuffix) || strings.Contains(base, util.TempMarker)
}

// report of the labeling operation
func FormatResult(result *Result) string {
	var sb strings.Builder

	if result.Success {
		if result.Replaced {
			message := fmt.Sprintf("[i] Replaced original: %s", result.OutputPath)
			sb.WriteString(util.NTC.Render(message))
		} else {
			message := fmt.Sprintf("[i] Output saved to: %s", result.OutputPath)
			sb.WriteString(util.NTC.Render(message))
		}
		sb.WriteString("\n")

		message := fmt.Sprintf("[i] Label: %q (%dx%d)", result.Label, result.Width, result.Height)
		sb.WriteString(util.SUB.Render(message))
		sb.WriteString("\n")
	} else {
		sb.WriteString(util.HDR.Render("[!] Labeling completed with issues..."))
		sb.WriteString("\n")
	}

	if result.Verification != nil && !result.Verification.Success {
		sb.WriteString(FormatVerificationResult(result.Verification))
	}

	return sb.String()
}
