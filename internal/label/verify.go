// UMBRA ⸻ internal/label/verify.go
// integrity verification for labeled outputs

package label

import (
	"fmt"
	"image"
	"os"
	"strings"

	"sombra/internal/util"
)

// results of an output verification
type VerificationResult struct {
	Success          bool
	Readable         bool
	SizeMatch        bool
	Width            int
	Height           int
	ValidationErrors []string
}

// checks that a labeled output decodes and kept the source dimensions
func VerifyOutput(path string, wantWidth, wantHeight int) (*VerificationResult, error) {
	result := &VerificationResult{
		ValidationErrors: []string{},
	}

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("output not found: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		result.ValidationErrors = append(result.ValidationErrors,
			"output does not decode as an image")
		return result, nil
	}

	result.Readable = true
	result.Width = cfg.Width
	result.Height = cfg.Height
	result.SizeMatch = cfg.Width == wantWidth && cfg.Height == wantHeight

	if !result.SizeMatch {
		result.ValidationErrors = append(result.ValidationErrors,
			fmt.Sprintf("output is %dx%d, expected %dx%d",
				cfg.Width, cfg.Height, wantWidth, wantHeight))
	}

	result.Success = result.Readable && result.SizeMatch

	return result, nil
}

// user-friendly report of the verification
func FormatVerificationResult(result *VerificationResult) string {
	var sb strings.Builder

	if result.Success {
		sb.WriteString(util.NTC.Render("✓ Output verified"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, msg := range result.ValidationErrors {
		sb.WriteString(util.LBL.Render("[!] " + msg))
		sb.WriteString("\n")
	}

	return sb.String()
}
