// UMBRA ⸻ internal/label/verify_test.go
// output verification tests

package label

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerifyOutputAcceptsMatchingImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	writePNGFixture(t, path, 50, 40)

	result, err := VerifyOutput(path, 50, 40)
	if err != nil {
		t.Fatalf("VerifyOutput returned error: %v", err)
	}

	if !result.Success || !result.Readable || !result.SizeMatch {
		t.Fatalf("expected a clean verification: %+v", result)
	}
	if result.Width != 50 || result.Height != 40 {
		t.Fatalf("unexpected decoded dimensions: %dx%d", result.Width, result.Height)
	}
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("unexpected validation errors: %v", result.ValidationErrors)
	}
}

func TestVerifyOutputFlagsSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	writePNGFixture(t, path, 50, 40)

	result, err := VerifyOutput(path, 51, 40)
	if err != nil {
		t.Fatalf("VerifyOutput returned error: %v", err)
	}

	if result.Success || result.SizeMatch {
		t.Fatalf("expected the size mismatch to fail verification: %+v", result)
	}
	if !result.Readable {
		t.Fatalf("output should still be readable")
	}
	if len(result.ValidationErrors) != 1 {
		t.Fatalf("expected one validation error, got %v", result.ValidationErrors)
	}
}

func TestVerifyOutputFlagsUnreadableOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	result, err := VerifyOutput(path, 50, 40)
	if err != nil {
		t.Fatalf("VerifyOutput returned error: %v", err)
	}

	if result.Success || result.Readable {
		t.Fatalf("expected unreadable output to fail verification: %+v", result)
	}
	if len(result.ValidationErrors) != 1 {
		t.Fatalf("expected one validation error, got %v", result.ValidationErrors)
	}
}

func TestVerifyOutputMissingFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := VerifyOutput(filepath.Join(dir, "nope.png"), 50, 40); err == nil {
		t.Fatalf("expected an error for a missing output")
	}
}

func TestFormatVerificationResult(t *testing.T) {
	ok := &VerificationResult{Success: true, Readable: true, SizeMatch: true}
	if out := FormatVerificationResult(ok); !strings.Contains(out, "Output verified") {
		t.Errorf("success report missing confirmation: %q", out)
	}

	bad := &VerificationResult{
		ValidationErrors: []string{"output is 49x40, expected 50x40"},
	}
	if out := FormatVerificationResult(bad); !strings.Contains(out, "expected 50x40") {
		t.Errorf("failure report missing detail: %q", out)
	}
}
