// UMBRA ⸻ internal/label/persist_test.go
// persistence failure path tests

package label

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"sombra/internal/formats"
	"sombra/internal/util"
)

func pngEncoder(t *testing.T) formats.EncodeFunc {
	t.Helper()

	encode, err := formats.GetEncoder(formats.MimePNG)
	if err != nil {
		t.Fatalf("GetEncoder returned error: %v", err)
	}
	return encode
}

func tempLeftovers(t *testing.T, dir string) []string {
	t.Helper()

	leftovers, err := filepath.Glob(filepath.Join(dir, "*"+util.TempMarker+"*"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	return leftovers
}

func TestSaveCopyAvoidsCollisionsWhenAsked(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")

	for _, name := range []string{"photo.png", "photo_labeled.png", "photo_labeled_2.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("taken"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	dst, err := saveCopy(img, src, pngEncoder(t), true)
	if err != nil {
		t.Fatalf("saveCopy returned error: %v", err)
	}

	want := filepath.Join(dir, "photo_labeled_3.png")
	if dst != want {
		t.Fatalf("saveCopy chose %q, want %q", dst, want)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestSaveCopyReplacesExistingOutputByDefault(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	existing := filepath.Join(dir, "photo_labeled.png")

	if err := os.WriteFile(existing, []byte("stale output"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	dst, err := saveCopy(img, src, pngEncoder(t), false)
	if err != nil {
		t.Fatalf("saveCopy returned error: %v", err)
	}
	if dst != existing {
		t.Fatalf("saveCopy chose %q, want %q", dst, existing)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()
	if _, _, err := image.DecodeConfig(f); err != nil {
		t.Fatalf("replaced output does not decode: %v", err)
	}
}

func TestSaveCopyLeavesPartialOnEncodeFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")

	failing := formats.EncodeFunc(func(w io.Writer, m image.Image) error {
		return fmt.Errorf("encoder gave up")
	})

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := saveCopy(img, src, failing, false); err == nil {
		t.Fatalf("expected encode failure to surface")
	}

	// the partial output stays for the caller to report
	if _, err := os.Stat(filepath.Join(dir, "photo_labeled.png")); err != nil {
		t.Fatalf("partial output should remain: %v", err)
	}
}

func TestSaveOverwriteRemovesTempOnEncodeFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")

	if err := os.WriteFile(src, []byte("original"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	failing := formats.EncodeFunc(func(w io.Writer, m image.Image) error {
		return fmt.Errorf("encoder gave up")
	})

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := saveOverwrite(img, src, failing); err == nil {
		t.Fatalf("expected encode failure to surface")
	}

	if leftovers := tempLeftovers(t, dir); len(leftovers) != 0 {
		t.Fatalf("temp siblings left behind: %v", leftovers)
	}

	content, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("source unreadable after failure: %v", err)
	}
	if string(content) != "original" {
		t.Fatalf("source content changed: %q", content)
	}
}

func TestSaveOverwriteRemovesTempOnRenameFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "occupied")

	// renaming a file over an existing directory fails
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := saveOverwrite(img, target, pngEncoder(t)); err == nil {
		t.Fatalf("expected rename onto a directory to fail")
	}

	if leftovers := tempLeftovers(t, dir); len(leftovers) != 0 {
		t.Fatalf("temp siblings left behind: %v", leftovers)
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Fatalf("target directory disturbed: %v", err)
	}
}

func TestSaveOverwriteReplacesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")

	if err := os.WriteFile(src, []byte("stale"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	saved, err := saveOverwrite(img, src, pngEncoder(t))
	if err != nil {
		t.Fatalf("saveOverwrite returned error: %v", err)
	}
	if saved != src {
		t.Fatalf("saveOverwrite returned %q, want the source path", saved)
	}

	if leftovers := tempLeftovers(t, dir); len(leftovers) != 0 {
		t.Fatalf("temp siblings left behind: %v", leftovers)
	}

	f, err := os.Open(src)
	if err != nil {
		t.Fatalf("failed to open replaced source: %v", err)
	}
	defer f.Close()
	if _, _, err := image.DecodeConfig(f); err != nil {
		t.Fatalf("replaced source does not decode: %v", err)
	}
}
