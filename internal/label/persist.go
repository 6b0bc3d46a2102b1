// UMBRA ⸻ internal/label/persist.go
// copy and temp-and-rename persistence for labeled bitmaps

package label

import (
	"fmt"
	"image"
	"os"

	"sombra/internal/formats"
	"sombra/internal/util"
)

// suffix inserted before the extension of copy-mode outputs
const LabeledSuffix = "_labeled"

// writes the bitmap to a sibling of src; an existing output of the same name
// is replaced unless collision avoidance is on, and a partial output from a
// failed encode is left for the caller to surface
func saveCopy(img image.Image, src string, encode formats.EncodeFunc, avoidCollisions bool) (string, error) {
	dst := util.WithSuffix(src, LabeledSuffix)

	if avoidCollisions {
		for n := 2; pathExists(dst); n++ {
			dst = util.WithSuffix(src, fmt.Sprintf("%s_%d", LabeledSuffix, n))
		}
	}

	if err := encodeTo(dst, img, encode); err != nil {
		return "", err
	}

	return dst, nil
}

// writes the bitmap to a temporary sibling and renames it over src; the
// rename is the commit point, the temp is removed on every failure, and src
// survives untouched unless the rename lands
func saveOverwrite(img image.Image, src string, encode formats.EncodeFunc) (string, error) {
	tmp := util.TempSibling(src)

	if err := encodeTo(tmp, img, encode); err != nil {
		_ = util.RemoveFile(tmp)
		return "", err
	}

	if err := util.ReplaceFile(tmp, src); err != nil {
		_ = util.RemoveFile(tmp)
		return "", err
	}

	return src, nil
}

func encodeTo(path string, img image.Image, encode formats.EncodeFunc) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode failed: %w", err)
	}

	// flush before any rename commits this file
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return file.Close()
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
