// UMBRA ⸻ internal/formats/detect.go
// file type detection system

package formats

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FileType struct {
	Extension string // "png", "jpg", etc
	MimeType  string // "image/png", etc
}

func DetectFile(path string) (FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	// 1st magic numbers
	ft, err := detectByMagicNumbers(path)
	if err == nil && ft.MimeType != "" {
		return ft, nil
	}

	// fallback to extension
	if mime, err := GetMimeType(ext); err == nil {
		return FileType{Extension: ext, MimeType: mime}, nil
	}

	return FileType{}, fmt.Errorf("unknown file type for %s", path)
}

// examines file headers to determine type
func detectByMagicNumbers(path string) (FileType, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileType{}, err
	}
	defer file.Close()

	// 12 bytes is enough for every signature checked below
	buffer := make([]byte, 12)
	_, err = file.Read(buffer)
	if err != nil && err != io.EOF {
		return FileType{}, err
	}

	// JPEG: FF D8 FF
	if bytes.HasPrefix(buffer, []byte{0xFF, 0xD8, 0xFF}) {
		return FileType{Extension: "jpg", MimeType: MimeJPEG}, nil
	}

	// PNG: 89 50 4E 47 0D 0A 1A 0A
	if bytes.HasPrefix(buffer, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}) {
		return FileType{Extension: "png", MimeType: MimePNG}, nil
	}

	// GIF: 47 49 46 38 (GIF8)
	if bytes.HasPrefix(buffer, []byte{0x47, 0x49, 0x46, 0x38}) {
		return FileType{Extension: "gif", MimeType: MimeGIF}, nil
	}

	return FileType{}, nil
}
