// UMBRA ⸻ internal/formats/formats.go
// image codec registry and encoder selection

package formats

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"slices"
	"strings"

	_ "image/gif"  // first-frame decode support
	_ "image/jpeg" // decode support
)

// mime types of the registered codecs
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeGIF  = "image/gif"
)

// writes an image into w
type EncodeFunc func(w io.Writer, m image.Image) error

// a registered codec; Encode is nil for decode-only entries
type Codec struct {
	MimeType   string
	Extensions []string
	Encode     EncodeFunc
}

// png is the only format written back out
var codecs = []Codec{
	{MimeType: MimePNG, Extensions: []string{"png"}, Encode: png.Encode},
	{MimeType: MimeJPEG, Extensions: []string{"jpg", "jpeg"}},
	{MimeType: MimeGIF, Extensions: []string{"gif"}},
}

// walks the registry for an encoder declared for the mime type
func GetEncoder(mimeType string) (EncodeFunc, error) {
	for _, codec := range codecs {
		if codec.MimeType == mimeType && codec.Encode != nil {
			return codec.Encode, nil
		}
	}
	return nil, fmt.Errorf("no encoder registered for %s", mimeType)
}

// mime type declared for a file extension
func GetMimeType(extension string) (string, error) {
	extension = strings.ToLower(strings.TrimPrefix(extension, "."))

	for _, codec := range codecs {
		if slices.Contains(codec.Extensions, extension) {
			return codec.MimeType, nil
		}
	}

	return "", fmt.Errorf("unsupported extension: %s", extension)
}

// list of all supported file extensions
func SupportedFormats() []string {
	allFormats := []string{}
	for _, codec := range codecs {
		allFormats = append(allFormats, codec.Extensions...)
	}
	return allFormats
}

// checks if a file extension is supported
func IsSupported(extension string) bool {
	extension = strings.ToLower(strings.TrimPrefix(extension, "."))
	return slices.Contains(SupportedFormats(), extension)
}

// decodes an image file; animated inputs are reduced to their first frame
func DecodeFile(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	return img, format, nil
}
