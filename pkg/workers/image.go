package workers

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/grovetools/praise/errors"
	_ "golang.org/x/image/webp"
)

// PlaceholderURL is shown for workers whose image file does not exist.
const PlaceholderURL = "https://via.placeholder.com/400x300?text=Worker"

// EncodePNG decodes the image at path (png, jpeg, gif or webp) and writes it
// to w as PNG.
func EncodePNG(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ImageMissing(path)
		}
		return errors.ImageDecode(path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return errors.ImageDecode(path, err)
	}

	if err := png.Encode(w, img); err != nil {
		return errors.ImageDecode(path, err)
	}
	return nil
}

// DataURL returns the image at path as a data:image/png;base64 URL.
func DataURL(path string) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(path, &buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ImageURL returns the data URL for w, or PlaceholderURL when the file is
// missing or unreadable.
func ImageURL(w Worker) string {
	if w.Placeholder {
		return PlaceholderURL
	}
	url, err := DataURL(w.Path)
	if err != nil {
		return PlaceholderURL
	}
	return url
}
