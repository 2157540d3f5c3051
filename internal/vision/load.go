// Package vision loads label photos and prepares them for OCR:
// orientation fixes from EXIF, then an enhancement pipeline tuned for
// printed ingredient text.
package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Register the decoders image.Decode can sniff.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Veraticus/can-i-eat-this/internal/common"
)

// Decode parses encoded image bytes, returning the decoded image and the
// sniffed format name (png, jpeg, gif, bmp, tiff, webp).
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", common.ErrNoImage
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrUnsupportedImage, err)
	}
	return img, format, nil
}

// EncodePNG renders an image to PNG bytes for the OCR engine. PNG keeps
// the enhanced glyph edges free of compression artifacts.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
