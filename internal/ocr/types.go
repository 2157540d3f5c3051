// Package ocr defines the text-acquisition contract and its Tesseract
// implementation. The scanner depends only on the Engine interface, so
// anything that can turn an image into text can stand in.
package ocr

import (
	"context"
	"image"
	"strings"
)

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Input encapsulates a single image submitted for recognition.
type Input struct {
	// ID is an optional caller-provided identifier echoed back in the
	// corresponding Result.
	ID string
	// Image is the encoded payload in the format declared by Format.
	Image []byte
	// Format declares the image content type.
	Format ImageFormat
	// Languages lists tessdata language hints (e.g. "eng").
	Languages []string
	// DPI carries the effective dots-per-inch; zero means unknown.
	DPI int
	// PSM selects the Tesseract page segmentation mode; zero keeps the
	// engine default.
	PSM int
	// Variables passes engine-specific knobs through without hard-coding
	// them into the API surface.
	Variables map[string]string
}

// Word is a single recognized token with its confidence and position.
type Word struct {
	Text       string
	Confidence float64
	Bounds     image.Rectangle
}

// Result captures the recognition output for a single input image.
// Confidence values are engine artifacts for diagnostics; the verdict
// never depends on them.
type Result struct {
	InputID        string
	PlainText      string
	Words          []Word
	MeanConfidence float64
}

// WordCount returns the number of recognized tokens, falling back to a
// whitespace split of the plain text when the engine reported no boxes.
func (r Result) WordCount() int {
	if len(r.Words) > 0 {
		return len(r.Words)
	}
	return len(strings.Fields(r.PlainText))
}

// Engine is the OCR provider contract: one image in, one result out.
// Recognizing a blank image is not an error; it yields an empty
// PlainText, which downstream classification treats as no evidence.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}
