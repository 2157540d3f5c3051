package scanner

import (
	"context"

	"github.com/Veraticus/can-i-eat-this/internal/ocr"
)

// TextExtractor is the slice of the OCR engine the scanner consumes:
// one image in, recognized text out. ocr.Engine satisfies it, and
// tests swap in scripted fakes.
type TextExtractor interface {
	Name() string
	Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error)
}
