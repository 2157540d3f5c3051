//go:build !cgo

package ocr

import (
	"context"
	"fmt"

	"github.com/Veraticus/can-i-eat-this/internal/common"
)

// TesseractEngine is a stub used when the binary is built without cgo.
// Every recognition attempt fails with ErrOCRUnavailable; text-only
// commands keep working.
type TesseractEngine struct{}

var _ Engine = (*TesseractEngine)(nil)

// NewTesseract constructs the stub engine.
func NewTesseract() *TesseractEngine { return &TesseractEngine{} }

// Name identifies the engine in scan records.
func (e *TesseractEngine) Name() string { return "tesseract" }

// Available reports whether a usable Tesseract install is linked in.
func Available() bool { return false }

// Version returns the linked Tesseract version string.
func Version() string { return "" }

// Recognize always fails: recognition needs the cgo build.
func (e *TesseractEngine) Recognize(_ context.Context, _ Input) (Result, error) {
	return Result{}, fmt.Errorf("%w: binary built without cgo", common.ErrOCRUnavailable)
}
