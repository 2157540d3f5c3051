//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine on top of the gosseract client. A
// fresh client is created per call; clients are cheap next to the
// recognition itself and this keeps the engine safe for concurrent use.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

var _ Engine = (*TesseractEngine)(nil)

// NewTesseract constructs a Tesseract-backed engine.
func NewTesseract() *TesseractEngine {
	return &TesseractEngine{clientFactory: gosseract.NewClient}
}

// Name identifies the engine in scan records.
func (e *TesseractEngine) Name() string { return "tesseract" }

// Available reports whether a usable Tesseract install is linked in.
func Available() bool { return true }

// Version returns the linked Tesseract version string.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// Recognize performs OCR on a single image. The context is honored
// between setup steps; the recognition call itself is a blocking cgo
// call that cannot be interrupted.
func (e *TesseractEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(in.Image) == 0 {
		return Result{}, fmt.Errorf("empty image payload")
	}

	client := e.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(in.Image); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := client.SetLanguage(in.Languages...); err != nil {
			return Result{}, fmt.Errorf("failed to set languages: %w", err)
		}
	}
	if in.DPI > 0 {
		if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return Result{}, fmt.Errorf("failed to set dpi: %w", err)
		}
	}
	if in.PSM > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(in.PSM)); err != nil {
			return Result{}, fmt.Errorf("failed to set page segmentation mode: %w", err)
		}
	}
	for k, v := range in.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return Result{}, fmt.Errorf("failed to set variable %s: %w", k, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("failed to recognize text: %w", err)
	}

	words, mean := extractWords(client)
	return Result{
		InputID:        in.ID,
		PlainText:      strings.TrimSpace(text),
		Words:          words,
		MeanConfidence: mean,
	}, nil
}

// extractWords pulls word-level boxes out of the client after Text has
// run. Box extraction failing is not fatal; the plain text already
// carries everything classification needs.
func extractWords(client *gosseract.Client) ([]Word, float64) {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil, 0
	}

	words := make([]Word, 0, len(boxes))
	var sum float64
	for _, b := range boxes {
		conf := b.Confidence / 100.0
		sum += conf
		words = append(words, Word{
			Text:       b.Word,
			Confidence: conf,
			Bounds:     b.Box,
		})
	}
	return words, sum / float64(len(words))
}
