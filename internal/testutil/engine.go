// Package testutil provides shared fakes and fixture builders for tests:
// a scriptable OCR engine and synthetic label images.
package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/can-i-eat-this/internal/ocr"
)

// StubEngine is a scripted ocr.Engine: it returns canned text keyed by
// input ID (falling back to Text), can be primed to fail, and records
// every call it receives.
type StubEngine struct {
	// Text is returned when no entry for the input ID exists.
	Text string
	// TextByID maps input IDs to their canned recognition text.
	TextByID map[string]string
	// Err, when set, fails every Recognize call.
	Err error
	// Confidence overrides the reported mean confidence; zero means 0.93.
	Confidence float64

	mu    sync.Mutex
	calls []ocr.Input
}

var _ ocr.Engine = (*StubEngine)(nil)

// Name identifies the engine in scan records.
func (e *StubEngine) Name() string { return "stub" }

// Recognize returns the scripted result for the input.
func (e *StubEngine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	e.mu.Lock()
	e.calls = append(e.calls, in)
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}
	if e.Err != nil {
		return ocr.Result{}, e.Err
	}

	text := e.Text
	if t, ok := e.TextByID[in.ID]; ok {
		text = t
	}
	conf := e.Confidence
	if conf == 0 {
		conf = 0.93
	}
	return ocr.Result{InputID: in.ID, PlainText: text, MeanConfidence: conf}, nil
}

// Calls returns a copy of the inputs seen so far.
func (e *StubEngine) Calls() []ocr.Input {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ocr.Input(nil), e.calls...)
}
