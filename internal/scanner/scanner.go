// Package scanner runs the scan pipeline: acquire an image, straighten
// and enhance it, extract the label text, and classify the text into
// the three dietary flags. Each scan builds one ScanRecord and hands
// it back; nothing about a scan lives in shared state.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/can-i-eat-this/internal/classify"
	"github.com/Veraticus/can-i-eat-this/internal/model"
	"github.com/Veraticus/can-i-eat-this/internal/ocr"
	"github.com/Veraticus/can-i-eat-this/internal/source"
	"github.com/Veraticus/can-i-eat-this/internal/vision"
)

// Options tune text extraction for one scanner.
type Options struct {
	// Languages lists tessdata language hints, best match first.
	Languages []string
	// PSM overrides the Tesseract page segmentation mode; zero keeps
	// the engine default.
	PSM int
	// DPI declares the capture resolution when the image metadata has
	// none; zero means unknown.
	DPI int
	// Preprocess configures the enhancement pipeline.
	Preprocess vision.Options
}

// DefaultOptions returns the scanner configuration used when nothing
// is overridden.
func DefaultOptions() Options {
	return Options{
		Languages:  []string{"eng"},
		Preprocess: vision.DefaultOptions(),
	}
}

// Scanner owns one scan pipeline. It is safe for concurrent use as
// long as the injected engine is.
type Scanner struct {
	engine     TextExtractor
	classifier *classify.Classifier
	opts       Options
}

// New creates a scanner with the given dependencies.
func New(engine TextExtractor, classifier *classify.Classifier, opts Options) *Scanner {
	if len(opts.Languages) == 0 {
		opts.Languages = []string{"eng"}
	}
	return &Scanner{engine: engine, classifier: classifier, opts: opts}
}

// Scan runs the full pipeline for one image. Acquisition or OCR
// failure is terminal for the attempt; empty OCR text is not a
// failure and classifies to an all-clear verdict.
func (s *Scanner) Scan(ctx context.Context, src source.Source) (*model.ScanRecord, error) {
	record := &model.ScanRecord{ScannedAt: time.Now()}

	img, err := src.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire image from %s: %w", src.Name(), err)
	}
	record.ImagePath = img.Path
	record.Preprocessed = s.opts.Preprocess.Enabled

	payload, err := s.prepare(img)
	if err != nil {
		return nil, err
	}

	in := ocr.Input{
		ID:        img.Path,
		Image:     payload,
		Format:    ocr.ImageFormatPNG,
		Languages: s.opts.Languages,
		DPI:       s.opts.DPI,
		PSM:       s.opts.PSM,
	}

	start := time.Now()
	result, err := s.engine.Recognize(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("ocr failed for %s: %w", img.Path, err)
	}

	record.Text = result.PlainText
	record.OCR = model.OCRStats{
		Engine:         s.engine.Name(),
		Language:       strings.Join(s.opts.Languages, "+"),
		Duration:       time.Since(start),
		WordCount:      result.WordCount(),
		MeanConfidence: result.MeanConfidence,
	}

	record.Verdict, record.Evidence = s.classifier.ClassifyWithEvidence(record.Text)

	slog.Debug("scan complete",
		"image", img.Path,
		"words", record.OCR.WordCount,
		"duration", record.OCR.Duration,
		"all_clear", record.Verdict.AllClear())
	return record, nil
}

// ScanText classifies raw text with no acquisition stage. It never
// fails; the classifier is total over strings.
func (s *Scanner) ScanText(text string) *model.ScanRecord {
	verdict, evidence := s.classifier.ClassifyWithEvidence(text)
	return &model.ScanRecord{
		ScannedAt: time.Now(),
		Text:      text,
		Verdict:   verdict,
		Evidence:  evidence,
	}
}

// prepare decodes the photo, brings it upright, and runs the
// enhancement pipeline, returning the engine payload as PNG bytes.
func (s *Scanner) prepare(img model.Image) ([]byte, error) {
	decoded, format, err := vision.Decode(img.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", img.Path, err)
	}

	orientation := vision.Orientation(img.Data)
	upright := vision.ApplyOrientation(decoded, orientation)

	if meta := vision.ExtractMetadata(img.Data); !meta.IsZero() {
		slog.Debug("image metadata",
			"image", img.Path,
			"make", meta.Make,
			"model", meta.Model,
			"taken_at", meta.TakenAt)
	}
	slog.Debug("prepared image",
		"image", img.Path,
		"format", format,
		"orientation", orientation,
		"preprocess", s.opts.Preprocess.Enabled)

	return vision.EncodePNG(vision.Enhance(upright, s.opts.Preprocess))
}
