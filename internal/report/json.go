package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// Envelope is the machine-readable shape of one scan. The verdict is a
// pointer so failed scans serialize with no verdict at all instead of a
// misleading all-false one.
type Envelope struct {
	Image     string           `json:"image,omitempty"`
	ScannedAt time.Time        `json:"scanned_at"`
	Verdict   *model.Verdict   `json:"verdict,omitempty"`
	Evidence  []model.Evidence `json:"evidence,omitempty"`
	Text      string           `json:"text,omitempty"`
	OCR       *OCRInfo         `json:"ocr,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// OCRInfo is the JSON projection of the scan's extraction stats.
type OCRInfo struct {
	Engine         string  `json:"engine"`
	Language       string  `json:"language,omitempty"`
	DurationMS     int64   `json:"duration_ms"`
	Words          int     `json:"words"`
	MeanConfidence float64 `json:"mean_confidence"`
}

// BatchEnvelope wraps a batch of scans with summary counts so callers
// can act on the totals without walking the results.
type BatchEnvelope struct {
	Count    int         `json:"count"`
	AllClear int         `json:"all_clear"`
	Flagged  int         `json:"flagged"`
	Failed   int         `json:"failed"`
	Results  []*Envelope `json:"results"`
}

// NewEnvelope builds the JSON envelope for a record. The extracted text
// is included only when fullText is set; it can run to hundreds of words
// on dense labels.
func NewEnvelope(record *model.ScanRecord, fullText bool) *Envelope {
	env := &Envelope{
		Image:     record.ImagePath,
		ScannedAt: record.ScannedAt,
	}

	if record.Failed() {
		env.Error = record.Err
		return env
	}

	verdict := record.Verdict
	env.Verdict = &verdict
	env.Evidence = record.Evidence
	if fullText {
		env.Text = record.Text
	}
	if record.OCR.Engine != "" {
		env.OCR = &OCRInfo{
			Engine:         record.OCR.Engine,
			Language:       record.OCR.Language,
			DurationMS:     record.OCR.Duration.Milliseconds(),
			Words:          record.OCR.WordCount,
			MeanConfidence: record.OCR.MeanConfidence,
		}
	}

	return env
}

// NewBatchEnvelope builds the JSON envelope for a batch, tallying the
// summary counts as it goes.
func NewBatchEnvelope(records []*model.ScanRecord, fullText bool) *BatchEnvelope {
	batch := &BatchEnvelope{
		Count:   len(records),
		Results: make([]*Envelope, 0, len(records)),
	}

	for _, record := range records {
		batch.Results = append(batch.Results, NewEnvelope(record, fullText))
		switch {
		case record.Failed():
			batch.Failed++
		case record.Verdict.AllClear():
			batch.AllClear++
		default:
			batch.Flagged++
		}
	}

	return batch
}

// JSONWriter outputs scan records as JSON envelopes, one document per
// Write call.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
	fullText     bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed output with the given prefix and
// per-level indent string.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed output with two-space indents.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// WithFullText includes the complete extracted text in each envelope.
func WithFullText() JSONWriterOption {
	return func(w *JSONWriter) {
		w.fullText = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one record as a JSON envelope.
func (w *JSONWriter) Write(record *model.ScanRecord) (int, error) {
	return w.writeJSON(NewEnvelope(record, w.fullText))
}

// WriteBatch outputs the batch as one JSON document with summary counts.
func (w *JSONWriter) WriteBatch(records []*model.ScanRecord) (int, error) {
	return w.writeJSON(NewBatchEnvelope(records, w.fullText))
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline so piped output stays line-oriented.
	data = append(data, '\n')

	return w.output.Write(data)
}
