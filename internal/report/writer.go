// Package report renders scan records for people and machines:
// terminal verdict cards, JSON envelopes, and markdown documents. The
// writers are presentation only; they never change a verdict.
package report

import (
	"io"

	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// Writer outputs scan records in one format to one destination.
// Implementations report the number of bytes written so callers can
// account for multi-destination output.
type Writer interface {
	// Write outputs a single scan record.
	Write(record *model.ScanRecord) (int, error)

	// WriteBatch outputs a batch of records as one report, in order.
	WriteBatch(records []*model.ScanRecord) (int, error)
}

// MultiWriter fans records out to several Writers, for example a
// terminal card plus a JSON file. It is a separate type rather than
// io.MultiWriter because these writers take records, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to every given Writer.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the record to all configured writers, stopping on the
// first error. The returned count sums every destination.
func (m *MultiWriter) Write(record *model.ScanRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(record)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBatch outputs the batch to all configured writers, stopping on
// the first error.
func (m *MultiWriter) WriteBatch(records []*model.ScanRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter carries the output destination shared by the concrete
// writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
