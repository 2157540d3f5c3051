package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/can-i-eat-this/internal/cli"
	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// timeRounding trims OCR durations to a readable precision.
const timeRounding = time.Millisecond

// TerminalWriter renders scan records as styled verdict cards for
// humans at a terminal.
type TerminalWriter struct {
	baseWriter

	showEvidence bool
	showText     bool
}

// TerminalWriterOption configures a TerminalWriter.
type TerminalWriterOption func(*TerminalWriter)

// WithEvidence adds a section listing each matched keyword with the
// label text it was found in.
func WithEvidence() TerminalWriterOption {
	return func(w *TerminalWriter) {
		w.showEvidence = true
	}
}

// WithText appends the full extracted text to each card.
func WithText() TerminalWriterOption {
	return func(w *TerminalWriter) {
		w.showText = true
	}
}

// NewTerminalWriter creates a TerminalWriter that outputs to the given
// writer.
func NewTerminalWriter(output io.Writer, opts ...TerminalWriterOption) *TerminalWriter {
	w := &TerminalWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders one record as a verdict card.
func (w *TerminalWriter) Write(record *model.ScanRecord) (int, error) {
	return fmt.Fprintln(w.output, w.renderCard(record))
}

// WriteBatch renders every record as a card followed by a summary line.
func (w *TerminalWriter) WriteBatch(records []*model.ScanRecord) (int, error) {
	var total int
	for _, record := range records {
		n, err := w.Write(record)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := fmt.Fprintln(w.output, cli.FormatInfo(batchSummary(records)))
	total += n
	return total, err
}

func (w *TerminalWriter) renderCard(record *model.ScanRecord) string {
	title := cardTitle(record)

	if record.Failed() {
		content := strings.Join([]string{
			cli.FormatError("scan failed"),
			cli.StyleSubtle(record.Err),
		}, "\n")
		return cli.RenderBox(title, content)
	}

	var lines []string
	for _, c := range model.AllCategories() {
		ok := record.Verdict.Flag(c)
		line := cli.FlagGlyph(ok) + " " + c.DisplayName()
		if !ok {
			if ev, found := record.EvidenceFor(c); found {
				line += " " + cli.StyleSubtle("("+ev.Keyword+")")
			}
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	if record.Verdict.AllClear() {
		lines = append(lines, cli.FormatSuccess("No disqualifying ingredients found"))
	} else {
		lines = append(lines, cli.FormatWarning("Check the flagged categories before eating"))
	}

	if w.showEvidence && len(record.Evidence) > 0 {
		lines = append(lines, "", cli.StyleTitle("Evidence"))
		for _, ev := range record.Evidence {
			entry := fmt.Sprintf("%s matched %q", ev.Category.DisplayName(), ev.Keyword)
			if ev.Excerpt != "" {
				entry += " in " + cli.StyleSubtle(ev.Excerpt)
			}
			lines = append(lines, entry)
		}
	}

	if w.showText && record.Text != "" {
		lines = append(lines, "", cli.StyleTitle("Extracted text"), cli.StyleSubtle(record.Text))
	}

	if record.OCR.Engine != "" {
		stats := fmt.Sprintf("%s, %d words, %s", record.OCR.Engine, record.OCR.WordCount, record.OCR.Duration.Round(timeRounding))
		if record.OCR.MeanConfidence > 0 {
			stats += fmt.Sprintf(", %.0f%% confidence", record.OCR.MeanConfidence)
		}
		lines = append(lines, "", cli.StyleSubtle(stats))
	}

	return cli.RenderBox(title, strings.Join(lines, "\n"))
}

func cardTitle(record *model.ScanRecord) string {
	if record.ImagePath == "" {
		return cli.LabelIcon + " Label text"
	}
	return cli.LabelIcon + " " + filepath.Base(record.ImagePath)
}

func batchSummary(records []*model.ScanRecord) string {
	var allClear, flagged, failed int
	for _, record := range records {
		switch {
		case record.Failed():
			failed++
		case record.Verdict.AllClear():
			allClear++
		default:
			flagged++
		}
	}
	return fmt.Sprintf("%d scanned: %d all clear, %d flagged, %d failed",
		len(records), allClear, flagged, failed)
}
