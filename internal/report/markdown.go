package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// MarkdownWriter outputs scan reports as GitHub-flavored markdown, for
// saving alongside the photos or sharing with whoever does the cooking.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs one record as a standalone markdown document.
func (w *MarkdownWriter) Write(record *model.ScanRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md)
	w.writeRecord(md, record)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs all records as one document with an overview table
// followed by a section per image.
func (w *MarkdownWriter) WriteBatch(records []*model.ScanRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md)
	w.writeOverview(md, records)
	for _, record := range records {
		w.writeRecord(md, record)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown) {
	md.H1("Food Label Scan Report")
	md.PlainText("")
}

// writeOverview writes the batch summary: counts plus one verdict row
// per image.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, records []*model.ScanRecord) {
	md.H2("Overview")
	md.PlainText("")

	var allClear, flagged, failed int
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		switch {
		case record.Failed():
			failed++
		case record.Verdict.AllClear():
			allClear++
		default:
			flagged++
		}
		rows = append(rows, overviewRow(record))
	}

	md.Table(markdown.TableSet{
		Header: []string{"Images", "All clear", "Flagged", "Failed"},
		Rows: [][]string{{
			strconv.Itoa(len(records)),
			strconv.Itoa(allClear),
			strconv.Itoa(flagged),
			strconv.Itoa(failed),
		}},
	})
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Image", "Gluten-free", "Vegan", "Vegetarian", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case failed > 0:
		md.Cautionf("%d image(s) could not be scanned; their verdicts are missing, not clear.", failed)
	case flagged > 0:
		md.Warningf("%d image(s) matched disqualifying ingredients.", flagged)
	default:
		md.Tip("Every label came back clear.")
	}
	md.PlainText("")
}

func overviewRow(record *model.ScanRecord) []string {
	name := recordName(record)
	if record.Failed() {
		return []string{name, "-", "-", "-", "❌ failed"}
	}
	return []string{
		name,
		verdictGlyph(record.Verdict.GlutenFree),
		verdictGlyph(record.Verdict.Vegan),
		verdictGlyph(record.Verdict.Vegetarian),
		"scanned",
	}
}

// writeRecord writes the detail section for one scan.
func (w *MarkdownWriter) writeRecord(md *markdown.Markdown, record *model.ScanRecord) {
	md.H2(recordName(record))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   propertyRows(record),
	})
	md.PlainText("")

	if record.Failed() {
		md.Cautionf("Scan failed: %s", record.Err)
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, 3)
	for _, c := range model.AllCategories() {
		matched := "-"
		if ev, found := record.EvidenceFor(c); found {
			matched = "`" + ev.Keyword + "`"
		}
		rows = append(rows, []string{c.DisplayName(), verdictGlyph(record.Verdict.Flag(c)), matched})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Verdict", "Matched"},
		Rows:   rows,
	})
	md.PlainText("")

	if record.Verdict.AllClear() {
		md.Tip("No disqualifying ingredients found.")
	} else {
		md.Warningf("Flagged: %s.", strings.Join(flaggedNames(record), ", "))
	}
	md.PlainText("")

	if len(record.Evidence) > 0 {
		items := make([]string, 0, len(record.Evidence))
		for _, ev := range record.Evidence {
			item := fmt.Sprintf("**%s** matched `%s`", ev.Category.DisplayName(), ev.Keyword)
			if ev.Excerpt != "" {
				item += fmt.Sprintf(" in %q", ev.Excerpt)
			}
			items = append(items, item)
		}
		md.BulletList(items...)
		md.PlainText("")
	}
}

func propertyRows(record *model.ScanRecord) [][]string {
	rows := [][]string{}
	if record.ImagePath != "" {
		rows = append(rows, []string{"Image", "`" + record.ImagePath + "`"})
	}
	rows = append(rows, []string{"Scanned", record.ScannedAt.Format("2006-01-02 15:04:05 MST")})
	if record.OCR.Engine != "" {
		rows = append(rows,
			[]string{"Engine", record.OCR.Engine},
			[]string{"Words", strconv.Itoa(record.OCR.WordCount)},
		)
	}
	if record.Failed() {
		rows = append(rows, []string{"Status", "❌ failed"})
	} else {
		rows = append(rows, []string{"Status", "✅ scanned"})
	}
	return rows
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [can-i-eat-this](https://github.com/Veraticus/can-i-eat-this)*")
}

func recordName(record *model.ScanRecord) string {
	if record.ImagePath == "" {
		return "Label text"
	}
	return filepath.Base(record.ImagePath)
}

func verdictGlyph(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func flaggedNames(record *model.ScanRecord) []string {
	var names []string
	for _, c := range model.AllCategories() {
		if !record.Verdict.Flag(c) {
			names = append(names, c.DisplayName())
		}
	}
	return names
}
