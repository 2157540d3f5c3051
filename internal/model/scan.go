package model

import "time"

// Image is the uniform product of every acquisition source: the encoded
// bytes to scan plus the path they came from. Camera captures point at
// the temporary file the capture command wrote.
type Image struct {
	Path string
	Data []byte
}

// OCRStats captures how the label text was extracted. Word confidence is
// an engine artifact kept for verbose output only; it never influences
// the verdict.
type OCRStats struct {
	Engine         string
	Language       string
	Duration       time.Duration
	WordCount      int
	MeanConfidence float64
}

// ScanRecord is the complete outcome of one scan session. Every scan
// builds its own record and hands it through the pipeline explicitly;
// nothing about a scan lives in package-level state.
type ScanRecord struct {
	ImagePath    string
	ScannedAt    time.Time
	Text         string
	Verdict      Verdict
	Evidence     []Evidence
	OCR          OCRStats
	Preprocessed bool
	Err          string
}

// Failed reports whether the scan aborted before producing a verdict.
func (r *ScanRecord) Failed() bool {
	return r.Err != ""
}

// EvidenceFor returns the evidence entry that cleared the given
// category's flag, if any.
func (r *ScanRecord) EvidenceFor(c Category) (Evidence, bool) {
	for _, ev := range r.Evidence {
		if ev.Category == c {
			return ev, true
		}
	}
	return Evidence{}, false
}
