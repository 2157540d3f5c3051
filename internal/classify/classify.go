// Package classify implements the dietary classifier: fixed keyword sets
// matched against label text to produce three independent flags.
package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// Classifier matches label text against a fixed lexicon. It is immutable
// once built and safe for concurrent use.
type Classifier struct {
	sets []model.KeywordSet
}

// New builds a classifier from the given lexicon. The lexicon is cloned
// and normalized up front, so matching never lowercases a keyword again
// and later changes to the input do not leak in.
func New(lex model.Lexicon) (*Classifier, error) {
	lex = lex.Clone()
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	sets := make([]model.KeywordSet, 0, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		set := lex.Sets[c]
		set.Normalize()
		sets = append(sets, set)
	}

	return &Classifier{sets: sets}, nil
}

// Default returns a classifier over the builtin lexicon. The builtin
// tables are static and covered by tests, so construction cannot fail.
func Default() *Classifier {
	c, err := New(DefaultLexicon())
	if err != nil {
		panic(fmt.Sprintf("builtin lexicon invalid: %v", err))
	}
	return c
}

// Classify produces a verdict for one piece of label text. It is a pure
// function: the input is lowercased, then each category's flag is cleared
// when any of its keywords appears as a contiguous substring. Empty or
// unreadable text clears nothing and yields an all-true verdict.
//
// Matching is substring-based on purpose ("wheatgerm" trips "wheat"); the
// keyword tables are curated with that in mind.
func (c *Classifier) Classify(text string) model.Verdict {
	verdict := model.NewVerdict()
	lowered := strings.ToLower(text)

	for _, set := range c.sets {
		for _, kw := range set.Keywords {
			if strings.Contains(lowered, kw) {
				verdict.SetFlag(set.Category, false)
				break
			}
		}
	}

	return verdict
}

// ClassifyWithEvidence runs the same algorithm as Classify and also
// records, per cleared flag, the first keyword that hit along with a
// snippet of the surrounding text.
func (c *Classifier) ClassifyWithEvidence(text string) (model.Verdict, []model.Evidence) {
	verdict := model.NewVerdict()
	lowered := strings.ToLower(text)

	var evidence []model.Evidence
	for _, set := range c.sets {
		for _, kw := range set.Keywords {
			idx := strings.Index(lowered, kw)
			if idx < 0 {
				continue
			}
			verdict.SetFlag(set.Category, false)
			evidence = append(evidence, model.Evidence{
				Category: set.Category,
				Keyword:  kw,
				Excerpt:  excerpt(lowered, idx, len(kw)),
			})
			break
		}
	}

	return verdict, evidence
}

// Categories returns the keyword sets the classifier matches against, in
// report order. The returned sets are copies.
func (c *Classifier) Categories() []model.KeywordSet {
	out := make([]model.KeywordSet, 0, len(c.sets))
	for _, set := range c.sets {
		out = append(out, set.Clone())
	}
	return out
}

// Lookup reports which categories list the exact term as a keyword.
func (c *Classifier) Lookup(term string) []model.Category {
	var out []model.Category
	for _, set := range c.sets {
		if set.Contains(term) {
			out = append(out, set.Category)
		}
	}
	return out
}

// excerpt slices the matched keyword with a little surrounding context.
// It works on the lowered text so the indexes always line up.
func excerpt(lowered string, idx, length int) string {
	const pad = 16
	start := idx - pad
	if start < 0 {
		start = 0
	}
	end := idx + length + pad
	if end > len(lowered) {
		end = len(lowered)
	}
	// OCR text can carry multibyte runes; keep the cut points on rune
	// boundaries.
	for start > 0 && !utf8.RuneStart(lowered[start]) {
		start--
	}
	for end < len(lowered) && !utf8.RuneStart(lowered[end]) {
		end++
	}
	return strings.TrimSpace(lowered[start:end])
}
