package model

import (
	"fmt"
	"strings"
)

// KeywordSet is a named list of disqualifying terms for one category.
// Sets are fixed once the classifier is built; Normalize runs at
// construction time so matching never lowercases a keyword again.
type KeywordSet struct {
	Name     string
	Category Category
	Keywords []string
}

// Normalize lowercases and trims every keyword in place, dropping empties
// and duplicates while preserving first-seen order.
func (s *KeywordSet) Normalize() {
	seen := make(map[string]struct{}, len(s.Keywords))
	out := s.Keywords[:0]
	for _, kw := range s.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	s.Keywords = out
}

// Contains reports whether term is one of the set's keywords. The receiver
// must already be normalized.
func (s KeywordSet) Contains(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	for _, kw := range s.Keywords {
		if kw == term {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set.
func (s KeywordSet) Clone() KeywordSet {
	out := s
	out.Keywords = make([]string, len(s.Keywords))
	copy(out.Keywords, s.Keywords)
	return out
}

// Validate ensures the set can be used for matching.
func (s *KeywordSet) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("keyword set name is required")
	}
	if !s.Category.Valid() {
		return fmt.Errorf("keyword set %q: unknown category %q", s.Name, s.Category)
	}
	if len(s.Keywords) == 0 {
		return fmt.Errorf("keyword set %q: at least one keyword is required", s.Name)
	}
	return nil
}

// Lexicon is the complete keyword table the classifier matches against:
// one set per category, plus the provenance of any packs merged on top of
// the builtin terms.
type Lexicon struct {
	Sets    map[Category]KeywordSet
	Sources []string
}

// NewLexicon builds a lexicon from the given sets. Each set is normalized
// as it is added.
func NewLexicon(sets ...KeywordSet) Lexicon {
	lex := Lexicon{Sets: make(map[Category]KeywordSet, len(sets))}
	for _, set := range sets {
		set.Normalize()
		lex.Sets[set.Category] = set
	}
	return lex
}

// Clone returns a deep copy, so callers can layer pack files without
// touching the builtin tables.
func (l Lexicon) Clone() Lexicon {
	out := Lexicon{
		Sets:    make(map[Category]KeywordSet, len(l.Sets)),
		Sources: append([]string(nil), l.Sources...),
	}
	for c, set := range l.Sets {
		out.Sets[c] = set.Clone()
	}
	return out
}

// Merge folds one keyword set into the lexicon. With replace false the
// set's terms extend the category's existing ones; with replace true they
// supplant them. The merged set is normalized either way.
func (l *Lexicon) Merge(set KeywordSet, replace bool) {
	if l.Sets == nil {
		l.Sets = make(map[Category]KeywordSet)
	}
	set.Normalize()
	existing, ok := l.Sets[set.Category]
	if replace || !ok {
		l.Sets[set.Category] = set
		return
	}
	existing.Keywords = append(existing.Keywords, set.Keywords...)
	existing.Normalize()
	l.Sets[set.Category] = existing
}

// Validate ensures every category has a usable set.
func (l *Lexicon) Validate() error {
	for _, c := range AllCategories() {
		set, ok := l.Sets[c]
		if !ok {
			return fmt.Errorf("lexicon is missing a %s keyword set", c)
		}
		if err := set.Validate(); err != nil {
			return fmt.Errorf("lexicon: %w", err)
		}
	}
	return nil
}
