// Package model defines the core domain types shared by the classifier,
// scanner, and report layers.
package model

// Verdict is the outcome of classifying one piece of label text: three
// independent dietary flags. Every flag starts true and is cleared when a
// disqualifying keyword is found, so empty or unreadable text yields an
// all-clear verdict.
type Verdict struct {
	GlutenFree bool `json:"gluten_free"`
	Vegan      bool `json:"vegan"`
	Vegetarian bool `json:"vegetarian"`
}

// NewVerdict returns a verdict with every flag set, the starting state
// before any keyword evidence has been applied.
func NewVerdict() Verdict {
	return Verdict{GlutenFree: true, Vegan: true, Vegetarian: true}
}

// Flag returns the flag for the given category. Unknown categories read
// as false.
func (v Verdict) Flag(c Category) bool {
	switch c {
	case CategoryGlutenFree:
		return v.GlutenFree
	case CategoryVegan:
		return v.Vegan
	case CategoryVegetarian:
		return v.Vegetarian
	default:
		return false
	}
}

// SetFlag sets the flag for the given category. Unknown categories are
// ignored.
func (v *Verdict) SetFlag(c Category, ok bool) {
	switch c {
	case CategoryGlutenFree:
		v.GlutenFree = ok
	case CategoryVegan:
		v.Vegan = ok
	case CategoryVegetarian:
		v.Vegetarian = ok
	}
}

// AllClear reports whether every flag survived classification.
func (v Verdict) AllClear() bool {
	return v.GlutenFree && v.Vegan && v.Vegetarian
}

// Evidence records the keyword that cleared a flag and the label text it
// was seen in. It is a match trace, not a confidence score: at most one
// entry per category, carrying the first keyword that hit.
type Evidence struct {
	Category Category `json:"category"`
	Keyword  string   `json:"keyword"`
	Excerpt  string   `json:"excerpt,omitempty"`
}
