package model

// Category identifies one of the dietary flags a scan reports on.
type Category string

const (
	// CategoryGlutenFree covers gluten grains and their derivatives.
	CategoryGlutenFree Category = "gluten_free"
	// CategoryVegan covers every animal-derived ingredient.
	CategoryVegan Category = "vegan"
	// CategoryVegetarian covers meat, fish, and slaughter byproducts.
	CategoryVegetarian Category = "vegetarian"
)

// AllCategories returns every category in report order.
func AllCategories() []Category {
	return []Category{CategoryGlutenFree, CategoryVegan, CategoryVegetarian}
}

// ParseCategory resolves user input (flag values, pack files) to a
// Category, accepting a few common spellings.
func ParseCategory(s string) (Category, bool) {
	switch normalizeCategoryName(s) {
	case "gluten_free", "glutenfree", "gluten":
		return CategoryGlutenFree, true
	case "vegan":
		return CategoryVegan, true
	case "vegetarian", "veggie":
		return CategoryVegetarian, true
	default:
		return "", false
	}
}

func normalizeCategoryName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '-' || r == ' ':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// String returns the wire name of the category.
func (c Category) String() string {
	return string(c)
}

// DisplayName returns the label used in terminal and markdown reports.
func (c Category) DisplayName() string {
	switch c {
	case CategoryGlutenFree:
		return "Gluten-free"
	case CategoryVegan:
		return "Vegan"
	case CategoryVegetarian:
		return "Vegetarian"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGlutenFree, CategoryVegan, CategoryVegetarian:
		return true
	default:
		return false
	}
}
