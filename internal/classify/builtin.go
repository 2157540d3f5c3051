package classify

import "github.com/Veraticus/can-i-eat-this/internal/model"

// Builtin ingredient lists. Each term lives in exactly one base list; the
// per-category sets are composed from unions below, so a term like
// gelatin reaches both the vegan and the vegetarian set from a single
// entry here.

// glutenGrains lists gluten-bearing grains and their telltale
// derivatives.
func glutenGrains() []string {
	return []string{
		"wheat",
		"barley",
		"rye",
		"spelt",
		"malt", // barley-derived
		"semolina",
		"triticale",
	}
}

// animalDerived lists non-slaughter animal ingredients: off-limits for
// vegans, acceptable for vegetarians.
func animalDerived() []string {
	return []string{
		"milk",
		"cheese",
		"butter",
		"egg",
		"honey",
		"whey",
		"casein",
		"lactose",
		"albumin",
		"carmine", // insect-derived colorant
	}
}

// slaughterByproducts lists ingredients that require killing the animal
// without being meat themselves. They disqualify both vegan and
// vegetarian.
func slaughterByproducts() []string {
	return []string{
		"gelatin",
	}
}

// meatAndFish lists meats, fish, and broths made from them.
func meatAndFish() []string {
	return []string{
		"chicken",
		"beef",
		"pork",
		"lard",
		"fish",
		"anchovy",
		"shrimp",
		"meat",
		"bacon",
		"ham",
	}
}

// DefaultLexicon returns the builtin keyword tables, with the composed
// category sets derived from the base lists.
func DefaultLexicon() model.Lexicon {
	return model.NewLexicon(
		model.KeywordSet{
			Name:     "gluten grains",
			Category: model.CategoryGlutenFree,
			Keywords: glutenGrains(),
		},
		model.KeywordSet{
			Name:     "animal products",
			Category: model.CategoryVegan,
			Keywords: union(animalDerived(), slaughterByproducts(), meatAndFish()),
		},
		model.KeywordSet{
			Name:     "meat and slaughter byproducts",
			Category: model.CategoryVegetarian,
			Keywords: union(meatAndFish(), slaughterByproducts()),
		},
	)
}

// union concatenates the given lists, dropping duplicates while keeping
// first-seen order.
func union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, term := range list {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}
