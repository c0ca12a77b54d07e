package recommend

import (
	"sort"

	"github.com/hydropure/water-assistant/models"
	"github.com/hydropure/water-assistant/nlu"
)

// SortOrder is the total order applied to a filter result. There is no
// relevance score: price (or name) is the sole sort key with the original
// catalog row order as stable tie-break.
type SortOrder int

const (
	SortPriceAsc SortOrder = iota
	SortPriceDesc
	SortByName
)

// OrderFor derives the sort order from the turn's keywords: "expensive" or
// "premium" language sorts price descending, "cheap"/"affordable" ascending,
// "popular"/"best" alphabetically by name. Default is price ascending.
func OrderFor(keywords []string) SortOrder {
	for _, kw := range []string{"expensive", "premium", "costly"} {
		if nlu.HasKeyword(keywords, kw) {
			return SortPriceDesc
		}
	}
	for _, kw := range []string{"cheap", "cheapest", "affordable"} {
		if nlu.HasKeyword(keywords, kw) {
			return SortPriceAsc
		}
	}
	for _, kw := range []string{"popular", "best", "top"} {
		if nlu.HasKeyword(keywords, kw) {
			return SortByName
		}
	}

	return SortPriceAsc
}

// Sort orders products without mutating the input slice. Rows without a
// valid price always sort last in the price orders ("price on request" is
// never cheaper or dearer than a real price).
func Sort(products []models.Product, order SortOrder) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]

		switch order {
		case SortByName:
			return a.Name < b.Name
		case SortPriceDesc:
			if (a.RegularPrice > 0) != (b.RegularPrice > 0) {
				return a.RegularPrice > 0
			}
			return a.RegularPrice > b.RegularPrice
		default:
			if (a.RegularPrice > 0) != (b.RegularPrice > 0) {
				return a.RegularPrice > 0
			}
			return a.RegularPrice < b.RegularPrice
		}
	})

	return sorted
}
