package filter

import (
	"github.com/matst80/slask-menu/pkg/search"
	"github.com/matst80/slask-menu/pkg/types"
)

// Predicate decides whether a single item passes one or more filter dimensions.
type Predicate func(item *types.MenuItem) bool

func All(predicates ...Predicate) Predicate {
	return func(item *types.MenuItem) bool {
		for _, p := range predicates {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

func pass(*types.MenuItem) bool {
	return true
}

// MatchQuery matches the query against name and description, ignoring case.
func MatchQuery(query string) Predicate {
	matcher := search.NewMatcher(query)
	if matcher.IsEmpty() {
		return pass
	}
	return func(item *types.MenuItem) bool {
		return matcher.Match(item.Name, item.Description)
	}
}

// MatchCategory passes items whose category is one of the given ones. The
// comparison is exact and case sensitive. No categories means no constraint.
func MatchCategory(categories ...string) Predicate {
	if len(categories) == 0 {
		return pass
	}
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return func(item *types.MenuItem) bool {
		_, ok := set[item.Category]
		return ok
	}
}

// MatchAvailability passes available items when showAvailable is set and out of
// stock items when showOutOfStock is set. With both flags off everything passes.
func MatchAvailability(showAvailable, showOutOfStock bool) Predicate {
	if showAvailable == showOutOfStock {
		return pass
	}
	return func(item *types.MenuItem) bool {
		if item.IsOutOfStock() {
			return showOutOfStock
		}
		return showAvailable
	}
}

// MatchPrice passes items priced within the inclusive range.
func MatchPrice(minPrice, maxPrice float64) Predicate {
	bounds := types.PriceRange{Min: minPrice, Max: maxPrice}
	return func(item *types.MenuItem) bool {
		return bounds.Contains(item.Price)
	}
}
