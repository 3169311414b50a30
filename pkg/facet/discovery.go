package facet

import (
	"github.com/matst80/slask-menu/pkg/types"
)

// AvailableCategories lists the distinct categories in first seen order. Items
// without a category are reported as types.UncategorizedLabel.
func AvailableCategories(items []types.MenuItem) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for i := range items {
		clean := items[i].Sanitized()
		name := clean.CategoryOrDefault()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

// PriceRangeOf returns the lowest and highest price. An empty list gives {0, 0}.
func PriceRangeOf(items []types.MenuItem) types.PriceRange {
	if len(items) == 0 {
		return types.PriceRange{Min: 0, Max: 0}
	}
	first := items[0].Sanitized()
	ret := types.PriceRange{Min: first.Price, Max: first.Price}
	for i := 1; i < len(items); i++ {
		price := items[i].Sanitized().Price
		ret.Min = min(ret.Min, price)
		ret.Max = max(ret.Max, price)
	}
	return ret
}

// CategoryCounts counts items per category, categories in first seen order.
func CategoryCounts(items []types.MenuItem) []types.CategoryCount {
	index := make(map[string]int)
	result := make([]types.CategoryCount, 0)
	for i := range items {
		clean := items[i].Sanitized()
		name := clean.CategoryOrDefault()
		if pos, ok := index[name]; ok {
			result[pos].Count++
			continue
		}
		index[name] = len(result)
		result = append(result, types.CategoryCount{Name: name, Count: 1})
	}
	return result
}

func AvailabilityCounts(items []types.MenuItem) types.AvailabilityCount {
	ret := types.AvailabilityCount{}
	for i := range items {
		if items[i].IsOutOfStock() {
			ret.OutOfStock++
		} else {
			ret.InStock++
		}
	}
	return ret
}

// Metadata collects everything a filter surface needs to render its options.
func Metadata(items []types.MenuItem) types.FilterMetadata {
	return types.FilterMetadata{
		Categories:   CategoryCounts(items),
		Availability: AvailabilityCounts(items),
		PriceRange:   PriceRangeOf(items),
		Total:        len(items),
	}
}
