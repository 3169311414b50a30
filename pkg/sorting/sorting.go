package sorting

import (
	"slices"

	"github.com/matst80/slask-menu/pkg/types"
)

var sorters = NewSorters()

// NewSorters returns one sorter per sort option, in display order.
func NewSorters() []Sorter {
	return []Sorter{
		NewNewestSorter(),
		NewPopularitySorter(),
		NewPriceSorter(),
		NewPriceDescSorter(),
		NewNameSorter(),
		NewNameDescSorter(),
	}
}

func SorterFor(option types.SortOption) Sorter {
	if !option.Valid() {
		option = types.ParseSortOption(string(option))
	}
	for _, s := range sorters {
		if s.Name == option {
			return s
		}
	}
	return sorters[0]
}

// ComparatorFor maps a sort option to its comparator, unknown options sort newest first.
func ComparatorFor(option types.SortOption) Comparator {
	return SorterFor(option).Compare
}

// Sort orders items in place. The sort is stable, items with equal keys keep
// their relative input order.
func Sort(items []types.MenuItem, option types.SortOption) {
	compare := ComparatorFor(option)
	slices.SortStableFunc(items, func(a, b types.MenuItem) int {
		return compare(&a, &b)
	})
}

// Sorted returns a sorted copy and leaves items untouched.
func Sorted(items []types.MenuItem, option types.SortOption) []types.MenuItem {
	result := slices.Clone(items)
	Sort(result, option)
	return result
}
