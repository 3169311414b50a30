package sorting

import (
	"cmp"

	"github.com/matst80/slask-menu/pkg/search"
	"github.com/matst80/slask-menu/pkg/types"
)

// Comparator orders two items, negative when a goes first.
type Comparator func(a, b *types.MenuItem) int

type Sorter struct {
	Name    types.SortOption `json:"name"`
	Label   string           `json:"label"`
	Compare Comparator       `json:"-"`
}

func NewBaseSorter[T cmp.Ordered](name types.SortOption, label string, fn func(item *types.MenuItem) T, isReversed bool) Sorter {
	compare := func(a, b *types.MenuItem) int {
		return cmp.Compare(fn(a), fn(b))
	}
	if isReversed {
		compare = func(a, b *types.MenuItem) int {
			return cmp.Compare(fn(b), fn(a))
		}
	}
	return Sorter{
		Name:    name,
		Label:   label,
		Compare: compare,
	}
}

func NewNewestSorter() Sorter {
	return NewBaseSorter(types.SortNewest, "Newest", func(item *types.MenuItem) int64 {
		return item.CreatedAt
	}, true)
}

func NewPopularitySorter() Sorter {
	return NewBaseSorter(types.SortPopularity, "Popularity", func(item *types.MenuItem) int {
		return item.OrderCount
	}, true)
}

func NewPriceSorter() Sorter {
	return NewBaseSorter(types.SortPriceLowToHigh, "Price: Low to High", func(item *types.MenuItem) float64 {
		return item.Price
	}, false)
}

func NewPriceDescSorter() Sorter {
	return NewBaseSorter(types.SortPriceHighToLow, "Price: High to Low", func(item *types.MenuItem) float64 {
		return item.Price
	}, true)
}

func NewNameSorter() Sorter {
	return Sorter{
		Name:  types.SortNameAToZ,
		Label: "Name: A to Z",
		Compare: func(a, b *types.MenuItem) int {
			return search.CompareFolded(a.Name, b.Name)
		},
	}
}

func NewNameDescSorter() Sorter {
	return Sorter{
		Name:  types.SortNameZToA,
		Label: "Name: Z to A",
		Compare: func(a, b *types.MenuItem) int {
			return search.CompareFolded(b.Name, a.Name)
		},
	}
}
