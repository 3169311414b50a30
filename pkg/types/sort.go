package types

import "strings"

type SortOption string

const (
	SortNewest         SortOption = "newest"
	SortPopularity     SortOption = "popularity"
	SortPriceLowToHigh SortOption = "price_low_to_high"
	SortPriceHighToLow SortOption = "price_high_to_low"
	SortNameAToZ       SortOption = "name_a_to_z"
	SortNameZToA       SortOption = "name_z_to_a"
)

const DefaultSort = SortNewest

var sortAliases = map[string]SortOption{
	"popular":    SortPopularity,
	"price":      SortPriceLowToHigh,
	"price_asc":  SortPriceLowToHigh,
	"price_desc": SortPriceHighToLow,
	"name":       SortNameAToZ,
	"name_asc":   SortNameAToZ,
	"name_desc":  SortNameZToA,
	"created":    SortNewest,
	"recent":     SortNewest,
}

func AllSortOptions() []SortOption {
	return []SortOption{
		SortNewest,
		SortPopularity,
		SortPriceLowToHigh,
		SortPriceHighToLow,
		SortNameAToZ,
		SortNameZToA,
	}
}

func (s SortOption) Valid() bool {
	switch s {
	case SortNewest, SortPopularity, SortPriceLowToHigh, SortPriceHighToLow, SortNameAToZ, SortNameZToA:
		return true
	}
	return false
}

func (s SortOption) String() string {
	return string(s)
}

// ParseSortOption accepts the enum names in any case ("PRICE_LOW_TO_HIGH",
// "price-low-to-high") and a few short aliases. Anything else is newest.
func ParseSortOption(value string) SortOption {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if opt := SortOption(key); opt.Valid() {
		return opt
	}
	if opt, ok := sortAliases[key]; ok {
		return opt
	}
	return DefaultSort
}
