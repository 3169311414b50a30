package facet

import (
	"testing"

	"github.com/matst80/slask-menu/pkg/types"
	"github.com/stretchr/testify/assert"
)

func menu() []types.MenuItem {
	return []types.MenuItem{
		{Id: "1", Category: "Snacks", Price: 100, Available: true},
		{Id: "2", Category: "Main", Price: 200},
		{Id: "3", Category: "Snacks", Price: 80, Available: true},
		{Id: "4", Category: "", Price: 120, Available: true},
		{Id: "5", Category: "main", Price: -3},
	}
}

func TestAvailableCategoriesFirstSeenOrder(t *testing.T) {
	assert.Equal(t, []string{"Snacks", "Main", types.UncategorizedLabel, "main"}, AvailableCategories(menu()))
	assert.Empty(t, AvailableCategories(nil))
}

func TestPriceRangeOf(t *testing.T) {
	assert.Equal(t, types.PriceRange{Min: 0, Max: 200}, PriceRangeOf(menu()))
	assert.Equal(t, types.PriceRange{Min: 100, Max: 100}, PriceRangeOf(menu()[:1]), "single item")
	assert.Equal(t, types.PriceRange{}, PriceRangeOf(nil))
}

func TestCategoryCounts(t *testing.T) {
	expected := []types.CategoryCount{
		{Name: "Snacks", Count: 2},
		{Name: "Main", Count: 1},
		{Name: types.UncategorizedLabel, Count: 1},
		{Name: "main", Count: 1},
	}
	assert.Equal(t, expected, CategoryCounts(menu()))
}

func TestMetadata(t *testing.T) {
	m := Metadata(menu())
	assert.Equal(t, 5, m.Total)
	assert.Equal(t, types.AvailabilityCount{InStock: 3, OutOfStock: 2}, m.Availability)
	assert.Equal(t, 200.0, m.PriceRange.Max)
	assert.Len(t, m.Categories, 4)

	empty := Metadata(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.Categories)
	assert.Equal(t, types.PriceRange{}, empty.PriceRange)
}
