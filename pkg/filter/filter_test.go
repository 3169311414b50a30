package filter

import (
	"testing"

	"github.com/matst80/slask-menu/pkg/types"
	"github.com/stretchr/testify/assert"
)

func menu() []types.MenuItem {
	return []types.MenuItem{
		{Id: "1", Name: "Burger", Description: "Beef patty", Price: 100, Category: "Snacks", Available: true, OrderCount: 5, CreatedAt: 100},
		{Id: "2", Name: "Pizza", Description: "Cheese and tomato", Price: 200, Category: "Main", Available: false, OrderCount: 20, CreatedAt: 200},
		{Id: "3", Name: "Delicious BURGER", Price: 150, Category: "Main", Available: true, OrderCount: 1, CreatedAt: 50},
		{Id: "4", Name: "Lassi", Description: "Sweet yoghurt drink", Price: 40, Category: "drinks", Available: true, CreatedAt: 10},
	}
}

func ids(items []types.MenuItem) []string {
	ret := make([]string, len(items))
	for i, item := range items {
		ret[i] = item.Id
	}
	return ret
}

func TestDefaultRequestPassesEverything(t *testing.T) {
	result := Filter(menu(), types.DefaultFilterRequest())
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(result))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	r := types.NewFilterRequest(types.WithQuery("burger"))
	assert.Equal(t, []string{"1", "3"}, ids(Filter(menu(), r)))

	r = types.NewFilterRequest(types.WithQuery("YOGHURT"))
	assert.Equal(t, []string{"4"}, ids(Filter(menu(), r)))

	r = types.NewFilterRequest(types.WithQuery("sushi"))
	assert.Empty(t, Filter(menu(), r))
}

func TestCategoryIsExactMatch(t *testing.T) {
	r := types.NewFilterRequest(types.WithCategories("Main", "Drinks"))
	assert.Equal(t, []string{"2", "3"}, ids(Filter(menu(), r)))

	r = types.NewFilterRequest(types.WithCategories("Main", "drinks"))
	assert.Equal(t, []string{"2", "3", "4"}, ids(Filter(menu(), r)))
}

func TestAllCategoriesOverridesSelection(t *testing.T) {
	r := types.NewFilterRequest(types.WithCategories("Main"), types.WithAllCategories())
	assert.Len(t, Filter(menu(), r), 4)
}

func TestAvailability(t *testing.T) {
	inStock := types.NewFilterRequest(types.WithAvailability(true, false))
	assert.Equal(t, []string{"1", "3", "4"}, ids(Filter(menu(), inStock)))

	outOfStock := types.NewFilterRequest(types.WithAvailability(false, true))
	assert.Equal(t, []string{"2"}, ids(Filter(menu(), outOfStock)))

	neither := types.NewFilterRequest(types.WithAvailability(false, false))
	assert.Len(t, Filter(menu(), neither), 4)
}

func TestPriceBoundsAreInclusive(t *testing.T) {
	r := types.NewFilterRequest(types.WithPriceRange(100, 150))
	assert.Equal(t, []string{"1", "3"}, ids(Filter(menu(), r)))

	r = types.NewFilterRequest(types.WithPriceRange(150, 250))
	assert.Equal(t, []string{"2", "3"}, ids(Filter(menu(), r)))
}

func TestDimensionsCombine(t *testing.T) {
	r := types.NewFilterRequest(
		types.WithQuery("burger"),
		types.WithCategories("Main"),
		types.WithAvailability(true, false),
		types.WithPriceRange(0, 1000),
	)
	assert.Equal(t, []string{"3"}, ids(Filter(menu(), r)))
	assert.Equal(t, 1, Count(menu(), r))
}

func TestMalformedItemsAreTolerated(t *testing.T) {
	items := []types.MenuItem{
		{Id: "x", Price: -10},
		{},
	}
	r := types.NewFilterRequest(types.WithPriceRange(0, 0))
	result := Filter(items, r)
	assert.Len(t, result, 2)
	assert.Equal(t, 0.0, result[0].Price)

	assert.False(t, Matches(types.MenuItem{}, types.NewFilterRequest(types.WithQuery("a"))))
	assert.False(t, Matches(types.MenuItem{}, types.NewFilterRequest(types.WithCategories("Main"))))
	assert.False(t, Matches(types.MenuItem{Category: "Main "}, types.NewFilterRequest(types.WithCategories("Main"))))
	assert.True(t, Matches(types.MenuItem{Category: "Main "}, types.NewFilterRequest(types.WithCategories("Main "))))
}

func TestPredicateCombinators(t *testing.T) {
	item := &types.MenuItem{Name: "Pizza", Price: 10, Available: true}
	assert.True(t, All()(item))
	assert.True(t, All(MatchQuery("piz"), MatchPrice(5, 10))(item))
	assert.False(t, All(MatchQuery("piz"), MatchPrice(11, 20))(item))
	assert.False(t, MatchAvailability(false, true)(item))
}
