package engine

import (
	"fmt"
	"testing"

	"github.com/matst80/slask-menu/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func burgerAndPizza() []types.MenuItem {
	return []types.MenuItem{
		{Id: "burger", Name: "Burger", Price: 100, Category: "Snacks", Available: true, OrderCount: 5, CreatedAt: 100},
		{Id: "pizza", Name: "Pizza", Price: 200, Category: "Main", Available: false, OrderCount: 20, CreatedAt: 200},
	}
}

func names(items []types.MenuItem) []string {
	ret := make([]string, len(items))
	for i, item := range items {
		ret[i] = item.Name
	}
	return ret
}

func TestScenarioDefaults(t *testing.T) {
	res := New().Apply(burgerAndPizza(), types.DefaultFilterRequest())
	assert.Equal(t, []string{"Pizza", "Burger"}, names(res.Items))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 2, res.Total)
}

func TestScenarioPriceRange(t *testing.T) {
	res := New().Apply(burgerAndPizza(), types.NewFilterRequest(types.WithPriceRange(150, 250)))
	assert.Equal(t, []string{"Pizza"}, names(res.Items))
	assert.Equal(t, 1, res.Count)
}

func TestScenarioAvailableOnly(t *testing.T) {
	res := New().Apply(burgerAndPizza(), types.NewFilterRequest(types.WithAvailability(true, false)))
	assert.Equal(t, []string{"Burger"}, names(res.Items))
}

func TestScenarioSearch(t *testing.T) {
	res := New().Apply(burgerAndPizza(), types.NewFilterRequest(types.WithQuery("piz")))
	assert.Equal(t, []string{"Pizza"}, names(res.Items))
}

func TestScenarioPopularity(t *testing.T) {
	res := New().Apply(burgerAndPizza(), types.NewFilterRequest(types.WithSort(types.SortPopularity)))
	assert.Equal(t, []string{"Pizza", "Burger"}, names(res.Items))
}

func TestScenarioEmptyItems(t *testing.T) {
	for _, r := range []types.FilterRequest{
		types.DefaultFilterRequest(),
		types.NewFilterRequest(types.WithQuery("x"), types.WithSort(types.SortNameZToA)),
	} {
		res := New().Apply(nil, r)
		assert.NotNil(t, res.Items)
		assert.NotNil(t, res.Preview)
		assert.Empty(t, res.Items)
		assert.Empty(t, res.Preview)
		assert.Equal(t, 0, res.Count)
		assert.True(t, res.IsEmpty())
	}
}

func catalog(n int) []types.MenuItem {
	categories := []string{"Main", "Snacks", "Drinks", ""}
	items := make([]types.MenuItem, n)
	for i := range n {
		items[i] = types.MenuItem{
			Id:          fmt.Sprintf("%d", i),
			Name:        fmt.Sprintf("Dish %c%d", 'A'+rune(i%26), i%7),
			Description: fmt.Sprintf("spicy %d", i%3),
			Category:    categories[i%len(categories)],
			Price:       float64((i * 37) % 300),
			Available:   i%4 != 0,
			OrderCount:  (i * 11) % 13,
			CreatedAt:   int64((i * 7) % 50),
		}
	}
	return items
}

func TestApplyIsIdempotent(t *testing.T) {
	e := New()
	items := catalog(200)
	r := types.NewFilterRequest(types.WithQuery("spicy 1"), types.WithSort(types.SortNameAToZ))
	first := e.Apply(items, r)
	second := e.Apply(items, r)
	assert.Equal(t, first, second)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := catalog(30)
	before := append([]types.MenuItem(nil), items...)
	New().Apply(items, types.NewFilterRequest(types.WithSort(types.SortPriceHighToLow)))
	assert.Equal(t, before, items)
}

func isSubset(sub, super []types.MenuItem) bool {
	ids := make(map[string]struct{}, len(super))
	for _, item := range super {
		ids[item.Id] = struct{}{}
	}
	for _, item := range sub {
		if _, ok := ids[item.Id]; !ok {
			return false
		}
	}
	return true
}

func TestFilterMonotonicity(t *testing.T) {
	e := New()
	items := catalog(300)
	base := types.DefaultFilterRequest()
	narrower := []types.FilterRequest{
		base.SetQuery("spicy"),
		base.SetCategories("Main", "Drinks"),
		base.SetAvailability(true, false),
		base.SetPriceRange(50, 150),
	}
	for _, r1 := range narrower {
		wide := e.Apply(items, r1)
		assert.True(t, isSubset(wide.Items, e.Apply(items, base).Items))

		r2 := r1.SetPriceRange(max(r1.MinPrice, 80), min(r1.MaxPrice, 120))
		narrow := e.Apply(items, r2)
		assert.True(t, isSubset(narrow.Items, wide.Items), "request %s", r2.Key())
		assert.LessOrEqual(t, narrow.Count, wide.Count)
	}
}

func TestSortCorrectness(t *testing.T) {
	e := New()
	items := catalog(250)
	keys := map[types.SortOption]func(a, b types.MenuItem) bool{
		types.SortNewest:         func(a, b types.MenuItem) bool { return a.CreatedAt >= b.CreatedAt },
		types.SortPopularity:     func(a, b types.MenuItem) bool { return a.OrderCount >= b.OrderCount },
		types.SortPriceLowToHigh: func(a, b types.MenuItem) bool { return a.Price <= b.Price },
		types.SortPriceHighToLow: func(a, b types.MenuItem) bool { return a.Price >= b.Price },
		types.SortNameAToZ:       func(a, b types.MenuItem) bool { return a.Name <= b.Name },
		types.SortNameZToA:       func(a, b types.MenuItem) bool { return a.Name >= b.Name },
	}
	position := make(map[string]int, len(items))
	for i, item := range items {
		position[item.Id] = i
	}
	for option, ordered := range keys {
		res := e.Apply(items, types.NewFilterRequest(types.WithSort(option)))
		require.Len(t, res.Items, len(items))
		for i := 1; i < len(res.Items); i++ {
			a, b := res.Items[i-1], res.Items[i]
			assert.True(t, ordered(a, b), "%s out of order at %d", option, i)
			if ordered(a, b) && ordered(b, a) {
				assert.Less(t, position[a.Id], position[b.Id], "%s not stable at %d", option, i)
			}
		}
	}
}

func TestDefaultPassThrough(t *testing.T) {
	items := catalog(120)
	res := New().Apply(items, types.DefaultFilterRequest())
	assert.Equal(t, len(items), res.Count)
	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i-1].CreatedAt, res.Items[i].CreatedAt)
	}
}

func TestBoundaryPriceInclusion(t *testing.T) {
	items := []types.MenuItem{
		{Id: "low", Price: 10},
		{Id: "mid", Price: 15},
		{Id: "high", Price: 20},
		{Id: "out", Price: 20.01},
	}
	res := New().Apply(items, types.NewFilterRequest(types.WithPriceRange(10, 20)))
	assert.Equal(t, 3, res.Count)
}

func TestCaseInsensitiveSearch(t *testing.T) {
	items := []types.MenuItem{{Id: "1", Name: "Delicious BURGER"}}
	res := New().Apply(items, types.NewFilterRequest(types.WithQuery("burger")))
	assert.Equal(t, 1, res.Count)
}

func TestPreviewLimit(t *testing.T) {
	items := catalog(20)
	res := New().Apply(items, types.DefaultFilterRequest())
	require.Len(t, res.Preview, DefaultPreviewLimit)
	assert.Equal(t, res.Items[:DefaultPreviewLimit], res.Preview)

	res = New(WithPreviewLimit(50)).Apply(items, types.DefaultFilterRequest())
	assert.Len(t, res.Preview, 20)

	res = New(WithPreviewLimit(-1)).Apply(items, types.DefaultFilterRequest())
	assert.Empty(t, res.Preview)

	res = (&Engine{PreviewLimit: -1}).Apply(items, types.DefaultFilterRequest())
	assert.Empty(t, res.Preview)
	assert.Len(t, res.Items, 20)

	res = New().Apply(items, types.DefaultFilterRequest())
	res.Preview[0].Name = "changed"
	assert.NotEqual(t, "changed", res.Items[0].Name)
}

func TestInvalidRequestIsSanitized(t *testing.T) {
	r := types.FilterRequest{MinPrice: 250, MaxPrice: 150, Sort: "unknown", ShowAvailable: false, ShowOutOfStock: false, AllCategories: true}
	res := New().Apply(burgerAndPizza(), r)
	assert.Equal(t, []string{"Pizza"}, names(res.Items))
	assert.Equal(t, types.SortNewest, res.Request.Sort)
	assert.Equal(t, 150.0, res.Request.MinPrice)
}

func TestCountMatchesApply(t *testing.T) {
	e := New()
	items := catalog(100)
	r := types.NewFilterRequest(types.WithQuery("dish a"), types.WithAvailability(true, false))
	assert.Equal(t, e.Apply(items, r).Count, e.Count(items, r))
}

func BenchmarkApply(b *testing.B) {
	e := New()
	items := catalog(5000)
	r := types.NewFilterRequest(types.WithQuery("spicy"), types.WithPriceRange(20, 200), types.WithSort(types.SortNameAToZ))
	b.ReportAllocs()
	for b.Loop() {
		_ = e.Apply(items, r)
	}
}
