package filter

import (
	"github.com/matst80/slask-menu/pkg/types"
)

// Compile turns a request into a single predicate. The query is folded and the
// category set built once, so the result is cheap to run per item.
func Compile(request types.FilterRequest) Predicate {
	request.Sanitize()
	predicates := make([]Predicate, 0, 4)
	if request.Query != "" {
		predicates = append(predicates, MatchQuery(request.Query))
	}
	if request.HasCategoryFilter() {
		predicates = append(predicates, MatchCategory(request.Categories...))
	}
	if request.HasAvailabilityFilter() {
		predicates = append(predicates, MatchAvailability(request.ShowAvailable, request.ShowOutOfStock))
	}
	predicates = append(predicates, MatchPrice(request.MinPrice, request.MaxPrice))
	return All(predicates...)
}

// Matches reports whether the item passes every dimension of the request.
func Matches(item types.MenuItem, request types.FilterRequest) bool {
	clean := item.Sanitized()
	return Compile(request)(&clean)
}

// Filter returns the sanitized items passing the request, in input order.
func Filter(items []types.MenuItem, request types.FilterRequest) []types.MenuItem {
	predicate := Compile(request)
	result := make([]types.MenuItem, 0, len(items))
	for _, item := range items {
		clean := item.Sanitized()
		if predicate(&clean) {
			result = append(result, clean)
		}
	}
	return result
}

// Count is Filter without keeping the items.
func Count(items []types.MenuItem, request types.FilterRequest) int {
	predicate := Compile(request)
	count := 0
	for _, item := range items {
		clean := item.Sanitized()
		if predicate(&clean) {
			count++
		}
	}
	return count
}
