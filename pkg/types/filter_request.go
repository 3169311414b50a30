package types

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const DefaultMaxPrice = math.MaxFloat64

// FilterRequest is the full set of filter and sort choices for one view of a menu.
// Mutators use value receivers and return sanitized copies, so a request handed to
// the engine is never changed behind its back.
type FilterRequest struct {
	Query          string     `json:"query" schema:"q"`
	Categories     []string   `json:"categories" schema:"cat"`
	AllCategories  bool       `json:"allCategories" schema:"all"`
	ShowAvailable  bool       `json:"showAvailable" schema:"available"`
	ShowOutOfStock bool       `json:"showOutOfStock" schema:"outofstock"`
	MinPrice       float64    `json:"minPrice" schema:"min"`
	MaxPrice       float64    `json:"maxPrice" schema:"max"`
	Sort           SortOption `json:"sort" schema:"sort"`
}

type FilterOption func(*FilterRequest)

func WithQuery(query string) FilterOption {
	return func(f *FilterRequest) {
		f.Query = query
	}
}

// WithCategories restricts the request to the given categories, an empty list
// selects all of them.
func WithCategories(categories ...string) FilterOption {
	return func(f *FilterRequest) {
		f.Categories = slices.Clone(categories)
		f.AllCategories = len(categories) == 0
	}
}

func WithAllCategories() FilterOption {
	return func(f *FilterRequest) {
		f.AllCategories = true
	}
}

func WithAvailability(showAvailable, showOutOfStock bool) FilterOption {
	return func(f *FilterRequest) {
		f.ShowAvailable = showAvailable
		f.ShowOutOfStock = showOutOfStock
	}
}

func WithPriceRange(minPrice, maxPrice float64) FilterOption {
	return func(f *FilterRequest) {
		f.MinPrice = minPrice
		f.MaxPrice = maxPrice
	}
}

func WithSort(sort SortOption) FilterOption {
	return func(f *FilterRequest) {
		f.Sort = sort
	}
}

func DefaultFilterRequest() FilterRequest {
	return FilterRequest{
		Query:          "",
		Categories:     []string{},
		AllCategories:  true,
		ShowAvailable:  true,
		ShowOutOfStock: true,
		MinPrice:       0,
		MaxPrice:       DefaultMaxPrice,
		Sort:           DefaultSort,
	}
}

func NewFilterRequest(opts ...FilterOption) FilterRequest {
	f := DefaultFilterRequest()
	for _, opt := range opts {
		opt(&f)
	}
	f.Sanitize()
	return f
}

// Sanitize corrects a request in place. A blank query becomes empty, empty and
// duplicate categories are removed, inverted price bounds are swapped and unknown
// sort options replaced. Query and category text is otherwise kept verbatim.
func (f *FilterRequest) Sanitize() {
	if strings.TrimSpace(f.Query) == "" {
		f.Query = ""
	}

	categories := make([]string, 0, len(f.Categories))
	for _, c := range f.Categories {
		if c == "" || slices.Contains(categories, c) {
			continue
		}
		categories = append(categories, c)
	}
	f.Categories = categories

	if math.IsNaN(f.MinPrice) || math.IsInf(f.MinPrice, -1) {
		f.MinPrice = 0
	}
	if math.IsNaN(f.MaxPrice) || math.IsInf(f.MaxPrice, 1) {
		f.MaxPrice = DefaultMaxPrice
	}
	f.MinPrice = clamp(f.MinPrice, 0, DefaultMaxPrice)
	f.MaxPrice = clamp(f.MaxPrice, 0, DefaultMaxPrice)
	if f.MinPrice > f.MaxPrice {
		f.MinPrice, f.MaxPrice = f.MaxPrice, f.MinPrice
	}

	if !f.Sort.Valid() {
		f.Sort = ParseSortOption(string(f.Sort))
	}
}

func (f FilterRequest) clone() FilterRequest {
	f.Categories = slices.Clone(f.Categories)
	return f
}

func (f FilterRequest) SetQuery(query string) FilterRequest {
	r := f.clone()
	r.Query = query
	r.Sanitize()
	return r
}

// ToggleCategory adds the category when missing and removes it otherwise. Removing
// the last selected category falls back to all categories.
func (f FilterRequest) ToggleCategory(category string) FilterRequest {
	r := f.clone()
	if idx := slices.Index(r.Categories, category); idx >= 0 {
		r.Categories = slices.Delete(r.Categories, idx, idx+1)
	} else {
		r.Categories = append(r.Categories, category)
	}
	r.AllCategories = len(r.Categories) == 0
	r.Sanitize()
	return r
}

func (f FilterRequest) SetCategories(categories ...string) FilterRequest {
	r := f.clone()
	WithCategories(categories...)(&r)
	r.Sanitize()
	return r
}

func (f FilterRequest) SelectAllCategories() FilterRequest {
	r := f.clone()
	r.Categories = []string{}
	r.AllCategories = true
	r.Sanitize()
	return r
}

func (f FilterRequest) SetAvailability(showAvailable, showOutOfStock bool) FilterRequest {
	r := f.clone()
	r.ShowAvailable = showAvailable
	r.ShowOutOfStock = showOutOfStock
	return r
}

func (f FilterRequest) SetPriceRange(minPrice, maxPrice float64) FilterRequest {
	r := f.clone()
	r.MinPrice = minPrice
	r.MaxPrice = maxPrice
	r.Sanitize()
	return r
}

func (f FilterRequest) SetSort(sort SortOption) FilterRequest {
	r := f.clone()
	r.Sort = sort
	r.Sanitize()
	return r
}

func (f FilterRequest) Reset() FilterRequest {
	return DefaultFilterRequest()
}

func (f *FilterRequest) HasCategoryFilter() bool {
	return !f.AllCategories && len(f.Categories) > 0
}

func (f *FilterRequest) HasAvailabilityFilter() bool {
	return f.ShowAvailable != f.ShowOutOfStock
}

func (f *FilterRequest) HasPriceFilter() bool {
	return f.MinPrice > 0 || f.MaxPrice < DefaultMaxPrice
}

// ActiveFilterCount is the number of constrained dimensions, sorting excluded.
func (f *FilterRequest) ActiveFilterCount() int {
	count := 0
	if f.Query != "" {
		count++
	}
	if f.HasCategoryFilter() {
		count++
	}
	if f.HasAvailabilityFilter() {
		count++
	}
	if f.HasPriceFilter() {
		count++
	}
	return count
}

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// ToQuery encodes the request with the same keys FilterRequestFromQuery reads.
func (f *FilterRequest) ToQuery() url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	categories := slices.Clone(f.Categories)
	slices.Sort(categories)
	for _, c := range categories {
		q.Add("cat", c)
	}
	q.Set("all", strconv.FormatBool(f.AllCategories))
	q.Set("available", strconv.FormatBool(f.ShowAvailable))
	q.Set("outofstock", strconv.FormatBool(f.ShowOutOfStock))
	q.Set("min", formatPrice(f.MinPrice))
	q.Set("max", formatPrice(f.MaxPrice))
	q.Set("sort", string(f.Sort))
	return q
}

// Key is a canonical representation, two requests with equal keys give equal results.
func (f *FilterRequest) Key() string {
	return f.ToQuery().Encode()
}
