package types

// FilterResult is the outcome of applying a FilterRequest to a list of items.
type FilterResult struct {
	Items   []MenuItem    `json:"items"`
	Count   int           `json:"count"`
	Total   int           `json:"total"`
	Preview []MenuItem    `json:"preview"`
	Request FilterRequest `json:"request"`
}

func (r *FilterResult) IsEmpty() bool {
	return r.Count == 0
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (p PriceRange) Contains(price float64) bool {
	return price >= p.Min && price <= p.Max
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AvailabilityCount struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// FilterMetadata holds the options a filter surface can offer for a set of items.
type FilterMetadata struct {
	Categories   []CategoryCount   `json:"categories"`
	Availability AvailabilityCount `json:"availability"`
	PriceRange   PriceRange        `json:"priceRange"`
	Total        int               `json:"total"`
}
