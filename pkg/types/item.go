package types

import "math"

const UncategorizedLabel = "Uncategorized"

// MenuItem is a single entry of a vendor menu. It is a plain value, filtering and
// sorting never mutate it.
type MenuItem struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	OrderCount  int     `json:"orderCount"`
	CreatedAt   int64   `json:"createdAt"`
}

// Sanitized returns a copy where out of range numbers are coerced to safe
// defaults. Text fields are left as they are.
func (m MenuItem) Sanitized() MenuItem {
	if math.IsNaN(m.Price) || math.IsInf(m.Price, 0) || m.Price < 0 {
		m.Price = 0
	}
	if m.OrderCount < 0 {
		m.OrderCount = 0
	}
	return m
}

func (m *MenuItem) CategoryOrDefault() string {
	if m.Category == "" {
		return UncategorizedLabel
	}
	return m.Category
}

func (m *MenuItem) IsOutOfStock() bool {
	return !m.Available
}
