package types

import "strconv"

// MakeMockItem builds an available item with the given id, handy in tests.
func MakeMockItem(id int) MenuItem {
	return MenuItem{
		Id:        strconv.Itoa(id),
		Name:      "Item " + strconv.Itoa(id),
		Category:  "Main",
		Price:     float64(id * 10),
		Available: true,
		CreatedAt: int64(id),
	}
}

func MakeMockItems(n int) []MenuItem {
	items := make([]MenuItem, n)
	for i := range n {
		items[i] = MakeMockItem(i + 1)
	}
	return items
}
