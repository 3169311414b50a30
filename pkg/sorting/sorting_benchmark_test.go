package sorting

import (
	"fmt"
	"testing"

	"github.com/matst80/slask-menu/pkg/types"
)

func benchmarkItems(n int) []types.MenuItem {
	items := make([]types.MenuItem, n)
	for i := range n {
		items[i] = types.MenuItem{
			Id:         fmt.Sprintf("%d", i),
			Name:       fmt.Sprintf("Dish %d", (i*7919)%n),
			Price:      float64((i * 31) % 500),
			OrderCount: (i * 17) % 100,
			CreatedAt:  int64((i * 13) % 1000),
		}
	}
	return items
}

func BenchmarkSorted(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		items := benchmarkItems(size)
		for _, option := range types.AllSortOptions() {
			b.Run(fmt.Sprintf("%s_%d", option, size), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					_ = Sorted(items, option)
				}
			})
		}
	}
}
