package engine

import (
	"slices"

	"github.com/matst80/slask-menu/pkg/facet"
	"github.com/matst80/slask-menu/pkg/filter"
	"github.com/matst80/slask-menu/pkg/sorting"
	"github.com/matst80/slask-menu/pkg/types"
)

const DefaultPreviewLimit = 5

// Engine filters and sorts menu items. It keeps no state between calls and is
// safe for concurrent use.
type Engine struct {
	PreviewLimit int
}

type Option func(*Engine)

func WithPreviewLimit(limit int) Option {
	return func(e *Engine) {
		e.PreviewLimit = limit
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{PreviewLimit: DefaultPreviewLimit}
	for _, opt := range opts {
		opt(e)
	}
	if e.PreviewLimit < 0 {
		e.PreviewLimit = 0
	}
	return e
}

// Apply filters items with the request, sorts the matches and cuts the preview.
// The input slice is never modified.
func (e *Engine) Apply(items []types.MenuItem, request types.FilterRequest) types.FilterResult {
	request.Sanitize()

	results := filter.Filter(items, request)
	sorting.Sort(results, request.Sort)

	limit := max(0, min(e.PreviewLimit, len(results)))
	return types.FilterResult{
		Items:   results,
		Count:   len(results),
		Total:   len(items),
		Preview: slices.Clone(results[:limit]),
		Request: request,
	}
}

// Count is the number of matches without sorting, for live result counters.
func (e *Engine) Count(items []types.MenuItem, request types.FilterRequest) int {
	return filter.Count(items, request)
}

// Metadata describes the filter options for the items.
func (e *Engine) Metadata(items []types.MenuItem) types.FilterMetadata {
	return facet.Metadata(items)
}
