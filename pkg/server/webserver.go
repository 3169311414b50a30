package server

import (
	"fmt"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/matst80/slask-menu/pkg/engine"
	"github.com/matst80/slask-menu/pkg/index"
	"github.com/matst80/slask-menu/pkg/presets"
	"github.com/matst80/slask-menu/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noFilters = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskmenu_filters_total",
		Help: "The total number of processed filter requests",
	})
	noCounts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskmenu_counts_total",
		Help: "The total number of processed count requests",
	})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskmenu_result_cache_hits_total",
		Help: "The total number of filter results served from cache",
	})
	filterDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slaskmenu_filter_duration_seconds",
		Help:    "Time spent filtering and sorting the menu",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	})
	itemChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskmenu_item_changes_total",
		Help: "The total number of menu item changes received on the admin api",
	}, []string{"op"})
)

const DefaultCacheSize = 1024

type WebServer struct {
	Catalog  *index.Catalog
	Engine   *engine.Engine
	Presets  presets.Store
	Tracking types.Tracking
	cache    *lru.Cache[string, types.FilterResult]
}

func NewWebServer(catalog *index.Catalog, eng *engine.Engine, store presets.Store, tracking types.Tracking, cacheSize int) *WebServer {
	ws := &WebServer{
		Catalog:  catalog,
		Engine:   eng,
		Presets:  store,
		Tracking: tracking,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, types.FilterResult](cacheSize)
		if err != nil {
			log.Error("failed to create result cache", "err", err)
		} else {
			ws.cache = cache
		}
	}
	return ws
}

func cacheKey(version uint64, request *types.FilterRequest) string {
	return fmt.Sprintf("%d|%s", version, request.Key())
}

// apply runs the engine on the current catalog. Results are cached per catalog
// version, so a change to the menu never serves a stale result.
func (ws *WebServer) apply(request types.FilterRequest) types.FilterResult {
	noFilters.Inc()
	request.Sanitize()
	items, version := ws.Catalog.Snapshot()
	key := cacheKey(version, &request)
	if ws.cache != nil {
		if res, ok := ws.cache.Get(key); ok {
			cacheHits.Inc()
			return res
		}
	}
	timer := prometheus.NewTimer(filterDuration)
	res := ws.Engine.Apply(items, request)
	timer.ObserveDuration()
	if ws.cache != nil {
		ws.cache.Add(key, res)
	}
	return res
}

func (ws *WebServer) count(request types.FilterRequest) int {
	noCounts.Inc()
	return ws.Engine.Count(ws.Catalog.Items(), request)
}
