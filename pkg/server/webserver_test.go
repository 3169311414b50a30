package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matst80/slask-menu/pkg/engine"
	"github.com/matst80/slask-menu/pkg/index"
	"github.com/matst80/slask-menu/pkg/presets"
	"github.com/matst80/slask-menu/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *WebServer {
	catalog := index.NewCatalog()
	catalog.Upsert(
		types.MenuItem{Id: "burger", Name: "Burger", Price: 100, Category: "Snacks", Available: true, OrderCount: 5, CreatedAt: 100},
		types.MenuItem{Id: "pizza", Name: "Pizza", Price: 200, Category: "Main", Available: false, OrderCount: 20, CreatedAt: 200},
		types.MenuItem{Id: "soda", Name: "Soda", Price: 25, Available: true, OrderCount: 50, CreatedAt: 50},
	)
	store, err := presets.NewMemoryStore(nil)
	require.NoError(t, err)
	return NewWebServer(catalog, engine.New(engine.WithPreviewLimit(2)), store, nil, 16)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func names(items []types.MenuItem) []string {
	ret := make([]string, len(items))
	for i, item := range items {
		ret[i] = item.Name
	}
	return ret
}

func TestFilterDefaults(t *testing.T) {
	h := testServer(t).ClientHandler()
	w := do(t, h, http.MethodGet, "/filter", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[types.FilterResult](t, w)
	assert.Equal(t, []string{"Pizza", "Burger", "Soda"}, names(res.Items))
	assert.Len(t, res.Preview, 2)
	assert.Equal(t, 3, res.Total)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestFilterQueryParameters(t *testing.T) {
	h := testServer(t).ClientHandler()
	w := do(t, h, http.MethodGet, "/filter?available=true&outofstock=false&sort=price_low_to_high", "")
	res := decode[types.FilterResult](t, w)
	assert.Equal(t, []string{"Soda", "Burger"}, names(res.Items))

	w = do(t, h, http.MethodGet, "/filter?cat=Main&cat=Snacks&min=150", "")
	res = decode[types.FilterResult](t, w)
	assert.Equal(t, []string{"Pizza"}, names(res.Items))
}

func TestFilterPostBody(t *testing.T) {
	h := testServer(t).ClientHandler()
	w := do(t, h, http.MethodPost, "/filter", `{"query":"piz"}`)
	res := decode[types.FilterResult](t, w)
	assert.Equal(t, []string{"Pizza"}, names(res.Items))

	w = do(t, h, http.MethodPost, "/filter", `{"query":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterCacheFollowsCatalogVersion(t *testing.T) {
	ws := testServer(t)
	h := ws.ClientHandler()
	first := decode[types.FilterResult](t, do(t, h, http.MethodGet, "/filter?q=burger", ""))
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, 1, ws.cache.Len())

	ws.Catalog.Upsert(types.MenuItem{Id: "double", Name: "Double Burger", Price: 150, CreatedAt: 300})
	second := decode[types.FilterResult](t, do(t, h, http.MethodGet, "/filter?q=burger", ""))
	assert.Equal(t, 2, second.Count)
	assert.Equal(t, "Double Burger", second.Items[0].Name)
}

func TestCount(t *testing.T) {
	h := testServer(t).ClientHandler()
	res := decode[CountResponse](t, do(t, h, http.MethodGet, "/count?max=100", ""))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.ActiveFilters)
}

func TestDiscoveryEndpoints(t *testing.T) {
	h := testServer(t).ClientHandler()

	categories := decode[[]string](t, do(t, h, http.MethodGet, "/categories", ""))
	assert.ElementsMatch(t, []string{"Snacks", "Main", types.UncategorizedLabel}, categories)

	priceRange := decode[types.PriceRange](t, do(t, h, http.MethodGet, "/price-range", ""))
	assert.Equal(t, types.PriceRange{Min: 25, Max: 200}, priceRange)

	meta := decode[types.FilterMetadata](t, do(t, h, http.MethodGet, "/facets", ""))
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 1, meta.Availability.OutOfStock)

	sorts := decode[[]map[string]string](t, do(t, h, http.MethodGet, "/sorts", ""))
	assert.Len(t, sorts, len(types.AllSortOptions()))
}

func TestGetItem(t *testing.T) {
	h := testServer(t).ClientHandler()
	item := decode[types.MenuItem](t, do(t, h, http.MethodGet, "/get/pizza", ""))
	assert.Equal(t, "Pizza", item.Name)

	w := do(t, h, http.MethodGet, "/get/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPresetLifecycle(t *testing.T) {
	h := testServer(t).ClientHandler()

	w := do(t, h, http.MethodPut, "/presets/cheap", `{"maxPrice":120,"sort":"price_low_to_high"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[presets.Preset](t, w)
	assert.Equal(t, "cheap", saved.Name)
	assert.Equal(t, 120.0, saved.Request.MaxPrice)

	list := decode[[]presets.Preset](t, do(t, h, http.MethodGet, "/presets", ""))
	assert.Len(t, list, 1)

	res := decode[types.FilterResult](t, do(t, h, http.MethodGet, "/presets/cheap/apply", ""))
	assert.Equal(t, []string{"Soda", "Burger"}, names(res.Items))

	w = do(t, h, http.MethodDelete, "/presets/cheap", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/presets/cheap", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodGet, "/presets/cheap/apply", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPresetsDisabled(t *testing.T) {
	ws := testServer(t)
	ws.Presets = nil
	w := do(t, ws.ClientHandler(), http.MethodGet, "/presets", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestAdminItems(t *testing.T) {
	ws := testServer(t)
	admin := ws.AdminHandler()

	w := do(t, admin, http.MethodPost, "/items", `[{"id":"wrap","name":"Wrap","price":"bad"}]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, admin, http.MethodPost, "/items", `[{"id":"wrap","name":"Wrap","price":80},{"name":"No id"}]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[UpsertResponse](t, w).Upserted)
	assert.Equal(t, 4, ws.Catalog.Len())

	w = do(t, admin, http.MethodDelete, "/items/wrap", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, admin, http.MethodDelete, "/items/wrap", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	items := decode[[]types.MenuItem](t, do(t, admin, http.MethodGet, "/items", ""))
	assert.Len(t, items, 3)
}

func TestHealth(t *testing.T) {
	w := do(t, testServer(t).ClientHandler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
