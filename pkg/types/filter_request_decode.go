package types

import (
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// UnmarshalJSON starts from the default request so omitted fields keep their
// defaults. Selecting categories without an explicit allCategories turns the
// category filter on.
func (f *FilterRequest) UnmarshalJSON(data []byte) error {
	type plain FilterRequest
	*f = DefaultFilterRequest()
	if err := jsoncompat.Unmarshal(data, (*plain)(f)); err != nil {
		return err
	}
	explicit := struct {
		AllCategories *bool `json:"allCategories"`
	}{}
	if err := jsoncompat.Unmarshal(data, &explicit); err != nil {
		return err
	}
	if explicit.AllCategories == nil {
		f.AllCategories = len(f.Categories) == 0
	}
	f.Sanitize()
	return nil
}

func FilterRequestFromQuery(query url.Values) (FilterRequest, error) {
	sr := DefaultFilterRequest()
	err := decoder.Decode(&sr, query)
	if !query.Has("all") {
		sr.AllCategories = len(sr.Categories) == 0
	}
	sr.Sanitize()
	return sr, err
}

func FilterRequestFromHttp(r *http.Request) (FilterRequest, error) {
	if r.Method == http.MethodGet || r.Body == nil || r.Body == http.NoBody {
		return FilterRequestFromQuery(r.URL.Query())
	}
	sr := DefaultFilterRequest()
	err := jsoncompat.NewDecoder(r.Body).Decode(&sr)
	sr.Sanitize()
	return sr, err
}
