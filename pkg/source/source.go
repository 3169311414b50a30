package source

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/types"
)

// Source loads the full menu of one vendor.
type Source interface {
	Load(ctx context.Context) ([]types.MenuItem, error)
}

type Record = map[string]any

func firstOf(record Record, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case fmt.Stringer:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int, int64:
		return fmt.Sprintf("%d", s)
	}
	return ""
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case interface{ Float64() (float64, error) }:
		f, _ := n.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(strings.TrimSpace(b))
		return parsed
	case float64:
		return b != 0
	}
	return false
}

func asTimestamp(v any) int64 {
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UnixMilli()
		}
	}
	return int64(asFloat(v))
}

// ToMenuItem turns a loosely typed vendor record into a menu item. Prices may
// be numbers or strings and availability may be stored as "available" or
// "isAvailable". Records without a usable id are rejected.
func ToMenuItem(fallbackId string, record Record) (types.MenuItem, bool) {
	item := types.MenuItem{Id: fallbackId}
	if v, ok := firstOf(record, "id", "_id", "itemId"); ok {
		if id := asString(v); id != "" {
			item.Id = id
		}
	}
	if item.Id == "" {
		return item, false
	}
	if v, ok := firstOf(record, "name", "title"); ok {
		item.Name = asString(v)
	}
	if v, ok := firstOf(record, "description"); ok {
		item.Description = asString(v)
	}
	if v, ok := firstOf(record, "category"); ok {
		item.Category = asString(v)
	}
	if v, ok := firstOf(record, "price"); ok {
		item.Price = asFloat(v)
	}
	if v, ok := firstOf(record, "available", "isAvailable"); ok {
		item.Available = asBool(v)
	}
	if v, ok := firstOf(record, "orderCount", "orders"); ok {
		item.OrderCount = int(asFloat(v))
	}
	if v, ok := firstOf(record, "createdAt", "created"); ok {
		item.CreatedAt = asTimestamp(v)
	}
	return item.Sanitized(), true
}

// ToMenuItems accepts either a list of records or an object keyed by item id.
// Keyed objects are returned in key order.
func ToMenuItems(data any) ([]types.MenuItem, error) {
	ret := make([]types.MenuItem, 0)
	add := func(id string, v any) {
		record, ok := v.(map[string]any)
		if !ok {
			log.Warn("skipping menu record", "id", id, "type", fmt.Sprintf("%T", v))
			return
		}
		if item, ok := ToMenuItem(id, record); ok {
			ret = append(ret, item)
		} else {
			log.Warn("skipping menu record without id")
		}
	}
	switch d := data.(type) {
	case nil:
		return ret, nil
	case []any:
		for _, v := range d {
			add("", v)
		}
	case map[string]any:
		for _, id := range slices.Sorted(maps.Keys(d)) {
			add(id, d[id])
		}
	default:
		return nil, fmt.Errorf("unexpected menu data %T", data)
	}
	return ret, nil
}

// New picks the source by kind, "file" or "firebase". An empty kind returns
// nil and no error.
func New(ctx context.Context, kind, file, databaseUrl, credentialsFile, vendor string) (Source, error) {
	switch kind {
	case "":
		return nil, nil
	case "file":
		return NewFileSource(file), nil
	case "firebase":
		return NewFirebaseSource(ctx, databaseUrl, credentialsFile, vendor)
	}
	return nil, fmt.Errorf("unknown menu source %q", kind)
}
