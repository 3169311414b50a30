package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matst80/slask-menu/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuJson = `[
	{"id":"burger","name":"Burger","price":100,"category":"Snacks","available":true,"orderCount":5,"createdAt":100},
	{"id":"pizza","name":"Pizza","price":200,"category":"Main","available":false,"orderCount":20,"createdAt":200},
	{"id":"soda","name":"Soda","price":25,"available":true,"orderCount":50,"createdAt":50}
]`

func writeMenu(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(menuJson), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	cmd := RootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFilterJson(t *testing.T) {
	path := writeMenu(t)
	out, err := run(t, "filter", "-f", path, "--json", "--out-of-stock=false", "--sort", "PRICE_LOW_TO_HIGH")
	require.NoError(t, err)

	var res types.FilterResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Items, 2)
	assert.Equal(t, "soda", res.Items[0].Id)
	assert.Equal(t, "burger", res.Items[1].Id)
	assert.Equal(t, 3, res.Total)
}

func TestFilterPreviewOnly(t *testing.T) {
	path := writeMenu(t)
	out, err := run(t, "filter", "-f", path, "--json", "--preview", "1", "--preview-only", "-c", "Main", "-c", "Snacks")
	require.NoError(t, err)

	var items []types.MenuItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "pizza", items[0].Id)
}

func TestFilterTable(t *testing.T) {
	path := writeMenu(t)
	out, err := run(t, "filter", "-f", path, "-q", "piz")
	require.NoError(t, err)
	assert.Contains(t, out, "Pizza")
	assert.NotContains(t, out, "Burger")
	assert.Contains(t, out, "1 of 3 items, 1 active filters, sorted by newest")
}

func TestCategoriesAndPriceRange(t *testing.T) {
	path := writeMenu(t)
	out, err := run(t, "categories", "-f", path, "--json")
	require.NoError(t, err)
	var counts []types.CategoryCount
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	assert.Len(t, counts, 3)

	out, err = run(t, "price-range", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "25.00 - 200.00\n", out)

	out, err = run(t, "facets", "-f", path)
	require.NoError(t, err)
	var meta types.FilterMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &meta))
	assert.Equal(t, 1, meta.Availability.OutOfStock)
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "categories", "-f", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
