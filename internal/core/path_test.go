package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want []PathPart
	}{
		{"", nil},
		{"items", []PathPart{{Key: "items"}}},
		{"invoice.items[2].sku", []PathPart{
			{Key: "invoice"},
			{Key: "items"},
			{Key: "2", Index: 2, IsIndex: true},
			{Key: "sku"},
		}},
		{"matrix[0][1]", []PathPart{
			{Key: "matrix"},
			{Key: "0", Index: 0, IsIndex: true},
			{Key: "1", Index: 1, IsIndex: true},
		}},
		{"a[key]", []PathPart{{Key: "a"}, {Key: "key"}}},
		{`a["dotted.key"].b`, []PathPart{{Key: "a"}, {Key: "dotted.key"}, {Key: "b"}}},
		{"a[-1]", []PathPart{{Key: "a"}, {Key: "-1"}}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePath(tt.path), tt.path)
	}
}

func TestJoinParts_RoundTrip(t *testing.T) {
	for _, path := range []string{"items", "invoice.items[2].sku", "matrix[0][1]", `a["dotted.key"].b`} {
		assert.Equal(t, path, JoinParts(ParsePath(path)))
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "a[0].b", NormalizePath("a.0.b"))
	assert.Equal(t, "a[0].b", NormalizePath("a[0].b"))
}

func TestIndexPath(t *testing.T) {
	assert.Equal(t, "items[3]", IndexPath("items", 3))
	assert.Equal(t, "a.b[0]", IndexPath("a.b", 0))
}

func TestHasPathPrefix(t *testing.T) {
	assert.True(t, HasPathPrefix("items[1]", "items[1]"))
	assert.True(t, HasPathPrefix("items[1].name", "items[1]"))
	assert.True(t, HasPathPrefix("items[1][0]", "items[1]"))
	assert.False(t, HasPathPrefix("items[10]", "items[1]"))
	assert.False(t, HasPathPrefix("itemsX", "items"))
}

func TestGet(t *testing.T) {
	type Line struct {
		SKU string `json:"sku"`
		Qty int
	}
	root := map[string]any{
		"items":  []any{map[string]any{"name": "a"}, "b"},
		"typed":  []Line{{SKU: "x", Qty: 2}},
		"nested": map[string]any{"empty": nil},
	}

	v, ok := Get(root, "items[0].name")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = Get(root, "items[1]")
	require.True(t, ok)
	assert.Equal(t, "b", v)

	v, ok = Get(root, "typed[0].sku")
	require.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = Get(root, "typed[0].Qty")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = Get(root, "nested.empty")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = Get(root, "items[5]")
	assert.False(t, ok)
	_, ok = Get(root, "missing.deep")
	assert.False(t, ok)
	_, ok = Get(root, "items[1].name")
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	root := map[string]any{}

	require.NoError(t, Set(root, "items[1].name", "b"))
	items, ok := root["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Nil(t, items[0])
	assert.Equal(t, map[string]any{"name": "b"}, items[1])

	require.NoError(t, Set(root, "items[0]", "a"))
	v, _ := Get(root, "items[0]")
	assert.Equal(t, "a", v)

	require.NoError(t, Set(root, "a.b.c", 1))
	v, _ = Get(root, "a.b.c")
	assert.Equal(t, 1, v)

	assert.Error(t, Set(root, "", 1))
	assert.Error(t, Set(nil, "a", 1))
}

func TestSet_ConvertsTypedSlice(t *testing.T) {
	root := map[string]any{"tags": []string{"a", "b"}}
	require.NoError(t, Set(root, "tags[1]", "z"))
	assert.Equal(t, []any{"a", "z"}, root["tags"])
}

func TestDelete(t *testing.T) {
	root := map[string]any{
		"items": []any{"a", "b", "c"},
		"obj":   map[string]any{"k": 1},
	}

	require.NoError(t, Delete(root, "items[1]"))
	assert.Equal(t, []any{"a", "c"}, root["items"])

	require.NoError(t, Delete(root, "obj.k"))
	assert.Equal(t, map[string]any{}, root["obj"])

	require.NoError(t, Delete(root, "items[9]"))
	require.NoError(t, Delete(root, "missing.k"))
	assert.Error(t, Delete(root, ""))
}

func TestAsSlice(t *testing.T) {
	s, ok := AsSlice([]any{1, 2})
	require.True(t, ok)
	assert.Equal(t, []any{1, 2}, s)

	s, ok = AsSlice([]string{"a"})
	require.True(t, ok)
	assert.Equal(t, []any{"a"}, s)

	s, ok = AsSlice([2]int{1, 2})
	require.True(t, ok)
	assert.Equal(t, []any{1, 2}, s)

	var nilSlice []int
	s, ok = AsSlice(nilSlice)
	require.True(t, ok)
	assert.Empty(t, s)

	_, ok = AsSlice("abc")
	assert.False(t, ok)
	_, ok = AsSlice(nil)
	assert.False(t, ok)
	_, ok = AsSlice(map[string]any{})
	assert.False(t, ok)
}
