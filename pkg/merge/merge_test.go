package merge

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDeep_ScalarOverride(t *testing.T) {
	base := map[string]any{"class": "card", "id": "a"}
	got := Deep(base, map[string]any{"class": "card wide"})

	assert.Equal(t, map[string]any{"class": "card wide", "id": "a"}, got)
	assert.Equal(t, "card", base["class"], "base must not be mutated")
}

func TestDeep_NestedMapsMergeKeyByKey(t *testing.T) {
	base := map[string]any{
		"style": map[string]any{"color": "red", "margin": "0"},
	}
	got := Deep(base, map[string]any{
		"style": map[string]any{"color": "blue", "padding": "4px"},
	})

	assert.Equal(t, map[string]any{
		"color":   "blue",
		"margin":  "0",
		"padding": "4px",
	}, got["style"])
	assert.Equal(t, "red", base["style"].(map[string]any)["color"])
}

func TestDeep_SlicesReplaceWholesale(t *testing.T) {
	base := map[string]any{"children": []any{"a", "b", "c"}}
	got := Deep(base, map[string]any{"children": []any{"z"}})

	assert.Equal(t, []any{"z"}, got["children"])
	assert.Len(t, base["children"], 3)
}

func TestDeep_MapOverScalarStartsEmpty(t *testing.T) {
	base := map[string]any{"attrs": "not-a-map"}
	got := Deep(base, map[string]any{"attrs": map[string]any{"role": "nav"}})

	assert.Equal(t, map[string]any{"role": "nav"}, got["attrs"])
}

func TestDeep_NilOverrideReplaces(t *testing.T) {
	got := Deep(map[string]any{"html": "<b>x</b>"}, map[string]any{"html": nil})

	v, ok := got["html"]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestDeep_NilInputs(t *testing.T) {
	assert.Equal(t, map[string]any{}, Deep(nil, nil))
	assert.Equal(t, map[string]any{"a": 1}, Deep(nil, map[string]any{"a": 1}))
}

func TestDeep_ResultIndependentOfOverrides(t *testing.T) {
	over := map[string]any{"list": []any{"x"}, "nested": map[string]any{"k": "v"}}
	got := Deep(nil, over)

	got["list"].([]any)[0] = "mutated"
	got["nested"].(map[string]any)["k"] = "mutated"

	assert.Equal(t, "x", over["list"].([]any)[0])
	assert.Equal(t, "v", over["nested"].(map[string]any)["k"])
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone(nil))

	src := map[string]any{"a": map[string]any{"b": []any{1, 2}}}
	cp := Clone(src)
	require.True(t, reflect.DeepEqual(src, cp))

	cp["a"].(map[string]any)["b"].([]any)[0] = 99
	assert.Equal(t, 1, src["a"].(map[string]any)["b"].([]any)[0])
}

// genTree draws a small nested map with scalar, slice and map leaves.
func genTree(depth int) *rapid.Generator[map[string]any] {
	return rapid.Custom(func(t *rapid.T) map[string]any {
		n := rapid.IntRange(0, 4).Draw(t, "n")
		m := make(map[string]any, n)
		for i := 0; i < n; i++ {
			key := rapid.SampledFrom([]string{"a", "b", "c", "d", "e"}).Draw(t, "key")
			kind := rapid.IntRange(0, 2).Draw(t, "kind")
			switch {
			case kind == 0 || depth == 0:
				m[key] = rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "scalar")
			case kind == 1:
				m[key] = []any{rapid.Int().Draw(t, "item")}
			default:
				m[key] = genTree(depth-1).Draw(t, "sub")
			}
		}
		return m
	})
}

func TestDeep_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := genTree(2).Draw(rt, "base")
		over := genTree(2).Draw(rt, "over")
		before := Clone(base)

		got := Deep(base, over)

		if !reflect.DeepEqual(base, before) {
			rt.Fatalf("base mutated: %v -> %v", before, base)
		}

		for k, v := range over {
			switch ov := v.(type) {
			case map[string]any:
				sub, ok := got[k].(map[string]any)
				if !ok {
					rt.Fatalf("key %q: expected merged map, got %T", k, got[k])
				}
				for sk := range ov {
					if _, ok := sub[sk]; !ok {
						rt.Fatalf("key %q.%q missing after merge", k, sk)
					}
				}
				if bm, ok := base[k].(map[string]any); ok {
					for bk := range bm {
						if _, ok := sub[bk]; !ok {
							rt.Fatalf("base key %q.%q dropped by merge", k, bk)
						}
					}
				}
			default:
				if !reflect.DeepEqual(got[k], ov) {
					rt.Fatalf("key %q: override %v not applied, got %v", k, ov, got[k])
				}
			}
		}

		for k, v := range base {
			if _, overridden := over[k]; !overridden && !reflect.DeepEqual(got[k], v) {
				rt.Fatalf("untouched key %q changed: %v -> %v", k, v, got[k])
			}
		}
	})
}
