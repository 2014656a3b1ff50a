package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/forge/internal/errors"
	"github.com/vango-dev/forge/pkg/merge"
)

func newMapRegistry() *Registry[map[string]any] {
	return New(merge.Clone, merge.Deep)
}

func TestRegisterSnapshotsOptions(t *testing.T) {
	r := newMapRegistry()
	cfg := map[string]any{"class": "card", "style": map[string]any{"color": "red"}}

	r.Register("card", "div", cfg)
	cfg["class"] = "mutated"
	cfg["style"].(map[string]any)["color"] = "mutated"

	a, ok := r.Lookup("card")
	require.True(t, ok)
	assert.Equal(t, "div", a.Tag)
	assert.Equal(t, "card", a.Options["class"])
	assert.Equal(t, "red", a.Options["style"].(map[string]any)["color"])
}

func TestResolveMergesOverrides(t *testing.T) {
	r := newMapRegistry()
	r.Register("card", "div", map[string]any{
		"class": "card",
		"style": map[string]any{"color": "red", "margin": "0"},
	})

	tag, opts, err := r.Resolve("card", map[string]any{
		"style": map[string]any{"color": "blue"},
	})
	require.NoError(t, err)
	assert.Equal(t, "div", tag)
	assert.Equal(t, "card", opts["class"])
	assert.Equal(t, map[string]any{"color": "blue", "margin": "0"}, opts["style"])
}

func TestResolveIsIndependentPerCall(t *testing.T) {
	r := newMapRegistry()
	r.Register("card", "div", map[string]any{"style": map[string]any{"color": "red"}})

	_, first, err := r.Resolve("card", nil)
	require.NoError(t, err)
	first["style"].(map[string]any)["color"] = "green"

	_, second, err := r.Resolve("card", nil)
	require.NoError(t, err)
	assert.Equal(t, "red", second["style"].(map[string]any)["color"])
}

func TestResolveUnknown(t *testing.T) {
	r := newMapRegistry()
	_, _, err := r.Resolve("nonexistent", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownArchetype))
	assert.Equal(t, 0, r.Len())
}

func TestNamesHasDelete(t *testing.T) {
	r := newMapRegistry()
	r.Register("b", "span", nil)
	r.Register("a", "div", nil)

	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.True(t, r.Has("a"))

	r.Delete("a")
	assert.False(t, r.Has("a"))
	_, ok := r.Lookup("a")
	assert.False(t, ok)
}
