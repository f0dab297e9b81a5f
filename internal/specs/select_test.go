package specs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeList(names ...string) []Recipe {
	recipes := make([]Recipe, len(names))
	for i, n := range names {
		recipes[i] = Recipe{Name: n}
	}
	return recipes
}

func names(recipes []Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func TestSelectAll(t *testing.T) {
	all := recipeList("a", "b", "c")
	got, err := Select(all, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(got))
}

func TestSelectStartFrom(t *testing.T) {
	all := recipeList("a", "b", "c")
	got, err := Select(all, "b", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, names(got))
}

func TestSelectStartFromUnknown(t *testing.T) {
	_, err := Select(recipeList("a", "b"), "zzz", nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSelectSubsetKeepsSpecOrder(t *testing.T) {
	all := recipeList("a", "b", "c", "d")

	// User order differs from spec order; the result follows the file.
	got, err := Select(all, "", []string{"d", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, names(got))
}

func TestSelectUnknownNames(t *testing.T) {
	_, err := Select(recipeList("a", "b"), "", []string{"a", "nope", "b", "also-nope"})
	require.ErrorIs(t, err, ErrInvalidSelection)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "also-nope")
}

func TestSelectStartFromThenSubset(t *testing.T) {
	all := recipeList("a", "b", "c", "d")
	got, err := Select(all, "b", []string{"c", "d"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, names(got))
}

func TestSelectSubsetBeforeCursorIsUnknown(t *testing.T) {
	all := recipeList("a", "b", "c")
	_, err := Select(all, "b", []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}
