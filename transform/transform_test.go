package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Builtins(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"array", "boolean", "date", "number", "object", "string"}, r.Names())
	assert.True(t, r.Has("date"))
	assert.False(t, r.Has("money"))
}

func TestRegistry_UnknownType(t *testing.T) {
	r := NewEmptyRegistry()

	_, err := r.Transform(nil, "money")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTransform))
	assert.Contains(t, err.Error(), `"money"`)
}

func TestRegistry_FreshInstances(t *testing.T) {
	r := NewEmptyRegistry()
	built := 0
	r.Register("counter", func() Transform {
		built++
		return Passthrough()
	})

	_, err := r.Transform(nil, "counter")
	require.NoError(t, err)
	_, err = r.Transform(nil, "counter")
	require.NoError(t, err)

	assert.Equal(t, 2, built)
}

type countingTransform struct{ Funcs }

func TestCache_ResolvesOncePerType(t *testing.T) {
	r := NewEmptyRegistry()
	built := 0
	r.Register("counter", func() Transform {
		built++
		return &countingTransform{Funcs: Passthrough().(Funcs)}
	})

	c := NewCache(r)
	first, err := c.Resolve(nil, "counter")
	require.NoError(t, err)
	second, err := c.Resolve(nil, "counter")
	require.NoError(t, err)

	assert.Equal(t, 1, built)
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())

	_, err = c.Resolve(nil, "missing")
	require.Error(t, err)
	assert.Equal(t, 1, c.Len(), "failures are not cached")

	// a second session gets its own instance
	_, err = NewCache(r).Resolve(nil, "counter")
	require.NoError(t, err)
	assert.Equal(t, 2, built)
}

func TestClone_Object(t *testing.T) {
	src := map[string]any{
		"name": "x",
		"tags": []any{"a", "b"},
		"meta": map[string]any{"n": 1},
	}

	out, err := Clone(Object(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)

	cloned := out.(map[string]any)
	cloned["name"] = "y"
	cloned["meta"].(map[string]any)["n"] = 2
	assert.Equal(t, "x", src["name"])
	assert.Equal(t, 1, src["meta"].(map[string]any)["n"])
}

func TestClone_ObjectKeepsFloats(t *testing.T) {
	src := map[string]any{
		"price": 1.0,
		"ratio": 2.5,
		"count": 3,
		"meta":  map[string]any{"weight": float64(10)},
		"list":  []any{0.0, 2, "x"},
	}

	out, err := Clone(Object(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)

	cloned := out.(map[string]any)
	assert.IsType(t, float64(0), cloned["price"])
	assert.IsType(t, float64(0), cloned["meta"].(map[string]any)["weight"])
	assert.IsType(t, float64(0), cloned["list"].([]any)[0])
	assert.IsType(t, 0, cloned["count"])
}

func TestClone_ArrayKeepsFloats(t *testing.T) {
	src := []any{1.0, map[string]any{"n": 4.0}, []any{5.0}}

	out, err := Clone(Array(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestClone_Array(t *testing.T) {
	src := []any{1, "two", map[string]any{"three": 3}}

	out, err := Clone(Array(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)

	out.([]any)[0] = 100
	assert.Equal(t, 1, src[0])
}

func TestClone_Date(t *testing.T) {
	src := time.Date(2024, 3, 1, 12, 30, 0, 5, time.UTC)

	out, err := Clone(Date(), src, nil)
	require.NoError(t, err)
	assert.True(t, src.Equal(out.(time.Time)))

	out, err = Clone(Date(), &src, nil)
	require.NoError(t, err)
	assert.True(t, src.Equal(out.(time.Time)))

	_, err = Clone(Date(), 42, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to serialize")

	_, err = Clone(Date(), "not a date", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to deserialize")
}

func TestClone_Nil(t *testing.T) {
	for _, tr := range []Transform{Date(), Object(), Array(), Passthrough()} {
		out, err := Clone(tr, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, out)
	}
}
