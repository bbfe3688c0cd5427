package arraymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRemove(t *testing.T) {
	m := New[string, any](0)

	_, had := m.Put("a", 1)
	assert.False(t, had)
	m.Put("b", nil)
	prev, had := m.Put("a", 2)
	assert.True(t, had)
	assert.Equal(t, 1, prev)

	v, ok := m.Get("b")
	assert.True(t, ok, "nil value is present")
	assert.Nil(t, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, m.Keys())

	v, ok = m.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len())
	_, ok = m.Remove("a")
	assert.False(t, ok)
}

func TestInsertionOrderAfterRemoval(t *testing.T) {
	m := New[string, int](0)
	for i, k := range []string{"d", "a", "c", "b", "e"} {
		m.Put(k, i)
	}
	m.Remove("c")
	m.Remove("d")
	m.Put("a", 10)
	m.Put("f", 5)

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "b", "e", "f"}, keys)

	seen := map[string]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestPositionalAccess(t *testing.T) {
	m := New[string, string](0)
	m.Add("x", "1")
	m.Add("y", "2")

	t.Run("out of range reports absent", func(t *testing.T) {
		_, _, ok := m.At(5)
		assert.False(t, ok)
		_, _, ok = m.At(-1)
		assert.False(t, ok)
		_, ok = m.RemoveAt(2)
		assert.False(t, ok)
		_, ok = m.Value(9)
		assert.False(t, ok)
	})

	t.Run("set past end extends", func(t *testing.T) {
		m.Set(3, "z", "4")
		assert.Equal(t, 4, m.Len())
		k, v, ok := m.At(2)
		assert.True(t, ok)
		assert.Equal(t, "", k)
		assert.Equal(t, "", v)
		k, _ = m.Key(3)
		assert.Equal(t, "z", k)
	})

	t.Run("negative set panics", func(t *testing.T) {
		assert.Panics(t, func() { m.Set(-1, "k", "v") })
	})

	t.Run("set value", func(t *testing.T) {
		prev, ok := m.SetValue(0, "one")
		assert.True(t, ok)
		assert.Equal(t, "1", prev)
		v, _ := m.Get("x")
		assert.Equal(t, "one", v)
	})
}

func TestGrowthAndTrim(t *testing.T) {
	m := New[int, int](0)
	assert.Equal(t, 0, m.Cap())
	m.Add(1, 1)
	assert.Equal(t, 1, m.Cap())
	m.Add(2, 2)
	assert.Equal(t, 2, m.Cap())
	m.Add(3, 3)
	assert.Equal(t, 4, m.Cap())
	m.Add(4, 4)
	m.Add(5, 5)
	assert.Equal(t, 7, m.Cap())

	m.Trim()
	assert.Equal(t, 5, m.Cap())
	assert.Equal(t, 5, m.Len())

	m.EnsureCapacity(20)
	assert.Equal(t, 20, m.Cap())
	m.Remove(1)
	assert.Equal(t, 20, m.Cap(), "removal never shrinks")
}

func TestIterator(t *testing.T) {
	m := New[string, int](0)
	for i, k := range []string{"a", "b", "c", "d"} {
		m.Put(k, i)
	}

	it := m.Iterator()
	assert.Panics(t, func() { it.Remove() })
	for it.Next() {
		if it.Value()%2 == 0 {
			it.Remove()
			assert.Panics(t, func() { it.Remove() })
		}
	}
	assert.Equal(t, []string{"b", "d"}, m.Keys())

	it = m.Iterator()
	require.True(t, it.Next())
	it.SetValue(100)
	v, _ := m.Get("b")
	assert.Equal(t, 100, v)
}

func TestClone(t *testing.T) {
	m := New[string, []string](0)
	m.Put("a", []string{"x"})
	c := m.Clone()
	c.Put("b", nil)
	c.Put("a", []string{"y"})

	assert.Equal(t, 1, m.Len())
	v, _ := m.Get("a")
	assert.Equal(t, []string{"x"}, v)
	assert.Equal(t, 2, c.Len())
}

func TestOf(t *testing.T) {
	m, err := Of[string, any]("a", 1, "b", nil)
	require.NoError(t, err)
	assert.Equal(t, "{a=1, b=<nil>}", m.String())

	_, err = Of[string, any]("a", 1, "b")
	assert.Error(t, err)

	_, err = Of[string, int]("a", "not an int")
	assert.Error(t, err)

	_, err = Of[string, int]("a", nil)
	assert.Error(t, err)
}
