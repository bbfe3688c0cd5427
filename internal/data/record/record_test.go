package record

import (
	"errors"
	"testing"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type search struct {
	Record
	Terms []string `key:"q"`
	Sort  string   `key:"sort"`
	Limit *int64   `key:"limit"`
}

func newSearch(mode catalog.Mode) *search {
	s := &search{}
	s.MustBind(s, mode)
	return s
}

func (s *search) clone() *search {
	c := *s
	s.CloneTo(&c.Record, &c)
	return &c
}

func TestCatalogFirstResolution(t *testing.T) {
	s := newSearch(catalog.CaseSensitive)

	require.NoError(t, s.Set("sort", "asc"))
	assert.Equal(t, "asc", s.Sort)
	assert.Equal(t, 0, s.Unknown().Len(), "declared names never reach overflow")

	require.NoError(t, s.Set("Sort", "desc"))
	assert.Equal(t, "asc", s.Sort)
	v, ok := s.Get("Sort")
	assert.True(t, ok)
	assert.Equal(t, "desc", v)

	s.Terms = []string{"go"}
	v, ok = s.Get("q")
	assert.True(t, ok)
	assert.Equal(t, []string{"go"}, v)
}

func TestSetCoercion(t *testing.T) {
	s := newSearch(catalog.CaseSensitive)

	t.Run("single element wraps", func(t *testing.T) {
		require.NoError(t, s.Set("q", "one"))
		assert.Equal(t, []string{"one"}, s.Terms)
	})

	t.Run("generic slice converts", func(t *testing.T) {
		require.NoError(t, s.Set("q", []any{"a", "b"}))
		assert.Equal(t, []string{"a", "b"}, s.Terms)
	})

	t.Run("value for pointer field", func(t *testing.T) {
		require.NoError(t, s.Set("limit", 10))
		require.NotNil(t, s.Limit)
		assert.Equal(t, int64(10), *s.Limit)
	})

	t.Run("mismatch is reported", func(t *testing.T) {
		err := s.Set("sort", 5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTypeMismatch))
		var tm *TypeMismatchError
		require.ErrorAs(t, err, &tm)
		assert.Equal(t, "sort", tm.Name)
	})

	t.Run("nil clears", func(t *testing.T) {
		prev, err := s.Put("q", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, prev)
		assert.Nil(t, s.Terms)
		_, ok := s.Get("q")
		assert.False(t, ok)
	})
}

func TestEntriesOrder(t *testing.T) {
	s := newSearch(catalog.CaseSensitive)
	require.NoError(t, s.Set("zeta", 1))
	require.NoError(t, s.Set("sort", "asc"))
	require.NoError(t, s.Set("alpha", nil))
	require.NoError(t, s.Set("q", []string{"c", "a", "b"}))

	var names []string
	for _, e := range s.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"q", "sort", "zeta", "alpha"}, names)
	assert.Equal(t, 4, s.Len())
}

func TestRemoveAndClear(t *testing.T) {
	s := newSearch(catalog.CaseSensitive)
	s.Sort = "asc"
	require.NoError(t, s.Set("extra", "x"))

	_, err := s.Remove("sort")
	assert.ErrorIs(t, err, ErrDeclaredField)

	v, err := s.Remove("extra")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	require.NoError(t, s.Set("extra", "y"))
	s.Clear()
	assert.Equal(t, "", s.Sort)
	assert.Equal(t, 0, s.Len())
}

func TestIgnoreCaseOverflow(t *testing.T) {
	s := newSearch(catalog.IgnoreCase)
	require.NoError(t, s.Set("SORT", "asc"))
	assert.Equal(t, "asc", s.Sort)

	require.NoError(t, s.Set("X-Custom", "1"))
	v, ok := s.Get("x-custom")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, []string{"x-custom"}, s.Unknown().Keys())
}

func TestClone(t *testing.T) {
	s := newSearch(catalog.CaseSensitive)
	s.Terms = []string{"a"}
	require.NoError(t, s.Set("list", []string{"x"}))

	c := s.clone()
	c.Terms[0] = "changed"
	require.NoError(t, c.Set("sort", "desc"))
	list, _ := c.Get("list")
	list.([]string)[0] = "changed"
	require.NoError(t, c.Set("more", 1))

	assert.Equal(t, []string{"a"}, s.Terms)
	assert.Equal(t, "", s.Sort)
	orig, _ := s.Get("list")
	assert.Equal(t, []string{"x"}, orig)
	_, ok := s.Get("more")
	assert.False(t, ok)

	require.NoError(t, c.Set("q", "b"))
	assert.Equal(t, []string{"b"}, c.Terms, "clone is bound to its own owner")
	assert.Equal(t, []string{"a"}, s.Terms)
}

func TestStandaloneRecord(t *testing.T) {
	var r Record
	require.NoError(t, r.Set("b", 2))
	require.NoError(t, r.Set("a", []int{1}))
	assert.Equal(t, "{b=2, a=[1]}", r.String())

	c := r.Clone()
	v, _ := c.Get("a")
	v.([]int)[0] = 9
	orig, _ := r.Get("a")
	assert.Equal(t, []int{1}, orig)

	rec := New(catalog.IgnoreCase)
	require.NoError(t, rec.Set("Key", "v"))
	_, ok := rec.Get("KEY")
	assert.True(t, ok)
}

func TestZeroValuePresence(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  any
	}{
		{name: "empty string", key: "sort", value: "", want: ""},
		{name: "zero pointer target", key: "limit", value: 0, want: int64(0)},
		{name: "empty list", key: "q", value: []string{}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSearch(catalog.CaseSensitive)
			require.NoError(t, s.Set(tt.key, tt.value))

			v, ok := s.Get(tt.key)
			require.True(t, ok)
			if p, isPtr := v.(*int64); isPtr {
				v = *p
			}
			assert.Equal(t, tt.want, v)
			assert.Equal(t, 1, s.Len())

			c := s.clone()
			_, ok = c.Get(tt.key)
			assert.True(t, ok, "clone keeps the value present")

			prev, err := s.Put(tt.key, nil)
			require.NoError(t, err)
			assert.NotNil(t, prev)
			_, ok = s.Get(tt.key)
			assert.False(t, ok)
		})
	}

	t.Run("direct assignment of zero is absent", func(t *testing.T) {
		s := newSearch(catalog.CaseSensitive)
		require.NoError(t, s.Set("sort", "asc"))
		s.Sort = ""
		_, ok := s.Get("sort")
		assert.False(t, ok)
	})

	t.Run("clear forgets stored zeros", func(t *testing.T) {
		s := newSearch(catalog.CaseSensitive)
		require.NoError(t, s.Set("sort", ""))
		s.Clear()
		_, ok := s.Get("sort")
		assert.False(t, ok)
		assert.Equal(t, 0, s.Len())
	})
}
