package catalog

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type base struct {
	ID string `key:"id"`
}

type tagged struct {
	base
	Name     string   `key:""`
	Tags     []string `key:"tags"`
	Ignored  string   `key:"-"`
	Untagged string
	hidden   string `key:"hidden"` //nolint:unused
}

type caseClash struct {
	Lower string `key:"etag"`
	Upper string `key:"ETag"`
}

func TestReflectedCatalog(t *testing.T) {
	c, err := Of(reflect.TypeFor[*tagged](), CaseSensitive)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "id", "tags"}, c.Names())
	assert.Equal(t, reflect.TypeFor[tagged](), c.Type())

	f, ok := c.Field("tags")
	require.True(t, ok)
	assert.True(t, f.Repeated())
	assert.Equal(t, reflect.TypeFor[string](), f.Elem())

	_, ok = c.Field("Ignored")
	assert.False(t, ok)
	_, ok = c.Field("Untagged")
	assert.False(t, ok)
	_, ok = c.Field("hidden")
	assert.False(t, ok)
	_, ok = c.Field("ID")
	assert.False(t, ok, "case-sensitive lookup")

	t.Run("accessors reach embedded fields", func(t *testing.T) {
		v := &tagged{}
		id, _ := c.Field("id")
		id.Set(v, "42")
		assert.Equal(t, "42", v.ID)
		assert.Equal(t, "42", id.Get(v))
		id.Set(v, nil)
		assert.Equal(t, "", v.ID)
	})
}

func TestCatalogIsShared(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*Catalog, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = MustOf(reflect.TypeFor[tagged](), IgnoreCase)
		}(i)
	}
	wg.Wait()
	for _, c := range results {
		assert.Same(t, results[0], c)
	}
	assert.NotSame(t, results[0], MustOf(reflect.TypeFor[tagged](), CaseSensitive))
}

func TestIgnoreCase(t *testing.T) {
	c := MustOf(reflect.TypeFor[tagged](), IgnoreCase)
	f, ok := c.Field("TAGS")
	require.True(t, ok)
	assert.Equal(t, "tags", f.Name)
	assert.Equal(t, []string{"id", "Name", "tags"}, c.Names())
}

func TestCollisions(t *testing.T) {
	t.Run("case clash is fine when case-sensitive", func(t *testing.T) {
		c, err := Of(reflect.TypeFor[caseClash](), CaseSensitive)
		require.NoError(t, err)
		assert.Equal(t, []string{"ETag", "etag"}, c.Names())
	})

	t.Run("case clash fails when ignoring case", func(t *testing.T) {
		_, err := Of(reflect.TypeFor[caseClash](), IgnoreCase)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfig))
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Reason, "ignoring case")
	})

	t.Run("register fails at registration time", func(t *testing.T) {
		type clash struct{ A, B string }
		get := func(any) any { return "" }
		set := func(any, any) {}
		s := Schema{Type: reflect.TypeFor[clash](), Fields: []Field{
			{Name: "Accept", Type: reflect.TypeFor[string](), Get: get, Set: set},
			{Name: "accept", Type: reflect.TypeFor[string](), Get: get, Set: set},
		}}
		err := Register(s, IgnoreCase)
		assert.ErrorIs(t, err, ErrConfig)
		assert.Panics(t, func() { MustRegister(s, IgnoreCase) })
	})

	t.Run("exact duplicate", func(t *testing.T) {
		type dup struct{}
		get := func(any) any { return "" }
		set := func(any, any) {}
		_, err := New(Schema{Type: reflect.TypeFor[dup](), Fields: []Field{
			{Name: "x", Type: reflect.TypeFor[string](), Get: get, Set: set},
			{Name: "x", Type: reflect.TypeFor[int](), Get: get, Set: set},
		}}, CaseSensitive)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "two fields have the same name", cfgErr.Reason)
	})
}

type inner struct{ Value string }
type outer struct{ In inner }

func TestRegisteredSchemaWithPromotion(t *testing.T) {
	innerFields := []Field{{
		Name: "value",
		Type: reflect.TypeFor[string](),
		Get:  func(o any) any { return o.(*inner).Value },
		Set: func(o any, v any) {
			s, _ := v.(string)
			o.(*inner).Value = s
		},
	}}
	MustRegister(Schema{
		Type:   reflect.TypeFor[outer](),
		Fields: Promote(innerFields, func(o any) any { return &o.(*outer).In }),
	})

	c := MustOf(reflect.TypeFor[*outer](), CaseSensitive)
	f, ok := c.Field("value")
	require.True(t, ok)
	o := &outer{}
	f.Set(o, "x")
	assert.Equal(t, "x", o.In.Value)
	assert.Equal(t, "x", f.Get(o))
}

type color int

const (
	red color = iota
	green
	blue
	unset
)

func TestEnum(t *testing.T) {
	typ := reflect.TypeFor[color]()
	MustRegisterEnum(typ,
		Enumerant{Value: red, Name: "RED"},
		Enumerant{Value: green, Name: "green"},
		Enumerant{Value: blue},
		Enumerant{Value: unset, Null: true},
	)

	e, ok := EnumOf(typ)
	require.True(t, ok)
	assert.Len(t, e.Enumerants(), 3, "untagged enumerant excluded")

	name, ok := e.Name(green)
	assert.True(t, ok)
	assert.Equal(t, "green", name)
	_, ok = e.Name(blue)
	assert.False(t, ok)

	v, ok := e.Parse("RED")
	assert.True(t, ok)
	assert.Equal(t, red, v)
	v, ok = e.Parse("")
	assert.True(t, ok)
	assert.Equal(t, unset, v)
	_, ok = e.Parse("blue")
	assert.False(t, ok)

	t.Run("two null markers", func(t *testing.T) {
		_, err := NewEnum(typ, Enumerant{Value: red, Null: true}, Enumerant{Value: green, Null: true})
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := NewEnum(typ, Enumerant{Value: 1, Name: "one"})
		assert.ErrorIs(t, err, ErrConfig)
	})
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already lower", in: "content-type", want: "content-type"},
		{name: "mixed ascii", in: "X-Request-ID", want: "x-request-id"},
		{name: "kelvin sign kept", in: "\u212Aey", want: "\u212Aey"},
		{name: "non-ascii letters kept", in: "\u00DCber-Name", want: "\u00DCber-name"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestIgnoreCaseFoldsASCIIOnly(t *testing.T) {
	noop := func(any) any { return nil }
	field := func(name, goName string) Field {
		return Field{
			Name:   name,
			GoName: goName,
			Type:   reflect.TypeFor[string](),
			Get:    noop,
			Set:    func(any, any) {},
		}
	}
	c, err := New(Schema{
		Type:   reflect.TypeFor[string](),
		Fields: []Field{field("\u212Aey", "Kelvin"), field("key", "Key")},
	}, IgnoreCase)
	require.NoError(t, err, "names differing outside ASCII do not collide")

	f, ok := c.Field("KEY")
	require.True(t, ok)
	assert.Equal(t, "Key", f.GoName)
	f, ok = c.Field("\u212AEY")
	require.True(t, ok)
	assert.Equal(t, "Kelvin", f.GoName)
	assert.Equal(t, []string{"key", "\u212Aey"}, c.Names())
}
