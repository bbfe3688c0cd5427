package coerce

import (
	"errors"
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

const (
	low level = iota
	high
	none
)

func init() {
	catalog.MustRegisterEnum(reflect.TypeFor[level](),
		catalog.Enumerant{Value: low, Name: "low"},
		catalog.Enumerant{Value: high, Name: "high"},
		catalog.Enumerant{Value: none, Null: true},
	)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		typ   reflect.Type
		input string
		want  any
	}{
		{"string", reflect.TypeFor[string](), "abc", "abc"},
		{"bool", reflect.TypeFor[bool](), "true", true},
		{"int64", reflect.TypeFor[int64](), "-42", int64(-42)},
		{"uint8", reflect.TypeFor[uint8](), "255", uint8(255)},
		{"float64", reflect.TypeFor[float64](), "1.5", 1.5},
		{"pointer", reflect.TypeFor[*int](), "7", func() *int { n := 7; return &n }()},
		{"interface", reflect.TypeFor[any](), "x", "x"},
		{"enum", reflect.TypeFor[level](), "high", high},
		{"enum null", reflect.TypeFor[level](), "", none},
		{"time", reflect.TypeFor[time.Time](), "2024-01-02T03:04:05Z", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"big int", reflect.TypeFor[*big.Int](), "123456789012345678901234567890", func() *big.Int {
			n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
			return n
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.typ, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(reflect.TypeFor[uint8](), "256")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "256", pe.Input)

	_, err = Parse(reflect.TypeFor[level](), "medium")
	assert.Error(t, err)

	_, err = Parse(reflect.TypeFor[map[string]string](), "x")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestFormat(t *testing.T) {
	n := int64(12)
	var nilPtr *int64

	s, ok := Format(high)
	assert.True(t, ok)
	assert.Equal(t, "high", s)

	s, _ = Format(&n)
	assert.Equal(t, "12", s)
	s, _ = Format(2.50)
	assert.Equal(t, "2.5", s)
	s, _ = Format(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, "2024-01-02T03:04:05Z", s)

	_, ok = Format(nil)
	assert.False(t, ok)
	_, ok = Format(nilPtr)
	assert.False(t, ok)
}

func TestValues(t *testing.T) {
	assert.Equal(t, []any{"a", "b"}, Values([]string{"a", "b"}))
	assert.Equal(t, []any{1, 2}, Values([2]int{1, 2}))
	assert.Equal(t, []any{"x"}, Values("x"))
	assert.Equal(t, []any{[]byte("raw")}, Values([]byte("raw")))
	assert.Nil(t, Values(nil))
	assert.Nil(t, Values([]string(nil)))
}

func TestAssign(t *testing.T) {
	t.Run("assignable", func(t *testing.T) {
		v, err := Assign(reflect.TypeFor[string](), "x")
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})

	t.Run("value to pointer and back", func(t *testing.T) {
		v, err := Assign(reflect.TypeFor[*int64](), int64(3))
		require.NoError(t, err)
		assert.Equal(t, int64(3), *v.(*int64))

		n := int64(4)
		v, err = Assign(reflect.TypeFor[int64](), &n)
		require.NoError(t, err)
		assert.Equal(t, int64(4), v)
	})

	t.Run("integer widths", func(t *testing.T) {
		v, err := Assign(reflect.TypeFor[int64](), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)

		_, err = Assign(reflect.TypeFor[uint8](), 300)
		assert.ErrorIs(t, err, ErrMismatch)
		_, err = Assign(reflect.TypeFor[uint](), -1)
		assert.ErrorIs(t, err, ErrMismatch)
	})

	t.Run("slices", func(t *testing.T) {
		v, err := Assign(reflect.TypeFor[[]string](), "one")
		require.NoError(t, err)
		assert.Equal(t, []string{"one"}, v)

		v, err = Assign(reflect.TypeFor[[]int64](), []any{1, int64(2)})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, v)

		_, err = Assign(reflect.TypeFor[[]int64](), []any{"x"})
		assert.ErrorIs(t, err, ErrMismatch)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := Assign(reflect.TypeFor[string](), 12)
		assert.ErrorIs(t, err, ErrMismatch)
		_, err = Assign(reflect.TypeFor[bool](), "true")
		assert.ErrorIs(t, err, ErrMismatch)
	})

	t.Run("nil", func(t *testing.T) {
		v, err := Assign(reflect.TypeFor[[]string](), nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
