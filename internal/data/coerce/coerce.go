// Package coerce converts between wire strings and the declared types of
// catalog fields.
package coerce

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
)

var (
	// ErrUnsupported is returned for types with no string form.
	ErrUnsupported = errors.New("unsupported type")
	// ErrMismatch is returned by Assign when a value cannot take a type.
	ErrMismatch = errors.New("type mismatch")
)

var textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// ParseError reports a string that does not parse as the requested type.
type ParseError struct {
	Type  reflect.Type
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q as %v: %v", e.Input, e.Type, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse converts s to a value of type t. Supported are registered enums,
// encoding.TextUnmarshaler implementations (time.Time, *big.Int, *big.Float),
// strings, bools, integers, floats, pointers to those, and interface types,
// which receive s unchanged.
func Parse(t reflect.Type, s string) (any, error) {
	if e, ok := catalog.EnumOf(t); ok {
		v, ok := e.Parse(s)
		if !ok {
			return nil, &ParseError{Type: t, Input: s, Err: errors.New("unknown enum value")}
		}
		return v, nil
	}

	if t.Kind() == reflect.Pointer && t.Implements(textUnmarshaler) {
		p := reflect.New(t.Elem())
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, &ParseError{Type: t, Input: s, Err: err}
		}
		return p.Interface(), nil
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(textUnmarshaler) {
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, &ParseError{Type: t, Input: s, Err: err}
		}
		return p.Elem().Interface(), nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, &ParseError{Type: t, Input: s, Err: err}
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return nil, &ParseError{Type: t, Input: s, Err: err}
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return nil, &ParseError{Type: t, Input: s, Err: err}
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return nil, &ParseError{Type: t, Input: s, Err: err}
		}
		v.SetFloat(f)
	case reflect.Pointer:
		elem, err := Parse(t.Elem(), s)
		if err != nil {
			return nil, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(elem))
		return p.Interface(), nil
	case reflect.Interface:
		if !reflect.TypeFor[string]().Implements(t) {
			return nil, &ParseError{Type: t, Input: s, Err: ErrUnsupported}
		}
		v.Set(reflect.ValueOf(s))
	default:
		return nil, &ParseError{Type: t, Input: s, Err: ErrUnsupported}
	}
	return v.Interface(), nil
}

// Format renders v as a wire string. It reports false for nil values.
func Format(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if e, ok := catalog.EnumOf(rv.Type()); ok {
		if name, ok := e.Name(v); ok {
			return name, true
		}
	}
	if m, ok := v.(encoding.TextMarshaler); ok {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		if b, err := m.MarshalText(); err == nil {
			return string(b), true
		}
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), true
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", false
		}
		return Format(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}

// Values flattens a slice or array into its elements. Other values, byte
// slices included, are returned as a one-element list; nil yields nil.
func Values(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return []any{v}
		}
		if rv.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}
