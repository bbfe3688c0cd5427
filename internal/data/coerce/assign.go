package coerce

import (
	"reflect"
)

// Assign converts v so it can be stored in a field of type t. Accepted are
// values assignable to t, a value for a pointer field (and the reverse),
// integers that fit the target width, same-kind named types, and for slice
// fields either a single element or a slice of convertible elements.
// nil yields nil.
func Assign(t reflect.Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	out, ok := convert(t, reflect.ValueOf(v))
	if !ok {
		return nil, ErrMismatch
	}
	return out.Interface(), nil
}

func convert(t reflect.Type, rv reflect.Value) (reflect.Value, bool) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Zero(t), true
		}
		rv = rv.Elem()
	}
	vt := rv.Type()

	switch {
	case vt.AssignableTo(t):
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, true

	case t.Kind() == reflect.Pointer && vt.Kind() != reflect.Pointer:
		elem, ok := convert(t.Elem(), rv)
		if !ok {
			return reflect.Value{}, false
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, true

	case vt.Kind() == reflect.Pointer && t.Kind() != reflect.Pointer:
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		return convert(t, rv.Elem())

	case isInt(t.Kind()) && isInt(vt.Kind()):
		out := rv.Convert(t)
		if !out.Convert(vt).Equal(rv) || signFlipped(rv, out) {
			return reflect.Value{}, false
		}
		return out, true

	case t.Kind() == vt.Kind() && isScalar(t.Kind()) && vt.ConvertibleTo(t):
		return rv.Convert(t), true

	case t.Kind() == reflect.Slice && (vt.Kind() == reflect.Slice || vt.Kind() == reflect.Array):
		if vt.Kind() == reflect.Slice && rv.IsNil() {
			return reflect.Zero(t), true
		}
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, ok := convert(t.Elem(), rv.Index(i))
			if !ok {
				return reflect.Value{}, false
			}
			out.Index(i).Set(elem)
		}
		return out, true

	case t.Kind() == reflect.Slice:
		elem, ok := convert(t.Elem(), rv)
		if !ok {
			return reflect.Value{}, false
		}
		out := reflect.MakeSlice(t, 1, 1)
		out.Index(0).Set(elem)
		return out, true
	}
	return reflect.Value{}, false
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func signFlipped(from, to reflect.Value) bool {
	fs, ts := isSigned(from.Kind()), isSigned(to.Kind())
	switch {
	case fs && !ts:
		return from.Int() < 0
	case !fs && ts:
		return to.Int() < 0
	}
	return false
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool, reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
