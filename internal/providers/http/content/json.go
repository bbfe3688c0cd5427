package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/coerce"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/url"
	"github.com/bytedance/sonic"
)

// JSONType is the media type of JSON bodies.
const JSONType = "application/json; charset=UTF-8"

// ErrNotObject is returned when a JSON body is not an object.
var ErrNotObject = errors.New("json body is not an object")

var jsonAPI = sonic.Config{UseNumber: true}.Froze()

// JSON encodes src as a JSON object whose members follow the entry order
// of src. Nested sources are encoded the same way and enums by wire name.
func JSON(src Source) ([]byte, error) {
	buf := []byte{'{'}
	first := true
	for name, v := range src.All() {
		if v == nil {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false

		key, err := sonic.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')

		val, err := marshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", name, err)
		}
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

func marshalValue(v any) ([]byte, error) {
	if s, ok := v.(Source); ok {
		return JSON(s)
	}
	if e, ok := catalog.EnumOf(reflect.TypeOf(v)); ok {
		name, _ := e.Name(v)
		if name == "" {
			return []byte("null"), nil
		}
		return sonic.Marshal(name)
	}
	return sonic.Marshal(v)
}

// DecodeJSON decodes a JSON object into dst. Members matching declared
// fields are converted to the field type; the rest are stored as decoded,
// numbers as json.Number, in name order.
func DecodeJSON(data []byte, dst url.QueryTarget) error {
	var obj map[string]any
	if err := jsonAPI.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if obj == nil {
		return ErrNotObject
	}

	cat := dst.Catalog()
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		v := obj[name]
		f, declared := cat.Field(name)
		if !declared || v == nil {
			if err := dst.Set(name, v); err != nil {
				return err
			}
			continue
		}
		conv, err := convertJSON(f, v)
		if err != nil {
			return fmt.Errorf("decode json field %q: %w", f.Name, err)
		}
		if err := dst.Set(f.Name, conv); err != nil {
			return err
		}
	}
	return nil
}

func convertJSON(f *catalog.Field, v any) (any, error) {
	arr, isArray := v.([]any)
	if !f.Repeated() || !isArray {
		return scalarJSON(f.Elem(), v)
	}
	out := reflect.MakeSlice(f.Type, 0, len(arr))
	for _, e := range arr {
		conv, err := scalarJSON(f.Elem(), e)
		if err != nil {
			return nil, err
		}
		out = reflect.Append(out, reflect.ValueOf(conv))
	}
	return out.Interface(), nil
}

func scalarJSON(t reflect.Type, v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		return coerce.Parse(t, x.String())
	case string:
		return coerce.Parse(t, x)
	case bool:
		return coerce.Parse(t, fmt.Sprint(x))
	}
	return coerce.Assign(t, v)
}
