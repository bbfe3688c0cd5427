package catalog

import (
	"reflect"
	"strings"
)

// TagName is the struct tag read by Reflect.
const TagName = "key"

// Reflect derives a schema from `key` struct tags. Accessors expect a pointer
// to t as owner. Fields of anonymous embedded structs are included; untagged
// fields and fields tagged "-" are skipped, and an empty tag name defaults to
// the Go field name.
func Reflect(t reflect.Type) Schema {
	t = structType(t)
	s := Schema{Type: t}
	if t == nil || t.Kind() != reflect.Struct {
		return s
	}
	collect(t, nil, &s.Fields)
	return s
}

func collect(t reflect.Type, index []int, out *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		idx := append(append([]int(nil), index...), i)
		tag, tagged := sf.Tag.Lookup(TagName)

		if sf.Anonymous && !tagged && sf.Type.Kind() == reflect.Struct {
			collect(sf.Type, idx, out)
			continue
		}
		if !tagged || !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		*out = append(*out, Field{
			Name:   name,
			GoName: sf.Name,
			Type:   sf.Type,
			Get:    fieldGetter(idx),
			Set:    fieldSetter(idx),
		})
	}
}

func fieldGetter(idx []int) func(owner any) any {
	return func(owner any) any {
		return reflect.ValueOf(owner).Elem().FieldByIndex(idx).Interface()
	}
}

func fieldSetter(idx []int) func(owner any, v any) {
	return func(owner any, v any) {
		f := reflect.ValueOf(owner).Elem().FieldByIndex(idx)
		if v == nil {
			f.SetZero()
			return
		}
		f.Set(reflect.ValueOf(v))
	}
}
