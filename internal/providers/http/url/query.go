package url

import (
	"reflect"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/coerce"
	"github.com/GriffinCanCode/httpdata/internal/escape"
)

// QueryTarget receives parsed parameters. *record.Record and every type
// embedding it implement it.
type QueryTarget interface {
	Catalog() *catalog.Catalog
	Get(name string) (any, bool)
	Set(name string, v any) error
}

// ParseQuery parses name=value pairs separated by '&' into dst. Declared
// fields receive typed values, appended for slice fields; other names collect
// their values in a []string. Empty names are ignored.
func ParseQuery(raw string, dst QueryTarget, decode bool) error {
	return parseQuery(raw, raw, dst, decode)
}

// parseQuery parses query into dst, reporting errors against input, the
// text the query was taken from.
func parseQuery(input, query string, dst QueryTarget, decode bool) error {
	cat := dst.Catalog()
	for _, pair := range strings.Split(query, "&") {
		name, value, _ := strings.Cut(pair, "=")
		if decode {
			var err error
			if name, err = escape.DecodeURI(name); err != nil {
				return malformed(input, pair, "invalid query name", err)
			}
			if value, err = escape.DecodeURI(value); err != nil {
				return malformed(input, pair, "invalid query value", err)
			}
		}
		if name == "" {
			continue
		}

		f, declared := cat.Field(name)
		if !declared {
			if err := appendUnknown(dst, name, value); err != nil {
				return err
			}
			continue
		}
		parsed, err := coerce.Parse(f.Elem(), value)
		if err != nil {
			return &MalformedError{Input: input, Offending: pair, Reason: "invalid value for " + f.Name, Err: err}
		}
		if f.Repeated() {
			parsed = appendValue(f.Type, dst, f.Name, parsed)
		}
		if err := dst.Set(f.Name, parsed); err != nil {
			return err
		}
	}
	return nil
}

func appendValue(t reflect.Type, dst QueryTarget, name string, v any) any {
	list := reflect.MakeSlice(t, 0, 1)
	if cur, ok := dst.Get(name); ok {
		list = reflect.ValueOf(cur)
	}
	return reflect.Append(list, reflect.ValueOf(v)).Interface()
}

func appendUnknown(dst QueryTarget, name, value string) error {
	var list []string
	if cur, ok := dst.Get(name); ok {
		switch c := cur.(type) {
		case []string:
			list = c
		case string:
			list = []string{c}
		}
	}
	return dst.Set(name, append(list, value))
}

// GetFirst returns the value of a parameter, or its first element when the
// value is a slice.
func (u *URL) GetFirst(name string) (any, bool) {
	v, ok := u.Get(name)
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		if rv.Len() == 0 {
			return nil, false
		}
		return rv.Index(0).Interface(), true
	}
	return v, true
}

// GetFirstString is GetFirst formatted as a string.
func (u *URL) GetFirstString(name string) (string, bool) {
	v, ok := u.GetFirst(name)
	if !ok {
		return "", false
	}
	return coerce.Format(v)
}

// GetAll returns every value of a parameter.
func (u *URL) GetAll(name string) []any {
	v, ok := u.Get(name)
	if !ok {
		return nil
	}
	return coerce.Values(v)
}
