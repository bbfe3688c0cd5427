package headers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/coerce"
)

// Line is one header line as it appears on the wire.
type Line struct {
	Name  string
	Value string
}

func (l Line) String() string { return l.Name + ": " + l.Value }

func (h *Headers) parseHeader(name, value string) error {
	f, declared := h.Catalog().Field(name)
	if !declared {
		var list []string
		if cur, ok := h.Record.Get(name); ok {
			switch c := cur.(type) {
			case []string:
				list = c
			case string:
				list = []string{c}
			}
		}
		return h.Record.Set(name, append(list, value))
	}

	parsed, err := coerce.Parse(f.Elem(), value)
	if err != nil {
		return &MalformedError{Name: f.Name, Value: value, Err: err}
	}
	cur, present := h.Record.Get(f.Name)
	if f.Repeated() {
		list := reflect.MakeSlice(f.Type, 0, 1)
		if present {
			list = reflect.ValueOf(cur)
		}
		return h.Record.Set(f.Name, reflect.Append(list, reflect.ValueOf(parsed)).Interface())
	}
	if present {
		key := catalog.Fold(f.Name)
		prev, _ := h.extras.Get(key)
		h.extras.Put(key, append(prev, value))
		return nil
	}
	return h.Record.Set(f.Name, parsed)
}

// FromWireLines replaces the contents of h with the given lines. Every line
// is applied; values that fail to parse are reported together.
func (h *Headers) FromWireLines(lines []Line) error {
	h.Clear()
	var errs []error
	for _, l := range lines {
		if err := h.parseHeader(l.Name, l.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ToWireLines serializes h: declared headers in catalog order, then other
// headers in insertion order, one line per value.
func (h *Headers) ToWireLines() ([]Line, error) {
	h.init()
	var lines []Line
	seen := make(map[string]struct{})
	for name, v := range h.Record.All() {
		key := catalog.Fold(name)
		if _, dup := seen[key]; dup {
			return nil, &PreconditionError{
				Name:   name,
				Reason: "multiple headers of the same name (headers are case insensitive)",
			}
		}
		seen[key] = struct{}{}

		for _, e := range coerce.Values(v) {
			if s, ok := coerce.Format(e); ok {
				lines = append(lines, Line{Name: name, Value: s})
			}
		}
		if extra, ok := h.extras.Get(key); ok {
			for _, s := range extra {
				lines = append(lines, Line{Name: name, Value: s})
			}
		}
	}
	return lines, nil
}

// FromHeaders adds every header of src to h without clearing h first.
func (h *Headers) FromHeaders(src *Headers) error {
	lines, err := src.ToWireLines()
	if err != nil {
		return err
	}
	h.init()
	var errs []error
	for _, l := range lines {
		if err := h.parseHeader(l.Name, l.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromHTTP replaces the contents of h with a net/http header map. Names are
// applied in sorted order.
func (h *Headers) FromHTTP(src http.Header) error {
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	slices.Sort(names)

	var lines []Line
	for _, name := range names {
		for _, v := range src[name] {
			lines = append(lines, Line{Name: name, Value: v})
		}
	}
	return h.FromWireLines(lines)
}

// ToHTTP copies h into a net/http header map, keeping display names as
// they are instead of canonicalizing them.
func (h *Headers) ToHTTP() (http.Header, error) {
	lines, err := h.ToWireLines()
	if err != nil {
		return nil, err
	}
	out := make(http.Header, len(lines))
	for _, l := range lines {
		out[l.Name] = append(out[l.Name], l.Value)
	}
	return out, nil
}

// Write emits h as "Name: value\r\n" lines, the form used for the headers
// of a multipart part.
func (h *Headers) Write(w io.Writer) error {
	lines, err := h.ToWireLines()
	if err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", l.Name, l.Value); err != nil {
			return err
		}
	}
	return nil
}

// CurlFlags renders h as curl arguments, one -H flag per line.
func (h *Headers) CurlFlags(verbose bool) (string, error) {
	lines, err := h.ToWireLines()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(" -H '")
		b.WriteString(l.Name)
		b.WriteString(": ")
		b.WriteString(Redact(l.Name, l.Value, verbose))
		b.WriteString("'")
	}
	return b.String(), nil
}
