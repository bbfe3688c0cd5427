// Package record merges the declared fields of a type with an overflow store
// for keys the type does not declare, exposing both as one ordered mapping.
//
// Concrete types embed Record and bind it to themselves:
//
//	type Query struct {
//	    record.Record
//	    Terms []string `key:"q"`
//	}
//
//	func NewQuery() *Query {
//	    q := &Query{}
//	    q.MustBind(q, catalog.CaseSensitive)
//	    return q
//	}
//
// Names found in the type's catalog always resolve to the declared field;
// only undeclared names reach the overflow store.
package record

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/data/arraymap"
	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/coerce"
)

var (
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrDeclaredField = errors.New("declared field cannot be removed")
)

// TypeMismatchError reports a value that does not fit a declared field.
type TypeMismatchError struct {
	Name string
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: cannot assign %v to %v", e.Name, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// Entry is one name/value pair of a record.
type Entry struct {
	Name  string
	Value any
}

// Record is the generic data model. The zero value is a standalone,
// case-sensitive record with no declared fields.
type Record struct {
	owner   any
	catalog *catalog.Catalog
	unknown *arraymap.Map[string, any]
	// zeroSet holds declared scalar fields explicitly assigned their zero
	// value, which are present even though they read as zero.
	zeroSet map[string]struct{}
}

// New creates a standalone record.
func New(mode catalog.Mode) *Record {
	r := &Record{}
	r.MustBind(r, mode)
	return r
}

// Bind attaches the record to owner, a pointer to the struct embedding it,
// and loads the owner's catalog.
func (r *Record) Bind(owner any, mode catalog.Mode) error {
	cat, err := catalog.Of(reflect.TypeOf(owner), mode)
	if err != nil {
		return fmt.Errorf("bind %T: %w", owner, err)
	}
	r.owner = owner
	r.catalog = cat
	if r.unknown == nil {
		r.unknown = arraymap.New[string, any](0)
	}
	return nil
}

// MustBind is Bind for types whose catalog is registered at init.
func (r *Record) MustBind(owner any, mode catalog.Mode) {
	if err := r.Bind(owner, mode); err != nil {
		panic(err)
	}
}

// Bound reports whether Bind has been called.
func (r *Record) Bound() bool {
	return r.catalog != nil
}

func (r *Record) init() {
	if r.catalog == nil {
		r.MustBind(r, catalog.CaseSensitive)
	}
}

// Catalog returns the declared field table.
func (r *Record) Catalog() *catalog.Catalog {
	r.init()
	return r.catalog
}

func (r *Record) key(name string) string {
	if r.catalog.IgnoreCase() {
		return catalog.Fold(name)
	}
	return name
}

// present reports whether declared field f holding v has a value. Nil
// slices, maps and pointers are absent. Other zero values are absent unless
// they were stored through Set.
func (r *Record) present(f *catalog.Field, v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	if !rv.IsZero() {
		return true
	}
	_, ok := r.zeroSet[f.Name]
	return ok
}

func (r *Record) markZero(f *catalog.Field, v any) {
	if v != nil && reflect.ValueOf(v).IsZero() {
		if r.zeroSet == nil {
			r.zeroSet = make(map[string]struct{})
		}
		r.zeroSet[f.Name] = struct{}{}
		return
	}
	delete(r.zeroSet, f.Name)
}

// Get returns the value for name. A declared field is absent while it holds
// nil, or a zero value that was not stored through Set.
func (r *Record) Get(name string) (any, bool) {
	r.init()
	if f, ok := r.catalog.Field(name); ok {
		v := f.Get(r.owner)
		if !r.present(f, v) {
			return nil, false
		}
		return v, true
	}
	return r.unknown.Get(r.key(name))
}

// Set stores v under name. Values for declared fields are converted with
// coerce.Assign; nil clears the field.
func (r *Record) Set(name string, v any) error {
	_, err := r.Put(name, v)
	return err
}

// Put is Set returning the previous value.
func (r *Record) Put(name string, v any) (any, error) {
	r.init()
	if f, ok := r.catalog.Field(name); ok {
		conv, err := coerce.Assign(f.Type, v)
		if err != nil {
			return nil, &TypeMismatchError{Name: f.Name, Want: f.Type, Got: reflect.TypeOf(v)}
		}
		prev := f.Get(r.owner)
		if !r.present(f, prev) {
			prev = nil
		}
		f.Set(r.owner, conv)
		r.markZero(f, conv)
		return prev, nil
	}
	prev, _ := r.unknown.Put(r.key(name), v)
	return prev, nil
}

// Remove deletes an overflow key. Declared fields cannot be removed; set them
// to nil instead.
func (r *Record) Remove(name string) (any, error) {
	r.init()
	if f, ok := r.catalog.Field(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrDeclaredField, f.Name)
	}
	v, _ := r.unknown.Remove(r.key(name))
	return v, nil
}

// Clear resets every declared field and empties the overflow store.
func (r *Record) Clear() {
	r.init()
	for _, f := range r.catalog.Fields() {
		f.Set(r.owner, nil)
	}
	r.zeroSet = nil
	r.unknown.Clear()
}

// All yields present declared fields in catalog order, then overflow entries
// in insertion order. Declared fields are reported under their catalog name.
func (r *Record) All() iter.Seq2[string, any] {
	r.init()
	return func(yield func(string, any) bool) {
		for _, f := range r.catalog.Fields() {
			v := f.Get(r.owner)
			if !r.present(f, v) {
				continue
			}
			if !yield(f.Name, v) {
				return
			}
		}
		for k, v := range r.unknown.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Entries collects All.
func (r *Record) Entries() []Entry {
	var out []Entry
	for k, v := range r.All() {
		out = append(out, Entry{Name: k, Value: v})
	}
	return out
}

// Len counts present entries.
func (r *Record) Len() int {
	n := 0
	for range r.All() {
		n++
	}
	return n
}

// Unknown returns the overflow store.
func (r *Record) Unknown() *arraymap.Map[string, any] {
	r.init()
	return r.unknown
}

// SetUnknown replaces the overflow store.
func (r *Record) SetUnknown(m *arraymap.Map[string, any]) {
	r.init()
	if m == nil {
		m = arraymap.New[string, any](0)
	}
	r.unknown = m
}

// CloneTo completes the copy of an owning type. dst lives inside owner, which
// must already hold a shallow copy of the source owner. Slices of declared
// fields are copied one level and the overflow store is copied deeply.
func (r *Record) CloneTo(dst *Record, owner any) {
	r.init()
	dst.owner = owner
	dst.catalog = r.catalog
	dst.zeroSet = nil
	for k := range r.zeroSet {
		if dst.zeroSet == nil {
			dst.zeroSet = make(map[string]struct{}, len(r.zeroSet))
		}
		dst.zeroSet[k] = struct{}{}
	}
	dst.unknown = arraymap.New[string, any](r.unknown.Len())
	for k, v := range r.unknown.All() {
		dst.unknown.Add(k, deepCopy(v))
	}
	for _, f := range r.catalog.Fields() {
		if !f.Repeated() {
			continue
		}
		if v := f.Get(owner); v != nil {
			f.Set(owner, copySlice(v))
		}
	}
}

// Clone returns a standalone copy. Declared fields of an owning type become
// overflow entries of the copy.
func (r *Record) Clone() *Record {
	r.init()
	c := New(r.catalog.Mode())
	for k, v := range r.All() {
		if _, declared := r.catalog.Field(k); declared {
			v = copySlice(v)
		} else {
			v = deepCopy(v)
		}
		c.unknown.Add(k, v)
	}
	return c
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	for k, v := range r.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, v)
		i++
	}
	b.WriteByte('}')
	return b.String()
}

func copySlice(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return v
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)
	return out.Interface()
}

func deepCopy(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *Record:
		return x.Clone()
	case *arraymap.Map[string, any]:
		c := arraymap.New[string, any](x.Len())
		for k, e := range x.All() {
			c.Add(k, deepCopy(e))
		}
		return c
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(copyValue(rv.Index(i)))
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out.SetMapIndex(it.Key(), copyValue(it.Value()))
		}
		return out.Interface()
	}
	return v
}

func copyValue(v reflect.Value) reflect.Value {
	if !v.CanInterface() {
		return v
	}
	c := deepCopy(v.Interface())
	if c == nil {
		return reflect.Zero(v.Type())
	}
	return reflect.ValueOf(c)
}
