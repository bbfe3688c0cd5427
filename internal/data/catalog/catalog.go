package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Mode selects how wire names are compared.
type Mode uint8

const (
	CaseSensitive Mode = iota
	IgnoreCase
)

func (m Mode) String() string {
	if m == IgnoreCase {
		return "ignore-case"
	}
	return "case-sensitive"
}

// ErrConfig marks invalid name mappings.
var ErrConfig = errors.New("catalog configuration error")

// ConfigError describes an invalid catalog.
type ConfigError struct {
	Type   reflect.Type
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("catalog %v: %s: %q", e.Type, e.Reason, e.Name)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Field describes one declared field.
type Field struct {
	// Name is the wire name, also used as the display name.
	Name   string
	GoName string
	Type   reflect.Type
	Get    func(owner any) any
	// Set receives a value already converted to Type, or nil to clear.
	Set func(owner any, v any)
}

// Repeated reports whether the field holds a sequence of values. Byte
// slices are single values.
func (f *Field) Repeated() bool {
	return f.Type.Kind() == reflect.Slice && f.Type.Elem().Kind() != reflect.Uint8
}

// Elem returns the element type of a repeated field, or the field type.
func (f *Field) Elem() reflect.Type {
	if f.Repeated() {
		return f.Type.Elem()
	}
	return f.Type
}

// Schema is a hand-written field table for a record type.
type Schema struct {
	Type   reflect.Type
	Fields []Field
}

// Promote exposes the fields of an embedded record through its owner.
// project returns the embedded value (a pointer) for an owner.
func Promote(fields []Field, project func(owner any) any) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		get, set := f.Get, f.Set
		f.Get = func(owner any) any { return get(project(owner)) }
		f.Set = func(owner any, v any) { set(project(owner), v) }
		out[i] = f
	}
	return out
}

// Catalog is the immutable field table of a type in one mode.
type Catalog struct {
	typ    reflect.Type
	mode   Mode
	names  []string
	fields map[string]*Field
}

// New builds a catalog from a schema without caching it.
func New(s Schema, mode Mode) (*Catalog, error) {
	fields := append([]Field(nil), s.Fields...)
	c := &Catalog{
		typ:    s.Type,
		mode:   mode,
		names:  make([]string, 0, len(s.Fields)),
		fields: make(map[string]*Field, len(s.Fields)),
	}
	for i := range fields {
		f := &fields[i]
		if f.Name == "" {
			return nil, &ConfigError{Type: s.Type, Name: f.GoName, Reason: "empty field name"}
		}
		if f.Get == nil || f.Set == nil || f.Type == nil {
			return nil, &ConfigError{Type: s.Type, Name: f.Name, Reason: "incomplete accessor"}
		}
		key := c.key(f.Name)
		if prev, dup := c.fields[key]; dup {
			reason := "two fields have the same name"
			if prev.Name != f.Name {
				reason = "two fields have the same name ignoring case (" + prev.Name + ")"
			}
			return nil, &ConfigError{Type: s.Type, Name: f.Name, Reason: reason}
		}
		c.fields[key] = f
		c.names = append(c.names, f.Name)
	}
	if mode == IgnoreCase {
		sort.Slice(c.names, func(i, j int) bool {
			li, lj := Fold(c.names[i]), Fold(c.names[j])
			if li != lj {
				return li < lj
			}
			return c.names[i] < c.names[j]
		})
	} else {
		sort.Strings(c.names)
	}
	return c, nil
}

func (c *Catalog) key(name string) string {
	if c.mode == IgnoreCase {
		return Fold(name)
	}
	return name
}

// Fold lower-cases the ASCII letters of a wire name. Other bytes, including
// multi-byte runes, are kept as they are.
func Fold(name string) string {
	i := 0
	for i < len(name) && (name[i] < 'A' || name[i] > 'Z') {
		i++
	}
	if i == len(name) {
		return name
	}
	b := []byte(name)
	for ; i < len(b); i++ {
		if c := b[i]; 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// Field looks up a field by wire name using the catalog's mode.
func (c *Catalog) Field(name string) (*Field, bool) {
	f, ok := c.fields[c.key(name)]
	return f, ok
}

// Names returns the sorted wire names.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Fields returns the fields in name order.
func (c *Catalog) Fields() []*Field {
	out := make([]*Field, len(c.names))
	for i, n := range c.names {
		out[i] = c.fields[c.key(n)]
	}
	return out
}

func (c *Catalog) Len() int           { return len(c.names) }
func (c *Catalog) Mode() Mode         { return c.mode }
func (c *Catalog) IgnoreCase() bool   { return c.mode == IgnoreCase }
func (c *Catalog) Type() reflect.Type { return c.typ }

type cacheKey struct {
	typ  reflect.Type
	mode Mode
}

type cacheEntry struct {
	once sync.Once
	cat  *Catalog
	err  error
}

var (
	cache sync.Map // cacheKey -> *cacheEntry

	schemasMu sync.RWMutex
	schemas   = map[reflect.Type]Schema{}
)

// Register installs a hand-written schema and builds its catalog for each
// mode (CaseSensitive when none are given), so invalid tables fail here.
// Catalogs already built for the type from reflection are replaced.
func Register(s Schema, modes ...Mode) error {
	s.Type = structType(s.Type)
	if len(modes) == 0 {
		modes = []Mode{CaseSensitive}
	}
	for _, mode := range modes {
		if _, err := New(s, mode); err != nil {
			return err
		}
	}

	schemasMu.Lock()
	schemas[s.Type] = s
	schemasMu.Unlock()
	for _, mode := range []Mode{CaseSensitive, IgnoreCase} {
		cache.Delete(cacheKey{typ: s.Type, mode: mode})
	}

	for _, mode := range modes {
		if _, err := Of(s.Type, mode); err != nil {
			return err
		}
	}
	return nil
}

// Registered reports whether a hand-written schema is installed for t.
func Registered(t reflect.Type) bool {
	schemasMu.RLock()
	defer schemasMu.RUnlock()
	_, ok := schemas[structType(t)]
	return ok
}

// MustRegister is Register for package initialization.
func MustRegister(s Schema, modes ...Mode) {
	if err := Register(s, modes...); err != nil {
		panic(err)
	}
}

// Of returns the shared catalog for t, building it on first use.
// Pointer types resolve to their element type.
func Of(t reflect.Type, mode Mode) (*Catalog, error) {
	t = structType(t)
	k := cacheKey{typ: t, mode: mode}
	v, ok := cache.Load(k)
	if !ok {
		v, _ = cache.LoadOrStore(k, &cacheEntry{})
	}
	e := v.(*cacheEntry)
	e.once.Do(func() {
		e.cat, e.err = build(t, mode)
	})
	return e.cat, e.err
}

// MustOf is Of for types whose catalog is known to be valid.
func MustOf(t reflect.Type, mode Mode) *Catalog {
	c, err := Of(t, mode)
	if err != nil {
		panic(err)
	}
	return c
}

func build(t reflect.Type, mode Mode) (*Catalog, error) {
	schemasMu.RLock()
	s, ok := schemas[t]
	schemasMu.RUnlock()
	if !ok {
		s = Reflect(t)
	}
	return New(s, mode)
}

func structType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
