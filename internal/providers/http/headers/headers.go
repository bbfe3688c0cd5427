package headers

import (
	"reflect"

	"github.com/GriffinCanCode/httpdata/internal/data/arraymap"
	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/coerce"
	"github.com/GriffinCanCode/httpdata/internal/data/record"
)

// Headers is an HTTP header collection.
type Headers struct {
	record.Record

	accept            []string
	acceptEncoding    []string
	authorization     []string
	cacheControl      []string
	contentEncoding   []string
	contentLength     []int64
	contentMD5        []string
	contentRange      []string
	contentType       []string
	cookie            []string
	date              []string
	etag              []string
	expires           []string
	ifModifiedSince   []string
	ifMatch           []string
	ifNoneMatch       []string
	ifUnmodifiedSince []string
	ifRange           []string
	lastModified      []string
	location          []string
	mimeVersion       []string
	rangeHeader       []string
	retryAfter        []string
	userAgent         []string
	warning           []string
	authenticate      []string
	age               []int64

	// later occurrences of scalar fields, keyed by lower-cased name
	extras *arraymap.Map[string, []string]
}

// Embedder is implemented by Headers and every struct embedding it.
type Embedder interface {
	headers() *Headers
}

func (h *Headers) headers() *Headers { return h }

func init() {
	catalog.MustRegister(catalog.Schema{
		Type:   reflect.TypeFor[Headers](),
		Fields: standardFields(),
	}, catalog.IgnoreCase)
}

// Register installs the catalog of a type embedding Headers: the standard
// header fields plus the type's own `key` tagged fields. A tagged name that
// equals a standard header ignoring case is a configuration error.
func Register(t reflect.Type) error {
	s := catalog.Reflect(t)
	s.Fields = append(standardFields(), s.Fields...)
	return catalog.Register(s, catalog.IgnoreCase)
}

// MustRegister is Register for package initialization.
func MustRegister(t reflect.Type) {
	if err := Register(t); err != nil {
		panic(err)
	}
}

// New creates headers with Accept-Encoding set to gzip. A zero Headers has
// no defaults and types embedding Headers must call Bind.
func New() *Headers {
	h := &Headers{}
	Bind(h)
	return h
}

// Bind attaches dst's record to dst and applies the defaults. A type
// embedding Headers that was never passed to Register is registered on its
// first Bind; a tagged name clashing with a standard header panics with a
// *catalog.ConfigError.
func Bind(dst Embedder) {
	if t := reflect.TypeOf(dst); !catalog.Registered(t) {
		MustRegister(t)
	}
	h := dst.headers()
	h.Record.MustBind(dst, catalog.IgnoreCase)
	h.extras = arraymap.New[string, []string](0)
	h.acceptEncoding = []string{"gzip"}
}

func (h *Headers) init() {
	if !h.Record.Bound() {
		h.Record.MustBind(h, catalog.IgnoreCase)
	}
	if h.extras == nil {
		h.extras = arraymap.New[string, []string](0)
	}
}

// Get returns the value of a header: the declared field, or the []string of
// an undeclared header.
func (h *Headers) Get(name string) (any, bool) {
	h.init()
	return h.Record.Get(name)
}

// Set replaces the value of a header. Declared headers take a value of
// their type, a single element or a []any; nil removes the header.
func (h *Headers) Set(name string, v any) error {
	h.init()
	h.extras.Remove(catalog.Fold(name))
	return h.Record.Set(name, v)
}

// Add appends one occurrence of a header, parsing value into the declared
// type when the header is declared.
func (h *Headers) Add(name, value string) error {
	h.init()
	return h.parseHeader(name, value)
}

// Del removes every occurrence of a header.
func (h *Headers) Del(name string) {
	h.init()
	h.extras.Remove(catalog.Fold(name))
	if _, declared := h.Catalog().Field(name); declared {
		_ = h.Record.Set(name, nil)
		return
	}
	_, _ = h.Record.Remove(name)
}

// Clear removes every header, defaults included.
func (h *Headers) Clear() {
	h.init()
	h.Record.Clear()
	h.extras.Clear()
}

// FirstValue returns the first value of a header.
func (h *Headers) FirstValue(name string) (string, bool) {
	h.init()
	v, ok := h.Get(name)
	if !ok {
		return "", false
	}
	for _, e := range coerce.Values(v) {
		if s, ok := coerce.Format(e); ok {
			return s, true
		}
	}
	return "", false
}

// AllValues returns every value of a header in order.
func (h *Headers) AllValues(name string) []string {
	h.init()
	var out []string
	if v, ok := h.Get(name); ok {
		for _, e := range coerce.Values(v) {
			if s, ok := coerce.Format(e); ok {
				out = append(out, s)
			}
		}
	}
	if extra, ok := h.extras.Get(catalog.Fold(name)); ok {
		out = append(out, extra...)
	}
	return out
}

// Clone returns a copy of h. Embedding types copy themselves and call CopyTo.
func (h *Headers) Clone() *Headers {
	c := &Headers{}
	h.CopyTo(c, c)
	return c
}

// CopyTo copies h into dst, which is embedded in owner.
func (h *Headers) CopyTo(dst *Headers, owner Embedder) {
	h.init()
	*dst = *h
	h.Record.CloneTo(&dst.Record, owner)
	dst.extras = arraymap.New[string, []string](h.extras.Len())
	for k, v := range h.extras.All() {
		dst.extras.Add(k, append([]string(nil), v...))
	}
}
