package content

import (
	"iter"

	"github.com/GriffinCanCode/httpdata/internal/escape"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/url"
)

// FormType is the media type of URL-encoded bodies.
const FormType = "application/x-www-form-urlencoded"

// Source yields name/value entries in order. *record.Record, every type
// embedding it and *arraymap.Map[string, any] implement it.
type Source interface {
	All() iter.Seq2[string, any]
}

type formOptions struct {
	escape func(string) string
}

// FormOption configures URLEncoded.
type FormOption func(*formOptions)

// WithPathEscaping escapes with the URI path escaper, leaving path-safe
// characters such as '@' and ':' readable and encoding spaces as %20.
func WithPathEscaping() FormOption {
	return func(o *formOptions) {
		o.escape = escape.EscapeURIPath
	}
}

// URLEncoded encodes src as a form body. Names and values are escaped with
// the form escaper unless an option says otherwise.
func URLEncoded(src Source, opts ...FormOption) []byte {
	o := formOptions{escape: escape.EscapeURI}
	for _, opt := range opts {
		opt(&o)
	}
	return []byte(url.EncodeParams(src.All(), o.escape, o.escape))
}

// DecodeURLEncoded parses a form body into dst.
func DecodeURLEncoded(data []byte, dst url.QueryTarget) error {
	if len(data) == 0 {
		return nil
	}
	return url.ParseQuery(string(data), dst, true)
}
