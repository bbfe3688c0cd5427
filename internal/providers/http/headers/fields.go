package headers

import (
	"encoding/base64"
	"reflect"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
)

func list[T any](name string, ref func(*Headers) *[]T) catalog.Field {
	return catalog.Field{
		Name:   name,
		GoName: strings.ReplaceAll(name, "-", ""),
		Type:   reflect.TypeFor[[]T](),
		Get: func(owner any) any {
			return *ref(owner.(Embedder).headers())
		},
		Set: func(owner any, v any) {
			p := ref(owner.(Embedder).headers())
			if v == nil {
				*p = nil
				return
			}
			*p = v.([]T)
		},
	}
}

func standardFields() []catalog.Field {
	return []catalog.Field{
		list("Accept", func(h *Headers) *[]string { return &h.accept }),
		list("Accept-Encoding", func(h *Headers) *[]string { return &h.acceptEncoding }),
		list("Authorization", func(h *Headers) *[]string { return &h.authorization }),
		list("Cache-Control", func(h *Headers) *[]string { return &h.cacheControl }),
		list("Content-Encoding", func(h *Headers) *[]string { return &h.contentEncoding }),
		list("Content-Length", func(h *Headers) *[]int64 { return &h.contentLength }),
		list("Content-MD5", func(h *Headers) *[]string { return &h.contentMD5 }),
		list("Content-Range", func(h *Headers) *[]string { return &h.contentRange }),
		list("Content-Type", func(h *Headers) *[]string { return &h.contentType }),
		list("Cookie", func(h *Headers) *[]string { return &h.cookie }),
		list("Date", func(h *Headers) *[]string { return &h.date }),
		list("ETag", func(h *Headers) *[]string { return &h.etag }),
		list("Expires", func(h *Headers) *[]string { return &h.expires }),
		list("If-Modified-Since", func(h *Headers) *[]string { return &h.ifModifiedSince }),
		list("If-Match", func(h *Headers) *[]string { return &h.ifMatch }),
		list("If-None-Match", func(h *Headers) *[]string { return &h.ifNoneMatch }),
		list("If-Unmodified-Since", func(h *Headers) *[]string { return &h.ifUnmodifiedSince }),
		list("If-Range", func(h *Headers) *[]string { return &h.ifRange }),
		list("Last-Modified", func(h *Headers) *[]string { return &h.lastModified }),
		list("Location", func(h *Headers) *[]string { return &h.location }),
		list("MIME-Version", func(h *Headers) *[]string { return &h.mimeVersion }),
		list("Range", func(h *Headers) *[]string { return &h.rangeHeader }),
		list("Retry-After", func(h *Headers) *[]string { return &h.retryAfter }),
		list("User-Agent", func(h *Headers) *[]string { return &h.userAgent }),
		list("Warning", func(h *Headers) *[]string { return &h.warning }),
		list("WWW-Authenticate", func(h *Headers) *[]string { return &h.authenticate }),
		list("Age", func(h *Headers) *[]int64 { return &h.age }),
	}
}

func first[T any](values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[0]
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func firstInt(values []int64) (int64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return values[0], true
}

func (h *Headers) Accept() string { return first(h.accept) }

func (h *Headers) SetAccept(v string) *Headers {
	h.accept = single(v)
	return h
}

func (h *Headers) AcceptEncoding() string { return first(h.acceptEncoding) }

// SetAcceptEncoding replaces the gzip default; "" removes the header.
func (h *Headers) SetAcceptEncoding(v string) *Headers {
	h.acceptEncoding = single(v)
	return h
}

func (h *Headers) Authorization() string { return first(h.authorization) }

// AuthorizationValues returns every Authorization header.
func (h *Headers) AuthorizationValues() []string { return h.authorization }

func (h *Headers) SetAuthorization(v string) *Headers {
	h.authorization = single(v)
	return h
}

func (h *Headers) SetAuthorizationValues(v []string) *Headers {
	h.authorization = v
	return h
}

// SetBasicAuthentication sets a Basic Authorization header.
func (h *Headers) SetBasicAuthentication(username, password string) *Headers {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return h.SetAuthorization("Basic " + encoded)
}

func (h *Headers) CacheControl() string { return first(h.cacheControl) }

func (h *Headers) SetCacheControl(v string) *Headers {
	h.cacheControl = single(v)
	return h
}

func (h *Headers) ContentEncoding() string { return first(h.contentEncoding) }

func (h *Headers) SetContentEncoding(v string) *Headers {
	h.contentEncoding = single(v)
	return h
}

// ContentLength returns the first Content-Length.
func (h *Headers) ContentLength() (int64, bool) { return firstInt(h.contentLength) }

func (h *Headers) SetContentLength(n int64) *Headers {
	h.contentLength = []int64{n}
	return h
}

func (h *Headers) ClearContentLength() *Headers {
	h.contentLength = nil
	return h
}

func (h *Headers) ContentMD5() string { return first(h.contentMD5) }

func (h *Headers) SetContentMD5(v string) *Headers {
	h.contentMD5 = single(v)
	return h
}

func (h *Headers) ContentRange() string { return first(h.contentRange) }

func (h *Headers) SetContentRange(v string) *Headers {
	h.contentRange = single(v)
	return h
}

func (h *Headers) ContentType() string { return first(h.contentType) }

func (h *Headers) SetContentType(v string) *Headers {
	h.contentType = single(v)
	return h
}

func (h *Headers) Cookie() string { return first(h.cookie) }

func (h *Headers) SetCookie(v string) *Headers {
	h.cookie = single(v)
	return h
}

func (h *Headers) Date() string { return first(h.date) }

func (h *Headers) SetDate(v string) *Headers {
	h.date = single(v)
	return h
}

func (h *Headers) ETag() string { return first(h.etag) }

func (h *Headers) SetETag(v string) *Headers {
	h.etag = single(v)
	return h
}

func (h *Headers) Expires() string { return first(h.expires) }

func (h *Headers) SetExpires(v string) *Headers {
	h.expires = single(v)
	return h
}

func (h *Headers) IfModifiedSince() string { return first(h.ifModifiedSince) }

func (h *Headers) SetIfModifiedSince(v string) *Headers {
	h.ifModifiedSince = single(v)
	return h
}

func (h *Headers) IfMatch() string { return first(h.ifMatch) }

func (h *Headers) SetIfMatch(v string) *Headers {
	h.ifMatch = single(v)
	return h
}

func (h *Headers) IfNoneMatch() string { return first(h.ifNoneMatch) }

func (h *Headers) SetIfNoneMatch(v string) *Headers {
	h.ifNoneMatch = single(v)
	return h
}

func (h *Headers) IfUnmodifiedSince() string { return first(h.ifUnmodifiedSince) }

func (h *Headers) SetIfUnmodifiedSince(v string) *Headers {
	h.ifUnmodifiedSince = single(v)
	return h
}

func (h *Headers) IfRange() string { return first(h.ifRange) }

func (h *Headers) SetIfRange(v string) *Headers {
	h.ifRange = single(v)
	return h
}

func (h *Headers) LastModified() string { return first(h.lastModified) }

func (h *Headers) SetLastModified(v string) *Headers {
	h.lastModified = single(v)
	return h
}

func (h *Headers) Location() string { return first(h.location) }

func (h *Headers) SetLocation(v string) *Headers {
	h.location = single(v)
	return h
}

func (h *Headers) MIMEVersion() string { return first(h.mimeVersion) }

func (h *Headers) SetMIMEVersion(v string) *Headers {
	h.mimeVersion = single(v)
	return h
}

func (h *Headers) Range() string { return first(h.rangeHeader) }

func (h *Headers) SetRange(v string) *Headers {
	h.rangeHeader = single(v)
	return h
}

func (h *Headers) RetryAfter() string { return first(h.retryAfter) }

func (h *Headers) SetRetryAfter(v string) *Headers {
	h.retryAfter = single(v)
	return h
}

func (h *Headers) UserAgent() string { return first(h.userAgent) }

func (h *Headers) SetUserAgent(v string) *Headers {
	h.userAgent = single(v)
	return h
}

// Warning returns the first Warning header.
func (h *Headers) Warning() string { return first(h.warning) }

// Warnings returns every Warning header in order.
func (h *Headers) Warnings() []string { return h.warning }

func (h *Headers) AddWarning(v string) *Headers {
	if v != "" {
		h.warning = append(h.warning, v)
	}
	return h
}

func (h *Headers) WWWAuthenticate() string { return first(h.authenticate) }

func (h *Headers) SetWWWAuthenticate(v string) *Headers {
	h.authenticate = single(v)
	return h
}

// Age returns the first Age header in seconds.
func (h *Headers) Age() (int64, bool) { return firstInt(h.age) }

func (h *Headers) SetAge(seconds int64) *Headers {
	h.age = []int64{seconds}
	return h
}
