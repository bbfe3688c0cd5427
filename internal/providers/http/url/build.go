package url

import (
	"iter"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/data/coerce"
	"github.com/GriffinCanCode/httpdata/internal/escape"
)

// Build returns the encoded URL. Scheme and host are required.
func (u *URL) Build() (string, error) {
	authority, err := u.BuildAuthority()
	if err != nil {
		return "", err
	}
	return authority + u.BuildRelativeURL(), nil
}

// MustBuild is Build for URLs known to be complete.
func (u *URL) MustBuild() string {
	s, err := u.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the built URL, or only its relative part when the URL has
// no scheme or host.
func (u *URL) String() string {
	if s, err := u.Build(); err == nil {
		return s
	}
	return u.BuildRelativeURL()
}

// BuildAuthority returns scheme://[user-info@]host[:port].
func (u *URL) BuildAuthority() (string, error) {
	if u.scheme == "" {
		return "", &PreconditionError{Op: "build", Reason: "scheme is required"}
	}
	if u.host == "" {
		return "", &PreconditionError{Op: "build", Reason: "host is required"}
	}

	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteString("://")
	if u.userInfo != nil {
		b.WriteString(u.encode(*u.userInfo, escape.EscapeURIUserInfo))
		b.WriteByte('@')
	}
	b.WriteString(u.host)
	if u.hasPort {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.port))
	}
	return b.String(), nil
}

// BuildRelativeURL returns the encoded path, query and fragment.
func (u *URL) BuildRelativeURL() string {
	var b strings.Builder
	if u.pathParts != nil {
		u.writePath(&b)
	}
	esc := escape.EscapeURIQuery
	if u.verbatim {
		esc = identity
	}
	if q := EncodeParams(u.All(), esc, esc); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if u.fragment != nil {
		b.WriteByte('#')
		b.WriteString(u.encode(*u.fragment, escape.EscapeURIFragment))
	}
	return b.String()
}

func (u *URL) encode(s string, esc func(string) string) string {
	if u.verbatim {
		return s
	}
	return esc(s)
}

func identity(s string) string { return s }

// EncodeParams joins entries as name=value pairs separated by '&'. Slice
// values repeat the name once per element in order, nil values are skipped
// and empty values are written as a bare name.
func EncodeParams(entries iter.Seq2[string, any], escapeName, escapeValue func(string) string) string {
	var b strings.Builder
	for name, value := range entries {
		if value == nil {
			continue
		}
		escaped := escapeName(name)
		for _, v := range coerce.Values(value) {
			s, ok := coerce.Format(v)
			if !ok {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(escaped)
			if s = escapeValue(s); s != "" {
				b.WriteByte('=')
				b.WriteString(s)
			}
		}
	}
	return b.String()
}
