package url

import (
	"slices"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/record"
)

// URL is an absolute URL with query parameters held in a record.
// Create one with New, Parse or ParseInto; the zero value has no port and
// no query catalog until bound.
type URL struct {
	record.Record

	scheme    string
	host      string
	userInfo  *string
	port      int
	hasPort   bool
	pathParts []string
	fragment  *string
	verbatim  bool
}

// Embedder is implemented by URL and by every struct embedding it.
type Embedder interface {
	base() *URL
}

func (u *URL) base() *URL { return u }

// New creates an empty URL.
func New() *URL {
	u := &URL{}
	Bind(u)
	return u
}

// Bind attaches the query record of dst to dst itself so tagged fields of an
// embedding struct act as declared query parameters.
func Bind(dst Embedder) {
	dst.base().Record.MustBind(dst, catalog.CaseSensitive)
}

// Scheme returns the scheme.
func (u *URL) Scheme() string { return u.scheme }

// SetScheme replaces the scheme as given.
func (u *URL) SetScheme(scheme string) *URL {
	u.scheme = scheme
	return u
}

func (u *URL) Host() string { return u.host }

func (u *URL) SetHost(host string) *URL {
	u.host = host
	return u
}

// UserInfo returns the decoded user-info.
func (u *URL) UserInfo() (string, bool) {
	if u.userInfo == nil {
		return "", false
	}
	return *u.userInfo, true
}

func (u *URL) SetUserInfo(userInfo string) *URL {
	u.userInfo = &userInfo
	return u
}

func (u *URL) ClearUserInfo() *URL {
	u.userInfo = nil
	return u
}

// Port returns the port or -1 when none is set.
func (u *URL) Port() int {
	if !u.hasPort {
		return -1
	}
	return u.port
}

// SetPort sets the port; -1 removes it.
func (u *URL) SetPort(port int) error {
	if port < -1 {
		return &PreconditionError{Op: "SetPort", Reason: "expected port >= -1"}
	}
	u.port, u.hasPort = port, port != -1
	return nil
}

// PathParts returns a copy of the decoded path segments. A leading empty
// part stands for a leading slash; nil means no path.
func (u *URL) PathParts() []string { return slices.Clone(u.pathParts) }

// SetPathParts replaces the path with a copy of parts.
func (u *URL) SetPathParts(parts []string) *URL {
	u.pathParts = slices.Clone(parts)
	return u
}

// Fragment returns the decoded fragment.
func (u *URL) Fragment() (string, bool) {
	if u.fragment == nil {
		return "", false
	}
	return *u.fragment, true
}

func (u *URL) SetFragment(fragment string) *URL {
	u.fragment = &fragment
	return u
}

func (u *URL) ClearFragment() *URL {
	u.fragment = nil
	return u
}

// Verbatim reports whether encoding and decoding are disabled.
func (u *URL) Verbatim() bool { return u.verbatim }

// Clone returns a copy of u. Embedding types copy themselves and call CopyTo.
func (u *URL) Clone() *URL {
	c := &URL{}
	u.CopyTo(c, c)
	return c
}

// CopyTo copies u into dst, which is embedded in owner. Path parts and
// query values are copied so the copies can be changed independently.
func (u *URL) CopyTo(dst *URL, owner Embedder) {
	*dst = *u
	u.Record.CloneTo(&dst.Record, owner)
	dst.pathParts = slices.Clone(u.pathParts)
}

// Equal reports whether both URLs build to the same string.
func (u *URL) Equal(other *URL) bool {
	if u == other {
		return true
	}
	if other == nil {
		return false
	}
	a, err := u.Build()
	if err != nil {
		return false
	}
	b, err := other.Build()
	return err == nil && a == b
}
