package url

import (
	"errors"
	neturl "net/url"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/escape"
)

// components are the raw, still encoded parts of a URL string.
type components struct {
	scheme   string
	userInfo *string
	host     string
	port     int
	path     string
	query    *string
	fragment *string
}

// Parse parses an encoded absolute URL, decoding each component.
func Parse(raw string) (*URL, error) {
	u := &URL{}
	if err := ParseInto(u, raw, false); err != nil {
		return nil, err
	}
	return u, nil
}

// ParseVerbatim parses raw without decoding any component.
func ParseVerbatim(raw string) (*URL, error) {
	u := &URL{}
	if err := ParseInto(u, raw, true); err != nil {
		return nil, err
	}
	return u, nil
}

// ParseInto parses raw into dst, binding dst's query record first so tagged
// fields of an embedding struct receive their typed values.
func ParseInto(dst Embedder, raw string, verbatim bool) error {
	c, err := split(raw)
	if err != nil {
		return err
	}
	Bind(dst)
	u := dst.base()
	u.Record.Clear()
	return u.load(raw, c, verbatim)
}

// FromNetURL converts a net/url URL, lower-casing the scheme.
func FromNetURL(src *neturl.URL, verbatim bool) (*URL, error) {
	c := components{
		scheme: src.Scheme,
		host:   src.Hostname(),
		port:   -1,
		path:   src.EscapedPath(),
	}
	if strings.Contains(c.host, ":") {
		c.host = "[" + c.host + "]"
	}
	if p := src.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, &MalformedError{Input: src.String(), Offending: p, Reason: "invalid port", Err: err}
		}
		c.port = n
	}
	if src.User != nil {
		s := src.User.String()
		c.userInfo = &s
	}
	if src.RawQuery != "" || src.ForceQuery {
		q := src.RawQuery
		c.query = &q
	}
	if src.Fragment != "" {
		f := src.EscapedFragment()
		c.fragment = &f
	}

	u := New()
	if err := u.load(src.String(), c, verbatim); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *URL) load(raw string, c components, verbatim bool) error {
	u.scheme = strings.ToLower(c.scheme)
	u.host = c.host
	u.port, u.hasPort = c.port, c.port != -1
	u.verbatim = verbatim
	u.userInfo, u.fragment = nil, nil

	parts, err := ToPathParts(c.path, verbatim)
	if err != nil {
		return malformed(raw, c.path, "invalid path", err)
	}
	u.pathParts = parts

	if c.fragment != nil {
		f := *c.fragment
		if !verbatim {
			if f, err = escape.DecodeURI(f); err != nil {
				return malformed(raw, *c.fragment, "invalid fragment", err)
			}
		}
		u.fragment = &f
	}
	if c.query != nil {
		if err := parseQuery(raw, *c.query, u, !verbatim); err != nil {
			return err
		}
	}
	if c.userInfo != nil {
		ui := *c.userInfo
		if !verbatim {
			if ui, err = escape.DecodeURI(ui); err != nil {
				return malformed(raw, *c.userInfo, "invalid user info", err)
			}
		}
		u.userInfo = &ui
	}
	return nil
}

func malformed(raw, offending, reason string, err error) error {
	var me *MalformedError
	if errors.As(err, &me) {
		return err
	}
	var ee *escape.MalformedError
	if errors.As(err, &ee) {
		offending = ee.Offending
	}
	return &MalformedError{Input: raw, Offending: offending, Reason: reason, Err: err}
}

// split breaks an absolute URL into encoded components:
// scheme ":" ["//" [userinfo "@"] host [":" port]] path ["?" query] ["#" fragment]
func split(raw string) (components, error) {
	c := components{port: -1}
	rest := raw

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		f := rest[i+1:]
		c.fragment = &f
		rest = rest[:i]
	}

	colon := strings.IndexByte(rest, ':')
	if colon <= 0 {
		return c, &MalformedError{Input: raw, Reason: "missing scheme"}
	}
	c.scheme = rest[:colon]
	if !validScheme(c.scheme) {
		return c, &MalformedError{Input: raw, Offending: c.scheme, Reason: "invalid scheme"}
	}
	rest = rest[colon+1:]

	if i := strings.IndexByte(rest, '?'); i >= 0 {
		q := rest[i+1:]
		c.query = &q
		rest = rest[:i]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		authority := rest
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			authority, rest = rest[:i], rest[i:]
		} else {
			rest = ""
		}
		if err := c.splitAuthority(raw, authority); err != nil {
			return c, err
		}
	}
	c.path = rest

	for i := 0; i < len(raw); i++ {
		if b := raw[i]; b < 0x20 || b == 0x7f {
			return c, &MalformedError{Input: raw, Offending: raw[i : i+1], Reason: "control character in url"}
		}
	}
	return c, nil
}

func (c *components) splitAuthority(raw, authority string) error {
	hostPort := authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		ui := authority[:i]
		c.userInfo = &ui
		hostPort = authority[i+1:]
	}

	portStr := ""
	if strings.HasPrefix(hostPort, "[") {
		end := strings.IndexByte(hostPort, ']')
		if end < 0 {
			return &MalformedError{Input: raw, Offending: hostPort, Reason: "missing ']' in host"}
		}
		c.host = hostPort[:end+1]
		tail := hostPort[end+1:]
		if tail != "" {
			if tail[0] != ':' {
				return &MalformedError{Input: raw, Offending: tail, Reason: "unexpected characters after host"}
			}
			portStr = tail[1:]
		}
	} else if i := strings.LastIndexByte(hostPort, ':'); i >= 0 {
		c.host, portStr = hostPort[:i], hostPort[i+1:]
	} else {
		c.host = hostPort
	}

	if portStr != "" {
		for i := 0; i < len(portStr); i++ {
			if portStr[i] < '0' || portStr[i] > '9' {
				return &MalformedError{Input: raw, Offending: portStr, Reason: "invalid port"}
			}
		}
		n, err := strconv.Atoi(portStr)
		if err != nil || n > 65535 {
			return &MalformedError{Input: raw, Offending: portStr, Reason: "invalid port", Err: err}
		}
		c.port = n
	}
	return nil
}

func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z':
		case i > 0 && ('0' <= b && b <= '9' || b == '+' || b == '-' || b == '.'):
		default:
			return false
		}
	}
	return true
}
