package url

import (
	neturl "net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ToNetURL builds u and parses the result with net/url.
func (u *URL) ToNetURL() (*neturl.URL, error) {
	s, err := u.Build()
	if err != nil {
		return nil, err
	}
	n, err := neturl.Parse(s)
	if err != nil {
		return nil, &MalformedError{Input: s, Reason: "rejected by net/url", Err: err}
	}
	return n, nil
}

// Resolve resolves a relative reference against u.
func (u *URL) Resolve(relative string) (*URL, error) {
	base, err := u.ToNetURL()
	if err != nil {
		return nil, err
	}
	ref, err := neturl.Parse(relative)
	if err != nil {
		return nil, &MalformedError{Input: relative, Reason: "invalid reference", Err: err}
	}
	return FromNetURL(base.ResolveReference(ref), u.verbatim)
}

// ASCIIHost returns the host in its IDNA ASCII form. IP literals are
// returned unchanged.
func (u *URL) ASCIIHost() (string, error) {
	if strings.HasPrefix(u.host, "[") {
		return u.host, nil
	}
	h, err := idna.Lookup.ToASCII(u.host)
	if err != nil {
		return "", &MalformedError{Input: u.host, Reason: "invalid international host", Err: err}
	}
	return h, nil
}
