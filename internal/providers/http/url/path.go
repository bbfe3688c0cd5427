package url

import (
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/escape"
)

// RawPath returns the encoded path, or false when the URL has no path.
func (u *URL) RawPath() (string, bool) {
	if u.pathParts == nil {
		return "", false
	}
	var b strings.Builder
	u.writePath(&b)
	return b.String(), true
}

// SetRawPath replaces the path with the parts of an encoded path.
func (u *URL) SetRawPath(encoded string) error {
	parts, err := ToPathParts(encoded, u.verbatim)
	if err != nil {
		return malformed(encoded, encoded, "invalid path", err)
	}
	u.pathParts = parts
	return nil
}

// AppendRawPath appends an encoded path. The first appended part is joined
// to the current last part, so "/a" followed by "b" gives "/ab". Appending
// an empty path does nothing.
func (u *URL) AppendRawPath(encoded string) error {
	if encoded == "" {
		return nil
	}
	parts, err := ToPathParts(encoded, u.verbatim)
	if err != nil {
		return malformed(encoded, encoded, "invalid path", err)
	}
	if len(u.pathParts) == 0 {
		u.pathParts = parts
		return nil
	}
	joined := make([]string, 0, len(u.pathParts)+len(parts)-1)
	joined = append(joined, u.pathParts...)
	joined[len(joined)-1] += parts[0]
	u.pathParts = append(joined, parts[1:]...)
	return nil
}

// ToPathParts splits an encoded path on '/' and decodes each part unless
// verbatim. An empty path yields nil.
func ToPathParts(encoded string, verbatim bool) ([]string, error) {
	if encoded == "" {
		return nil, nil
	}
	parts := strings.Split(encoded, "/")
	if verbatim {
		return parts, nil
	}
	for i, p := range parts {
		d, err := escape.DecodeURIPath(p)
		if err != nil {
			return nil, err
		}
		parts[i] = d
	}
	return parts, nil
}

func (u *URL) writePath(b *strings.Builder) {
	for i, part := range u.pathParts {
		if i != 0 {
			b.WriteByte('/')
		}
		if part != "" {
			b.WriteString(u.encode(part, escape.EscapeURIPath))
		}
	}
}
