package escape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed marks invalid percent-encoded input.
var ErrMalformed = errors.New("malformed percent-encoding")

// MalformedError names the offending escape sequence.
type MalformedError struct {
	Input     string
	Offending string
	Offset    int
}

func (e *MalformedError) Error() string {
	if len(e.Offending) < 3 {
		return fmt.Sprintf("incomplete trailing escape pattern %q at offset %d", e.Offending, e.Offset)
	}
	return fmt.Sprintf("illegal hex characters in escape pattern %q at offset %d", e.Offending, e.Offset)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// DecodeURI decodes %XX sequences and maps '+' to a space.
func DecodeURI(s string) (string, error) {
	return decode(s, true)
}

// DecodeURIPath decodes %XX sequences and keeps '+' literal.
func DecodeURIPath(s string) (string, error) {
	return decode(s, false)
}

func decode(s string, plusAsSpace bool) (string, error) {
	i := strings.IndexByte(s, '%')
	if plusAsSpace {
		if j := strings.IndexByte(s, '+'); j >= 0 && (i < 0 || j < i) {
			i = j
		}
	}
	if i < 0 {
		return s, nil
	}

	buf := make([]byte, 0, len(s))
	buf = append(buf, s[:i]...)
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+' && plusAsSpace:
			buf = append(buf, ' ')
		case c == '%':
			if i+2 >= len(s) {
				return "", &MalformedError{Input: s, Offending: s[i:], Offset: i}
			}
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if !ok1 || !ok2 {
				return "", &MalformedError{Input: s, Offending: s[i : i+3], Offset: i}
			}
			buf = append(buf, hi<<4|lo)
			i += 2
		default:
			buf = append(buf, c)
		}
	}
	return string(buf), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
