package escape

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// Safe character sets in addition to ASCII letters and digits.
const (
	// SafeCharsURLEncoder matches application/x-www-form-urlencoded.
	SafeCharsURLEncoder = "-_.*"
	// SafePathCharsURLEncoder keeps the sub-delims, ':' and '@' of path segments.
	SafePathCharsURLEncoder = "-_.!~*'()@:$&,;=+"
	// SafePlusReservedCharsURLEncoder additionally keeps '/' and '?'.
	SafePlusReservedCharsURLEncoder = SafePathCharsURLEncoder + "/?"
	// SafeUserInfoCharsURLEncoder is the path set without '@' and '+'.
	SafeUserInfoCharsURLEncoder = "-_.!~*'():$&,;="
	// SafeQueryStringCharsURLEncoder leaves '&', '=' and '+' escaped so
	// they cannot be confused with query delimiters.
	SafeQueryStringCharsURLEncoder = "-_.!~*'()@:$,;/?:"
	// SafeFragmentChars is the fragment set.
	SafeFragmentChars = "=&-_.!~*'()@:$,;/?:"
)

// Escaper converts a string to its escaped form.
type Escaper interface {
	Escape(s string) string
}

// PercentEscaper escapes every rune outside its safe set.
type PercentEscaper struct {
	safe         [utf8.RuneSelf]bool
	plusForSpace bool
}

// NewPercentEscaper creates an escaper that leaves safeChars unescaped.
// safeChars must be ASCII and must not contain letters, digits or '%'.
// With plusForSpace a space becomes '+' and cannot itself be safe.
func NewPercentEscaper(safeChars string, plusForSpace bool) (*PercentEscaper, error) {
	e := &PercentEscaper{plusForSpace: plusForSpace}
	for _, c := range safeChars {
		switch {
		case isAlphaNum(c):
			return nil, fmt.Errorf("escape: alphanumeric characters are always safe and should not be specified: %q", safeChars)
		case c == ' ' && plusForSpace:
			return nil, errors.New("escape: plusForSpace cannot be specified when space is a safe character")
		case c == '%':
			return nil, errors.New("escape: the '%' character cannot be specified as safe")
		case c >= utf8.RuneSelf:
			return nil, fmt.Errorf("escape: safe character %q is not ASCII", c)
		}
		e.safe[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		e.safe[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		e.safe[c] = true
		e.safe[c+'a'-'A'] = true
	}
	return e, nil
}

// MustPercentEscaper is NewPercentEscaper for package-level escapers.
func MustPercentEscaper(safeChars string, plusForSpace bool) *PercentEscaper {
	e, err := NewPercentEscaper(safeChars, plusForSpace)
	if err != nil {
		panic(err)
	}
	return e
}

func isAlphaNum(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func (e *PercentEscaper) isSafe(b byte) bool {
	return b < utf8.RuneSelf && e.safe[b]
}

// EscapeRune returns the replacement for r, or false when r is safe.
func (e *PercentEscaper) EscapeRune(r rune) (string, bool) {
	if r >= 0 && r < utf8.RuneSelf && e.safe[r] {
		return "", false
	}
	if r == ' ' && e.plusForSpace {
		return "+", true
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	var b strings.Builder
	b.Grow(3 * n)
	for _, c := range buf[:n] {
		writeHex(&b, c)
	}
	return b.String(), true
}

// Escape escapes s. Strings that need no escaping are returned as is.
// Bytes that are not valid UTF-8 are escaped individually.
func (e *PercentEscaper) Escape(s string) string {
	for i := 0; i < len(s); i++ {
		if !e.isSafe(s[i]) {
			return e.escapeFrom(s, i)
		}
	}
	return s
}

func (e *PercentEscaper) escapeFrom(s string, start int) string {
	var b strings.Builder
	b.Grow(len(s) + 2*(len(s)-start))
	b.WriteString(s[:start])
	for i := start; i < len(s); {
		c := s[i]
		switch {
		case e.isSafe(c):
			b.WriteByte(c)
			i++
		case c == ' ' && e.plusForSpace:
			b.WriteByte('+')
			i++
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			for j := i; j < i+size; j++ {
				writeHex(&b, s[j])
			}
			i += size
		}
	}
	return b.String()
}

func writeHex(b *strings.Builder, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperHex[c>>4])
	b.WriteByte(upperHex[c&0xF])
}
