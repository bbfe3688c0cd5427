package escape

import "strings"

type preserveEncoded struct {
	inner Escaper
}

// PreserveEncoded wraps inner so existing %XX sequences pass through
// unchanged while everything between them is escaped by inner.
func PreserveEncoded(inner Escaper) Escaper {
	return preserveEncoded{inner: inner}
}

func (p preserveEncoded) Escape(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	last := 0
	for i := 0; i+2 < len(s); i++ {
		if s[i] != '%' || !isHex(s[i+1]) || !isHex(s[i+2]) {
			continue
		}
		b.WriteString(p.inner.Escape(s[last:i]))
		b.WriteString(s[i : i+3])
		last = i + 3
		i += 2
	}
	if last == 0 {
		return p.inner.Escape(s)
	}
	b.WriteString(p.inner.Escape(s[last:]))
	return b.String()
}

func isHex(c byte) bool {
	_, ok := unhex(c)
	return ok
}
