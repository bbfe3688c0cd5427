package escape

var (
	formEscaper     = MustPercentEscaper(SafeCharsURLEncoder, true)
	uriEscaper      = MustPercentEscaper(SafeCharsURLEncoder, false)
	pathEscaper     = MustPercentEscaper(SafePathCharsURLEncoder, false)
	reservedEscaper = MustPercentEscaper(SafePlusReservedCharsURLEncoder, false)
	userInfoEscaper = MustPercentEscaper(SafeUserInfoCharsURLEncoder, false)
	queryEscaper    = MustPercentEscaper(SafeQueryStringCharsURLEncoder, false)
	fragmentEscaper = MustPercentEscaper(SafeFragmentChars, false)
)

// EscapeURI escapes for application/x-www-form-urlencoded, mapping space to '+'.
func EscapeURI(s string) string { return formEscaper.Escape(s) }

// EscapeURIConformant escapes like EscapeURI but encodes space as %20.
func EscapeURIConformant(s string) string { return uriEscaper.Escape(s) }

// EscapeURIPath escapes a single path segment.
func EscapeURIPath(s string) string { return pathEscaper.Escape(s) }

// EscapeURIPathWithoutReserved escapes a path, keeping '/' and '?'.
func EscapeURIPathWithoutReserved(s string) string { return reservedEscaper.Escape(s) }

func EscapeURIUserInfo(s string) string { return userInfoEscaper.Escape(s) }

// EscapeURIQuery escapes a query parameter name or value.
func EscapeURIQuery(s string) string { return queryEscaper.Escape(s) }

func EscapeURIFragment(s string) string { return fragmentEscaper.Escape(s) }
