/*
Package escape implements RFC 3986 percent-encoding with configurable safe
character sets.

A PercentEscaper leaves ASCII letters, digits and its safe set untouched and
encodes everything else as UTF-8 %XX triplets with uppercase hex digits. The
predefined escapers cover each URL component:

  - EscapeURI: application/x-www-form-urlencoded, space as '+'
  - EscapeURIConformant: same safe set, space as %20
  - EscapeURIPath: path segments
  - EscapeURIPathWithoutReserved: path segments keeping '/' and '?'
  - EscapeURIUserInfo: user-info
  - EscapeURIQuery: query keys and values
  - EscapeURIFragment: fragments

DecodeURI and DecodeURIPath reverse the encoding. Malformed escape sequences
are reported as *MalformedError, matched with errors.Is(err, ErrMalformed).
*/
package escape
