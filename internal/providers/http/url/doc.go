/*
Package url models absolute URLs as a scheme, authority, path parts, query
parameters and fragment.

Query parameters live in an embedded record.Record, so request types can
declare typed parameters as struct fields next to arbitrary extra ones:

	type ListRequest struct {
	    url.URL
	    MaxResults int64    `key:"max-results"`
	    Fields     []string `key:"fields"`
	}

	func NewListRequest(raw string) (*ListRequest, error) {
	    r := &ListRequest{}
	    if err := url.ParseInto(r, raw, false); err != nil {
	        return nil, err
	    }
	    return r, nil
	}

Each component is decoded on parse and encoded on build with its own
escaper from package escape. A verbatim URL skips both steps so the original
string round-trips unchanged.

Features:
  - Build, BuildAuthority and BuildRelativeURL
  - path parts with RawPath, SetRawPath and AppendRawPath
  - repeated query parameters, bare names for empty values
  - conversion to and from net/url, relative resolution, IDNA hosts
*/
package url
