/*
Package headers models an HTTP header collection as a case-insensitive record.

The common headers are declared fields holding every occurrence of the
header in order; anything else lands in the record's overflow store as a
[]string. Types that need more typed headers embed Headers and register
their own tagged fields with Register:

	type UploadHeaders struct {
	    headers.Headers
	    UploadID string `key:"X-Upload-Id"`
	}

	func init() {
	    headers.MustRegister(reflect.TypeFor[UploadHeaders]())
	}

Repeated occurrences of a scalar field are all retained. The field holds the
first one and FirstValue reports it; AllValues and ToWireLines include the
rest.

Transport adapters cross the boundary with FromWireLines and ToWireLines.
Values of credential headers are replaced by RedactedValue in CurlFlags and
LogView unless verbose logging is enabled.
*/
package headers
