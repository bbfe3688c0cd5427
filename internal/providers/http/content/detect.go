package content

import (
	"io"
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

// Detect sniffs the media type of body, for example "application/json" or
// "text/plain; charset=utf-8".
func Detect(body []byte) string {
	return mimetype.Detect(body).String()
}

// DetectReader is Detect for a stream; it reads at most the sniffing limit.
func DetectReader(r io.Reader) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	return mt.String(), nil
}

// TypeOf returns the declared media type of a body, falling back to
// sniffing when the declaration is empty or unparseable.
func TypeOf(declared string, body []byte) string {
	if declared != "" {
		if _, _, err := mime.ParseMediaType(declared); err == nil {
			return declared
		}
	}
	return Detect(body)
}

// IsJSON reports whether mediaType names a JSON body.
func IsJSON(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	return mt == "application/json" || mimetype.EqualsAny(mt, "application/problem+json", "text/json")
}
