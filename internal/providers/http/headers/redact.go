package headers

import (
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
)

// RedactedValue replaces credentials in logged headers.
const RedactedValue = "<Not Logged>"

var sensitive = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
	"cookie":              {},
	"set-cookie":          {},
}

// Redact returns value, or RedactedValue for a credential header when
// verbose is false.
func Redact(name, value string, verbose bool) string {
	if verbose {
		return value
	}
	if _, ok := sensitive[catalog.Fold(name)]; ok {
		return RedactedValue
	}
	return value
}

// LogView returns h as a zap array of "Name: value" strings with
// credentials redacted unless verbose.
func (h *Headers) LogView(verbose bool) zapcore.ArrayMarshaler {
	return logView{h: h, verbose: verbose}
}

type logView struct {
	h       *Headers
	verbose bool
}

func (v logView) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	lines, err := v.h.ToWireLines()
	if err != nil {
		return err
	}
	for _, l := range lines {
		enc.AppendString(l.Name + ": " + Redact(l.Name, l.Value, v.verbose))
	}
	return nil
}
