package url

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed marks URL strings that cannot be parsed.
	ErrMalformed = errors.New("malformed url")
	// ErrPrecondition marks misuse, such as building without a host.
	ErrPrecondition = errors.New("url precondition violated")
)

// MalformedError reports an unparsable URL or URL component.
type MalformedError struct {
	Input     string
	Offending string
	Reason    string
	Err       error
}

func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("malformed url %q: %s", e.Input, e.Reason)
	if e.Offending != "" && e.Offending != e.Input {
		msg += fmt.Sprintf(" (%q)", e.Offending)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }
func (e *MalformedError) Unwrap() error        { return e.Err }

// PreconditionError reports an operation invoked on an incomplete URL or with
// an invalid argument.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("url %s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }
