package headers

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks header collections that cannot be serialized.
	ErrPrecondition = errors.New("headers precondition violated")
	// ErrMalformed marks header values that do not parse as their declared type.
	ErrMalformed = errors.New("malformed header value")
)

// PreconditionError reports ambiguous header names.
type PreconditionError struct {
	Name   string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Name)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

// MalformedError reports a header value rejected by its declared type.
type MalformedError struct {
	Name  string
	Value string
	Err   error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("header %s: invalid value %q: %v", e.Name, e.Value, e.Err)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }
func (e *MalformedError) Unwrap() error        { return e.Err }
