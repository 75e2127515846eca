package reducer

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSelectionMap is reported when a multi-select value holds a
	// non-boolean entry.
	ErrMalformedSelectionMap = errors.New("reducer: malformed selection map")
	// ErrInvalidBoolean is reported when a boolean-select value is neither
	// "true" nor "false".
	ErrInvalidBoolean = errors.New("reducer: invalid boolean value")
)

// FieldError describes a field that was skipped during reduction.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("reducer: field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FieldErrors flattens the error returned by Reduce into the individual
// skipped fields.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, item := range joined.Unwrap() {
			out = append(out, FieldErrors(item)...)
		}
		return out
	}
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		out = append(out, fieldErr)
	}
	return out
}
