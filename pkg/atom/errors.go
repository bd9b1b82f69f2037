package atom

import (
	"errors"
)

var (
	ErrFieldNotSet    = errors.New("field has not been set")
	ErrFieldImmutable = errors.New("field is already set")
	ErrWrongType      = errors.New("wrong type")
	ErrEmptyName      = errors.New("empty name")
	ErrBadValue       = errors.New("value out of range")
)

// FieldError says which field a getter or setter was working on.
// It unwraps to one of the errors above.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }
