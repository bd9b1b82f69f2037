// Errors from cutting up lines. Each error type unwraps to one of the
// sentinels below, so callers can use errors.Is without caring about
// the details.

package colfmt

import (
	"errors"
	"strconv"
)

var (
	ErrLineTooShort = errors.New("line too short")
	ErrConversion   = errors.New("field conversion failed")
	ErrUnknownField = errors.New("unknown field")
	ErrUnknownTable = errors.New("unknown column table")
)

const maxTextLen = 20

// ShortLineError is returned when a line ends before the last column
// that was asked for. For token tables, Need and Got count tokens.
type ShortLineError struct {
	Table string
	Field string // the requested field that reaches furthest
	Need  int
	Got   int
	Token bool
}

func (e *ShortLineError) Error() string {
	unit := " characters"
	if e.Token {
		unit = " tokens"
	}
	s := e.Table + " line has " + strconv.Itoa(e.Got) + unit + ", need " +
		strconv.Itoa(e.Need)
	if e.Field != "" {
		s += " for " + e.Field
	}
	return s
}

func (e *ShortLineError) Unwrap() error { return ErrLineTooShort }

// ConversionError carries the text that would not convert and what we
// were trying to turn it into.
type ConversionError struct {
	Field string
	Text  string
	Kind  Kind
	Err   error // from strconv, may be nil
}

func (e *ConversionError) Error() string {
	text := e.Text
	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}
	s := "cannot convert " + strconv.Quote(text) + " in " + e.Field + " to " + e.Kind.String()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversion}
	}
	return []error{ErrConversion, e.Err}
}

// FieldError is a request for a column the table does not have.
type FieldError struct {
	Table string
	Field string
}

func (e *FieldError) Error() string {
	return e.Table + " table has no field " + strconv.Quote(e.Field)
}

func (e *FieldError) Unwrap() error { return ErrUnknownField }

// TableError is a Lookup of a name we do not know.
type TableError struct {
	Name string
}

func (e *TableError) Error() string {
	return "no column table called " + strconv.Quote(e.Name)
}

func (e *TableError) Unwrap() error { return ErrUnknownTable }
