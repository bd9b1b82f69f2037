package strucfile

import (
	"errors"
	"strconv"
)

const maxMsgLen = 70

var (
	ErrUnknownFormat = errors.New("cannot recognise format")
	ErrNoAtoms       = errors.New("no atom records")
)

// LineError says which line of a file could not be turned into a record.
type LineError struct {
	N    int    // line number, from 1
	Line string // the line, cut to maxMsgLen for printing
	Err  error
}

func firstPart(s string) string {
	if len(s) > maxMsgLen {
		return s[:maxMsgLen]
	}
	return s
}

func (e *LineError) Error() string {
	return "Line: " + strconv.Itoa(e.N) + " " + e.Err.Error() +
		"\nLine starting with\n" + e.Line
}

func (e *LineError) Unwrap() error { return e.Err }

func lineError(n int, line string, err error) *LineError {
	return &LineError{N: n, Line: firstPart(line), Err: err}
}
