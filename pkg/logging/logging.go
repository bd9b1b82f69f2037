// Package logging decides where log output goes and builds a slog.Logger
// for it. The destination strings are the ones our commands have always
// taken: "" throws everything away, "stdout" and "stderr" are what they
// say, anything else is a file name that gets appended to.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel understands debug, info, warn and error. Anything else is
// info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Where returns the writer for a destination. The closer must be called
// when you are finished; for stdout and stderr it does nothing.
func Where(dest string) (io.Writer, io.Closer, error) {
	switch dest {
	case "":
		return io.Discard, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	}
	fp, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return fp, fp, nil
}

// New makes a text logger writing to dest at the given level.
func New(dest, level string) (*slog.Logger, io.Closer, error) {
	w, c, err := Where(dest)
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(h), c, nil
}

// Discard is a logger that says nothing, for callers who did not give one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or Discard if l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
