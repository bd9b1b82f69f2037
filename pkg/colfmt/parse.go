package colfmt

import (
	"math"
	"strconv"
	"strings"
)

type value struct {
	kind Kind
	s    string
	i    int
	f    float64
	c    byte
}

// Row holds the converted fields from one line. Blank fields and fields
// that were not asked for are simply absent.
type Row struct {
	table string
	vals  map[string]value
}

// Table is the name of the table the row was parsed with.
func (r Row) Table() string { return r.table }

// Len is the number of non-blank fields.
func (r Row) Len() int { return len(r.vals) }

// Has says if the field was present and not blank.
func (r Row) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Str returns the trimmed text of a String field.
func (r Row) Str(name string) (string, bool) {
	v, ok := r.vals[name]
	if !ok || v.kind != String {
		return "", false
	}
	return v.s, true
}

// Int returns an Int field.
func (r Row) Int(name string) (int, bool) {
	v, ok := r.vals[name]
	if !ok || v.kind != Int {
		return 0, false
	}
	return v.i, true
}

// Float returns a Float field.
func (r Row) Float(name string) (float64, bool) {
	v, ok := r.vals[name]
	if !ok || v.kind != Float {
		return 0, false
	}
	return v.f, true
}

// Char returns a Char field.
func (r Row) Char(name string) (byte, bool) {
	v, ok := r.vals[name]
	if !ok || v.kind != Char {
		return 0, false
	}
	return v.c, true
}

// Parse cuts the named fields out of line using table t and converts them.
// With no names, every column in the table is used.
//
// If the line is shorter than the furthest column asked for, the error
// wraps ErrLineTooShort. A numeric column that does not convert gives a
// *ConversionError. A column that is only white space is left out of the
// Row and is not an error.
func Parse(line string, t Table, fields ...string) (Row, error) {
	cols, err := t.columns(fields)
	if err != nil {
		return Row{}, err
	}
	if t.tokens {
		return parseTokens(line, t, cols)
	}
	need, far := 0, ""
	for _, c := range cols {
		if c.End > need {
			need, far = c.End, c.Name
		}
	}
	if len(line) < need {
		return Row{}, &ShortLineError{Table: t.name, Field: far, Need: need, Got: len(line)}
	}
	return fill(t.name, cols, func(c Column) string { return line[c.Start:c.End] })
}

// ParseOptional is for lines that may have been trimmed. Every column that
// starts inside the line is parsed and the rest are left out. A text
// column cut off by the end of the line is read as far as it goes. A
// number cut off is a ShortLineError, since what is left would be a
// different number, unless all that is left is blank. Conversion errors
// are still errors. Token tables behave as in Parse.
func ParseOptional(line string, t Table) (Row, error) {
	if t.tokens {
		return parseTokens(line, t, t.cols)
	}
	cols := make([]Column, 0, len(t.cols))
	for _, c := range t.cols {
		if c.Start >= len(line) {
			continue
		}
		if c.End > len(line) {
			if c.Kind == Int || c.Kind == Float {
				if strings.TrimSpace(line[c.Start:]) == "" {
					continue
				}
				return Row{}, &ShortLineError{Table: t.name, Field: c.Name, Need: c.End, Got: len(line)}
			}
			c.End = len(line)
		}
		cols = append(cols, c)
	}
	return fill(t.name, cols, func(c Column) string { return line[c.Start:c.End] })
}

// parseTokens handles white space separated tables.
func parseTokens(line string, t Table, cols []Column) (Row, error) {
	toks := strings.Fields(line)
	if len(toks) < t.minToks {
		return Row{}, &ShortLineError{Table: t.name, Need: t.minToks, Got: len(toks), Token: true}
	}
	extra := len(toks) > t.minToks
	use := cols[:0:0]
	for _, c := range cols {
		if c.optional && !extra {
			continue
		}
		use = append(use, c)
	}
	return fill(t.name, use, func(c Column) string {
		i := c.Start
		if i < 0 {
			i += len(toks)
		}
		return toks[i]
	})
}

func fill(table string, cols []Column, text func(Column) string) (Row, error) {
	row := Row{table: table, vals: make(map[string]value, len(cols))}
	for _, c := range cols {
		s := strings.TrimSpace(text(c))
		if s == "" {
			continue
		}
		v, err := convert(c, s)
		if err != nil {
			return Row{}, err
		}
		row.vals[c.Name] = v
	}
	return row, nil
}

func convert(c Column, s string) (value, error) {
	v := value{kind: c.Kind}
	switch c.Kind {
	case String:
		v.s = s
	case Char:
		if len(s) != 1 {
			return value{}, &ConversionError{Field: c.Name, Text: s, Kind: c.Kind}
		}
		v.c = s[0]
	case Int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return value{}, &ConversionError{Field: c.Name, Text: s, Kind: c.Kind, Err: err}
		}
		v.i = i
	case Float:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value{}, &ConversionError{Field: c.Name, Text: s, Kind: c.Kind, Err: err}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) { // strconv is happy with "nan" and "inf"
			return value{}, &ConversionError{Field: c.Name, Text: s, Kind: c.Kind}
		}
		v.f = f
	}
	return v, nil
}
