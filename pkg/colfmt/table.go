// 12 Oct 2026
// Column tables for the record types we read.

package colfmt

import (
	"sort"
	"strings"
)

// Kind is what the text in a column should be converted to.
type Kind byte

const (
	String Kind = iota
	Int
	Float
	Char
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Char:
		return "character"
	}
	return "unknown kind"
}

// Column names one item in a record. For fixed tables, Start and End are
// 0-indexed byte offsets and End is exclusive. For token tables, Start is
// a token index; negative indices count back from the last token.
type Column struct {
	Name       string
	Start, End int
	Kind       Kind
	optional   bool // token tables only: present if the line has extra tokens
}

// Table is a read-only description of one record layout.
// Get one from Lookup.
type Table struct {
	name    string
	cols    []Column
	tokens  bool // whitespace separated, not fixed columns
	minToks int
}

// Names of the tables Lookup knows about.
const (
	TableATOM   = "ATOM"
	TableHETATM = "HETATM"
	TablePQR    = "PQR"
)

// pdbAtomCols follows the fixed column convention for ATOM and HETATM
// records. aname is 4 wide and includes the column that some programs
// use for a leading element character.
func pdbAtomCols() []Column {
	return []Column{
		{Name: "aserial", Start: 6, End: 11, Kind: Int},
		{Name: "aname", Start: 12, End: 16, Kind: String},
		{Name: "alt", Start: 16, End: 17, Kind: Char},
		{Name: "rname", Start: 17, End: 21, Kind: String},
		{Name: "chain", Start: 21, End: 22, Kind: Char},
		{Name: "rserial", Start: 22, End: 26, Kind: Int},
		{Name: "coordx", Start: 30, End: 38, Kind: Float},
		{Name: "coordy", Start: 38, End: 46, Kind: Float},
		{Name: "coordz", Start: 46, End: 54, Kind: Float},
		{Name: "occupancy", Start: 54, End: 60, Kind: Float},
		{Name: "bfactor", Start: 60, End: 66, Kind: Float},
		{Name: "segment", Start: 72, End: 76, Kind: String},
		{Name: "element", Start: 76, End: 78, Kind: String},
		{Name: "charge", Start: 78, End: 80, Kind: String},
	}
}

// pqrCols are token positions in
//
//	ATOM serial name resname [chain] resseq x y z charge radius
func pqrCols() []Column {
	return []Column{
		{Name: "aserial", Start: 1, End: 2, Kind: Int},
		{Name: "aname", Start: 2, End: 3, Kind: String},
		{Name: "rname", Start: 3, End: 4, Kind: String},
		{Name: "chain", Start: 4, End: 5, Kind: Char, optional: true},
		{Name: "rserial", Start: -6, End: -5, Kind: Int},
		{Name: "coordx", Start: -5, End: -4, Kind: Float},
		{Name: "coordy", Start: -4, End: -3, Kind: Float},
		{Name: "coordz", Start: -3, End: -2, Kind: Float},
		{Name: "charge", Start: -2, End: -1, Kind: Float},
		{Name: "radius", Start: -1, End: 0, Kind: Float},
	}
}

const pqrMinTokens = 10

// Lookup returns the table with the given name. The name is not case
// sensitive.
func Lookup(name string) (Table, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case TableATOM:
		return Table{name: TableATOM, cols: pdbAtomCols()}, nil
	case TableHETATM:
		return Table{name: TableHETATM, cols: pdbAtomCols()}, nil
	case TablePQR:
		return Table{name: TablePQR, cols: pqrCols(), tokens: true, minToks: pqrMinTokens}, nil
	}
	return Table{}, &TableError{Name: name}
}

// MustLookup is Lookup for the table names defined in this package.
// It panics on anything else.
func MustLookup(name string) Table {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Name is the record name the table describes, like "ATOM".
func (t Table) Name() string { return t.name }

// Tokens says if the table counts white space separated tokens rather
// than fixed columns.
func (t Table) Tokens() bool { return t.tokens }

// Columns returns a copy of the table's columns, in line order.
func (t Table) Columns() []Column {
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	return cols
}

// Width is the shortest line that holds every column of a fixed table,
// or the smallest number of tokens for a token table.
func (t Table) Width() int {
	if t.tokens {
		return t.minToks
	}
	w := 0
	for _, c := range t.cols {
		if c.End > w {
			w = c.End
		}
	}
	return w
}

// Has says if the table has a column with this name.
func (t Table) Has(name string) bool {
	_, ok := t.column(name)
	return ok
}

func (t Table) column(name string) (Column, bool) {
	for _, c := range t.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// columns turns a list of names into columns. No names means all of them.
// Duplicates are dropped and the result is in line order.
func (t Table) columns(names []string) ([]Column, error) {
	if len(names) == 0 {
		return t.Columns(), nil
	}
	seen := make(map[string]bool, len(names))
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		c, ok := t.column(n)
		if !ok {
			return nil, &FieldError{Table: t.name, Field: n}
		}
		cols = append(cols, c)
	}
	sort.SliceStable(cols, func(i, j int) bool { return t.index(cols[i].Name) < t.index(cols[j].Name) })
	return cols, nil
}

func (t Table) index(name string) int {
	for i, c := range t.cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// RecordName returns the record name from the first six columns of a
// line, white space trimmed, like "ATOM" or "HETATM".
func RecordName(line string) string {
	n := 6
	if len(line) < n {
		n = len(line)
	}
	return strings.TrimSpace(line[:n])
}
