// Making records from lines of PDB and PQR files.

package atom

import (
	"strconv"

	"github.com/andrew-torda/kymia/pkg/colfmt"
)

var (
	pdbTable = colfmt.MustLookup(colfmt.TableATOM)
	pqrTable = colfmt.MustLookup(colfmt.TablePQR)
)

// FromPDBLine reads the atom name (columns 12-15) and serial number
// (columns 6-10) from an ATOM or HETATM line. The returned record has its
// format set to FormatPDB and nothing else set. Errors from colfmt come
// back unchanged, so errors.As(err, new(*colfmt.ConversionError)) works.
func FromPDBLine(line string) (*Record, error) {
	row, err := colfmt.Parse(line, pdbTable, "aname", "aserial")
	if err != nil {
		return nil, err
	}
	return FromRow(row, FormatPDB)
}

// FromPQRLine is FromPDBLine for the white space separated PQR format.
func FromPQRLine(line string) (*Record, error) {
	row, err := colfmt.Parse(line, pqrTable, "aname", "aserial")
	if err != nil {
		return nil, err
	}
	return FromRow(row, FormatPQR)
}

// FromRow makes a record from a row that has already been parsed. The row
// must have aname and aserial. A row without aserial, as from a blank
// serial column, gives a *colfmt.ConversionError. Other fields in the row
// are ignored; give the row to Enrich if you want them.
func FromRow(row colfmt.Row, f Format) (*Record, error) {
	name, ok := row.Str("aname")
	if !ok {
		return nil, &FieldError{Field: "name", Err: ErrEmptyName}
	}
	serial, ok := row.Int("aserial")
	if !ok {
		return nil, &colfmt.ConversionError{Field: "aserial", Kind: colfmt.Int}
	}
	r, err := New(name, serial)
	if err != nil {
		return nil, err
	}
	r.format = f
	return r, nil
}

// Enrich sets every field the row has a value for. It stops at the first
// field that is already set, after the fields before it have been stored.
// Rows from the ATOM and HETATM tables also set the hetero flag.
// Coordinates are only set if all three are present.
func (r *Record) Enrich(row colfmt.Row) error {
	switch row.Table() {
	case colfmt.TableATOM:
		if err := r.SetHetero(false); err != nil {
			return err
		}
	case colfmt.TableHETATM:
		if err := r.SetHetero(true); err != nil {
			return err
		}
	}
	if c, ok := row.Char("alt"); ok {
		if err := r.SetAltLoc(c); err != nil {
			return err
		}
	}
	if s, ok := row.Str("rname"); ok {
		if err := r.SetResidue(s); err != nil {
			return err
		}
	}
	if c, ok := row.Char("chain"); ok {
		if err := r.SetChain(c); err != nil {
			return err
		}
	}
	if n, ok := row.Int("rserial"); ok {
		if err := r.SetResSeq(n); err != nil {
			return err
		}
	}
	x, okx := row.Float("coordx")
	y, oky := row.Float("coordy")
	z, okz := row.Float("coordz")
	if okx && oky && okz {
		if err := r.SetCoords(x, y, z); err != nil {
			return err
		}
	}
	floats := []struct {
		name string
		set  func(float64) error
	}{
		{"occupancy", r.SetOccupancy},
		{"bfactor", r.SetBFactor},
		{"radius", r.SetRadius},
	}
	for _, f := range floats {
		if v, ok := row.Float(f.name); ok {
			if err := f.set(v); err != nil {
				return err
			}
		}
	}
	if s, ok := row.Str("segment"); ok {
		if err := r.SetSegment(s); err != nil {
			return err
		}
	}
	if s, ok := row.Str("element"); ok {
		if err := r.SetElement(s); err != nil {
			return err
		}
	}
	if q, ok := row.Float("charge"); ok { // PQR
		return r.SetCharge(q)
	}
	if s, ok := row.Str("charge"); ok { // PDB, like "2+"
		q, err := pdbCharge(s)
		if err != nil {
			return err
		}
		return r.SetCharge(q)
	}
	return nil
}

// pdbCharge reads the two column PDB charge, which is a digit followed by
// a sign ("2+", "1-"). We also accept the sign first and a lone sign.
func pdbCharge(s string) (float64, error) {
	bad := &colfmt.ConversionError{Field: "charge", Text: s, Kind: colfmt.Float}
	var digit, sign byte
	switch len(s) {
	case 1:
		digit, sign = '1', s[0]
	case 2:
		digit, sign = s[0], s[1]
		if digit == '+' || digit == '-' {
			digit, sign = sign, digit
		}
	default:
		return 0, bad
	}
	n, err := strconv.Atoi(string(digit))
	if err != nil {
		bad.Err = err
		return 0, bad
	}
	switch sign {
	case '+':
		return float64(n), nil
	case '-':
		return float64(-n), nil
	}
	return 0, bad
}
