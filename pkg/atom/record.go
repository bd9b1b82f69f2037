package atom

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Format says which kind of file a record came from.
type Format byte

const (
	FormatUnknown Format = iota
	FormatPDB
	FormatPQR
)

func (f Format) String() string {
	switch f {
	case FormatPDB:
		return "pdb"
	case FormatPQR:
		return "pqr"
	}
	return "unknown"
}

// ParseFormat turns "pdb", "pqr" (any case) into a Format.
// Anything else is FormatUnknown.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdb", "ent":
		return FormatPDB
	case "pqr":
		return FormatPQR
	}
	return FormatUnknown
}

// Record is one atom from one structure. Name and serial are given when
// it is made and never change. Everything else starts unset and can be
// set once.
type Record struct {
	name   string
	serial int
	format Format

	typ       cell[*Type] // shared with other records, not owned
	bfactor   cell[float64]
	occupancy cell[float64]
	altLoc    cell[byte]
	hetero    cell[bool]

	residue cell[string]
	chain   cell[byte]
	resSeq  cell[int]
	coords  cell[[3]float64]
	segment cell[string]
	element cell[string]
	charge  cell[float64]
	radius  cell[float64]
}

// New makes a record with a name and serial number and nothing else.
// The source format is FormatUnknown.
func New(name string, serial int) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &FieldError{Field: "name", Err: ErrEmptyName}
	}
	return &Record{name: name, serial: serial}, nil
}

func (r *Record) Name() string   { return r.name }
func (r *Record) Serial() int    { return r.serial }
func (r *Record) Format() Format { return r.format }

// Type is the atom type, once somebody has assigned one.
func (r *Record) Type() (*Type, error) { return r.typ.get("atom_type") }

// HasType is true after SetType.
func (r *Record) HasType() bool { return r.typ.isSet() }

func (r *Record) BFactor() (float64, error)   { return r.bfactor.get("bfactor") }
func (r *Record) Occupancy() (float64, error) { return r.occupancy.get("occupancy") }
func (r *Record) AltLoc() (byte, error)       { return r.altLoc.get("alt_loc") }
func (r *Record) IsHetero() (bool, error)     { return r.hetero.get("is_hetero") }
func (r *Record) Residue() (string, error)    { return r.residue.get("residue") }
func (r *Record) Chain() (byte, error)        { return r.chain.get("chain") }
func (r *Record) ResSeq() (int, error)        { return r.resSeq.get("res_seq") }
func (r *Record) Coords() ([3]float64, error) { return r.coords.get("coords") }
func (r *Record) Segment() (string, error)    { return r.segment.get("segment") }
func (r *Record) Element() (string, error)    { return r.element.get("element") }
func (r *Record) Charge() (float64, error)    { return r.charge.get("charge") }
func (r *Record) Radius() (float64, error)    { return r.radius.get("radius") }

// SetType assigns the atom type. It works once. A nil type, or a Type
// that did not come from NewType, is ErrWrongType.
func (r *Record) SetType(t *Type) error {
	if t == nil || t.label == "" {
		return &FieldError{Field: "atom_type", Err: fmt.Errorf("%w: not a valid atom type", ErrWrongType)}
	}
	return r.typ.set("atom_type", t)
}

// SetTypeAny is SetType for values of unknown type, like something that
// came out of a config file. It catches the easy mistake of passing the
// label instead of the type.
func (r *Record) SetTypeAny(v any) error {
	t, ok := v.(*Type)
	if !ok {
		return &FieldError{Field: "atom_type", Err: fmt.Errorf("%w: want *atom.Type, got %T", ErrWrongType, v)}
	}
	return r.SetType(t)
}

func (r *Record) SetBFactor(b float64) error {
	return setFloat(&r.bfactor, "bfactor", b, false)
}

func (r *Record) SetOccupancy(o float64) error {
	return setFloat(&r.occupancy, "occupancy", o, false)
}

func (r *Record) SetAltLoc(c byte) error { return r.altLoc.set("alt_loc", c) }
func (r *Record) SetHetero(h bool) error { return r.hetero.set("is_hetero", h) }
func (r *Record) SetChain(c byte) error  { return r.chain.set("chain", c) }
func (r *Record) SetResSeq(n int) error  { return r.resSeq.set("res_seq", n) }
func (r *Record) SetCharge(q float64) error {
	return setFloat(&r.charge, "charge", q, false)
}

func (r *Record) SetResidue(s string) error { return setName(&r.residue, "residue", s) }
func (r *Record) SetSegment(s string) error { return setName(&r.segment, "segment", s) }
func (r *Record) SetElement(s string) error { return setName(&r.element, "element", s) }

// SetCoords wants all three coordinates at once.
func (r *Record) SetCoords(x, y, z float64) error {
	if r.coords.isSet() {
		return &FieldError{Field: "coords", Err: ErrFieldImmutable}
	}
	for _, v := range []float64{x, y, z} {
		if !finite(v) {
			return badValue("coords", v)
		}
	}
	return r.coords.set("coords", [3]float64{x, y, z})
}

// SetRadius is for PQR files, which carry a radius per atom.
func (r *Record) SetRadius(rad float64) error {
	return setFloat(&r.radius, "radius", rad, true)
}

func setName(c *cell[string], field, s string) error {
	if c.isSet() {
		return &FieldError{Field: field, Err: ErrFieldImmutable}
	}
	if strings.TrimSpace(s) == "" {
		return &FieldError{Field: field, Err: ErrEmptyName}
	}
	return c.set(field, s)
}

// Equal is true if name, serial and atom type are the same. Two records
// without a type can be equal; one with and one without cannot.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.name != o.name || r.serial != o.serial {
		return false
	}
	if r.typ.isSet() != o.typ.isSet() {
		return false
	}
	return !r.typ.isSet() || r.typ.v.Equal(o.typ.v)
}

// EqualAny is Equal for interface values. Comparing with something that
// is not a non-nil *Record is ErrWrongType, not false.
func (r *Record) EqualAny(v any) (bool, error) {
	o, ok := v.(*Record)
	if !ok || o == nil {
		return false, fmt.Errorf("%w: cannot compare atom record with %T", ErrWrongType, v)
	}
	return r.Equal(o), nil
}

// Hash mixes the name and the type's hash. The serial number is left
// out, so records differing only in serial collide. That is allowed:
// equal records still always have equal hashes.
func (r *Record) Hash() uint64 {
	var th uint64
	if r.typ.isSet() {
		th = r.typ.v.Hash()
	}
	b := make([]byte, 0, len(r.name)+8)
	b = append(b, r.name...)
	b = binary.LittleEndian.AppendUint64(b, th)
	return xxhash.Sum64(b)
}

func (r *Record) String() string {
	typ := "-"
	if r.typ.isSet() {
		typ = r.typ.v.label
	}
	s := fmt.Sprintf("(%d, %s, %s, %s", r.serial, r.name, typ, r.format)
	if r.coords.isSet() {
		c := r.coords.v
		s += fmt.Sprintf(", [%0.3f %0.3f %0.3f]", c[0], c[1], c[2])
	}
	return s + ")"
}
