package atom_test

import (
	"errors"
	"testing"

	. "github.com/andrew-torda/kymia/pkg/atom"
)

func mustNew(t *testing.T, name string, serial int) *Record {
	t.Helper()
	r, err := New(name, serial)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNew(t *testing.T) {
	r := mustNew(t, "C", 1)
	if r.Name() != "C" || r.Serial() != 1 || r.Format() != FormatUnknown {
		t.Fatal("got", r)
	}
	if _, err := New("", 1); !errors.Is(err, ErrEmptyName) {
		t.Fatal("empty name allowed", err)
	}
	if r.HasType() {
		t.Fatal("new record has a type")
	}
}

// TestRecordWriteOnce: every optional field fails before it is set,
// returns what it was given, and refuses a second value.
func TestRecordWriteOnce(t *testing.T) {
	r := mustNew(t, "CA", 7)
	var tests = []struct {
		name  string
		get   func() (any, error)
		set   func() error
		again func() error
		want  any
	}{
		{"bfactor",
			func() (any, error) { return r.BFactor() },
			func() error { return r.SetBFactor(20) },
			func() error { return r.SetBFactor(30) }, 20.0},
		{"occupancy",
			func() (any, error) { return r.Occupancy() },
			func() error { return r.SetOccupancy(0.5) },
			func() error { return r.SetOccupancy(1) }, 0.5},
		{"alt_loc",
			func() (any, error) { return r.AltLoc() },
			func() error { return r.SetAltLoc('A') },
			func() error { return r.SetAltLoc('B') }, byte('A')},
		{"is_hetero",
			func() (any, error) { return r.IsHetero() },
			func() error { return r.SetHetero(false) },
			func() error { return r.SetHetero(true) }, false},
		{"residue",
			func() (any, error) { return r.Residue() },
			func() error { return r.SetResidue("ALA") },
			func() error { return r.SetResidue("GLY") }, "ALA"},
		{"chain",
			func() (any, error) { return r.Chain() },
			func() error { return r.SetChain('A') },
			func() error { return r.SetChain('B') }, byte('A')},
		{"res_seq",
			func() (any, error) { return r.ResSeq() },
			func() error { return r.SetResSeq(0) },
			func() error { return r.SetResSeq(1) }, 0},
		{"coords",
			func() (any, error) { return r.Coords() },
			func() error { return r.SetCoords(1, 2, 3) },
			func() error { return r.SetCoords(0, 0, 0) }, [3]float64{1, 2, 3}},
		{"segment",
			func() (any, error) { return r.Segment() },
			func() error { return r.SetSegment("PROT") },
			func() error { return r.SetSegment("WAT") }, "PROT"},
		{"element",
			func() (any, error) { return r.Element() },
			func() error { return r.SetElement("C") },
			func() error { return r.SetElement("N") }, "C"},
		{"charge",
			func() (any, error) { return r.Charge() },
			func() error { return r.SetCharge(-1) },
			func() error { return r.SetCharge(1) }, -1.0},
		{"radius",
			func() (any, error) { return r.Radius() },
			func() error { return r.SetRadius(1.7) },
			func() error { return r.SetRadius(1.8) }, 1.7},
	}
	for _, tt := range tests {
		if _, err := tt.get(); !errors.Is(err, ErrFieldNotSet) {
			t.Fatalf("%s: unset read gave %v", tt.name, err)
		}
		if err := tt.set(); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got, err := tt.get(); err != nil || got != tt.want {
			t.Fatalf("%s: got %v %v want %v", tt.name, got, err, tt.want)
		}
		err := tt.again()
		if !errors.Is(err, ErrFieldImmutable) {
			t.Fatalf("%s: second set gave %v", tt.name, err)
		}
		var fe *FieldError
		if !errors.As(err, &fe) || fe.Field != tt.name {
			t.Fatalf("%s: error names field %v", tt.name, err)
		}
		if got, _ := tt.get(); got != tt.want {
			t.Fatalf("%s: value changed to %v", tt.name, got)
		}
	}
}

func TestSetType(t *testing.T) {
	r := mustNew(t, "OW", 1)
	if _, err := r.Type(); !errors.Is(err, ErrFieldNotSet) {
		t.Fatal(err)
	}
	if err := r.SetType(nil); !errors.Is(err, ErrWrongType) {
		t.Fatal("nil type accepted", err)
	}
	if err := r.SetType(&Type{}); !errors.Is(err, ErrWrongType) {
		t.Fatal("zero Type accepted", err)
	}
	if err := r.SetTypeAny("OW"); !errors.Is(err, ErrWrongType) {
		t.Fatal("label string accepted as a type", err)
	}
	ow := mustType(t, "OW")
	if err := r.SetTypeAny(ow); err != nil {
		t.Fatal(err)
	}
	if err := r.SetType(mustType(t, "HW")); !errors.Is(err, ErrFieldImmutable) {
		t.Fatal("second type accepted", err)
	}
	if got, _ := r.Type(); got != ow {
		t.Fatal("type is not the one we set")
	}
}

func TestSharedType(t *testing.T) {
	ct := mustType(t, "CT")
	a, b := mustNew(t, "C1", 1), mustNew(t, "C2", 2)
	a.SetType(ct)
	b.SetType(ct)
	ct.SetMass(12.011)
	ta, _ := a.Type()
	tb, _ := b.Type()
	ma, _ := ta.Mass()
	mb, _ := tb.Mass()
	if ta != tb || ma != 12.011 || mb != 12.011 {
		t.Fatal("records should share one type")
	}
}

func TestRecordEqual(t *testing.T) {
	ct := mustType(t, "CT")
	mk := func(name string, serial int, typ *Type) *Record {
		r := mustNew(t, name, serial)
		if typ != nil {
			if err := r.SetType(typ); err != nil {
				t.Fatal(err)
			}
		}
		return r
	}
	base := mk("CA", 1, ct)
	var tests = []struct {
		desc  string
		other *Record
		want  bool
	}{
		{"same everything", mk("CA", 1, ct), true},
		{"same label, other type value", mk("CA", 1, mustType(t, "CT")), true},
		{"name differs", mk("CB", 1, ct), false},
		{"serial differs", mk("CA", 2, ct), false},
		{"type differs", mk("CA", 1, mustType(t, "C")), false},
		{"other has no type", mk("CA", 1, nil), false},
	}
	for _, tt := range tests {
		if got := base.Equal(tt.other); got != tt.want {
			t.Errorf("%s: got %v", tt.desc, got)
		}
		if got := tt.other.Equal(base); got != tt.want {
			t.Errorf("%s (reversed): got %v", tt.desc, got)
		}
		if tt.want && base.Hash() != tt.other.Hash() {
			t.Errorf("%s: equal but hashes differ", tt.desc)
		}
	}
	if !mk("CA", 1, nil).Equal(mk("CA", 1, nil)) {
		t.Error("two untyped records should be equal")
	}
	// Other fields do not count.
	x, y := mk("CA", 1, ct), mk("CA", 1, ct)
	x.SetBFactor(10)
	y.SetBFactor(99)
	if !x.Equal(y) {
		t.Error("bfactor should not matter")
	}
}

// TestHashIgnoresSerial documents that different serials collide.
func TestHashIgnoresSerial(t *testing.T) {
	ct := mustType(t, "CT")
	a, b := mustNew(t, "CA", 1), mustNew(t, "CA", 2)
	a.SetType(ct)
	b.SetType(ct)
	if a.Hash() != b.Hash() {
		t.Fatal("serial should not be in the hash")
	}
	if a.Equal(b) {
		t.Fatal("but they are not equal")
	}
	c := mustNew(t, "CA", 1)
	c.SetType(mustType(t, "C"))
	if a.Hash() == c.Hash() {
		t.Fatal("type should be in the hash")
	}
}

func TestRecordEqualAny(t *testing.T) {
	r := mustNew(t, "CA", 1)
	if eq, err := r.EqualAny(mustNew(t, "CA", 1)); err != nil || !eq {
		t.Fatal(eq, err)
	}
	if eq, err := r.EqualAny(mustNew(t, "CA", 2)); err != nil || eq {
		t.Fatal(eq, err)
	}
	for _, v := range []any{"CA", 1, nil, mustType(t, "CA"), (*Record)(nil)} {
		if _, err := r.EqualAny(v); !errors.Is(err, ErrWrongType) {
			t.Errorf("%#v: wanted ErrWrongType got %v", v, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	var tests = []struct {
		s    string
		want Format
	}{{"pdb", FormatPDB}, {"PQR", FormatPQR}, {" ent ", FormatPDB}, {"cif", FormatUnknown}, {"", FormatUnknown}}
	for _, tt := range tests {
		if got := ParseFormat(tt.s); got != tt.want {
			t.Errorf("%q got %v want %v", tt.s, got, tt.want)
		}
		if ParseFormat(tt.want.String()) != tt.want {
			t.Errorf("%v does not survive String", tt.want)
		}
	}
}
