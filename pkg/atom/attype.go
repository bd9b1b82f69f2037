// 13 Oct 2026

package atom

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Type is an atom type from a force field or a table of elements.
// The label is fixed when it is made. Each physical constant may be set
// once. Always pass a *Type around. A copied Type is a second, separate
// set of cells.
type Type struct {
	label         string
	protons       cell[int]
	mass          cell[float64]
	ljDist        cell[float64] // Lennard-Jones sigma
	ljEnergy      cell[float64] // Lennard-Jones epsilon
	ljDist14      cell[float64] // scaled for 1-4 interactions
	ljEnergy14    cell[float64]
	charge        cell[float64]
	partialCharge cell[float64]
	radius        cell[float64]
}

// NewType makes a type with nothing but a label.
func NewType(label string) (*Type, error) {
	if strings.TrimSpace(label) == "" {
		return nil, &FieldError{Field: "label", Err: ErrEmptyName}
	}
	return &Type{label: label}, nil
}

// Label never fails. It is the identity of the type.
func (t *Type) Label() string { return t.label }

func (t *Type) String() string { return t.label }

func (t *Type) Protons() (int, error)           { return t.protons.get("protons") }
func (t *Type) Mass() (float64, error)          { return t.mass.get("mass") }
func (t *Type) LJDist() (float64, error)        { return t.ljDist.get("lj_dist") }
func (t *Type) LJEnergy() (float64, error)      { return t.ljEnergy.get("lj_energy") }
func (t *Type) LJDist14() (float64, error)      { return t.ljDist14.get("lj_dist14") }
func (t *Type) LJEnergy14() (float64, error)    { return t.ljEnergy14.get("lj_energy14") }
func (t *Type) Charge() (float64, error)        { return t.charge.get("charge") }
func (t *Type) PartialCharge() (float64, error) { return t.partialCharge.get("partial_charge") }
func (t *Type) Radius() (float64, error)        { return t.radius.get("radius") }

// SetProtons sets the number of protons (atomic number). It may not be
// negative.
func (t *Type) SetProtons(n int) error {
	if t.protons.isSet() {
		return &FieldError{Field: "protons", Err: ErrFieldImmutable}
	}
	if n < 0 {
		return badValue("protons", n)
	}
	return t.protons.set("protons", n)
}

// SetMass wants a mass greater than zero.
func (t *Type) SetMass(m float64) error { return setFloat(&t.mass, "mass", m, true) }

func (t *Type) SetLJDist(d float64) error   { return setFloat(&t.ljDist, "lj_dist", d, false) }
func (t *Type) SetLJEnergy(e float64) error { return setFloat(&t.ljEnergy, "lj_energy", e, false) }
func (t *Type) SetLJDist14(d float64) error { return setFloat(&t.ljDist14, "lj_dist14", d, false) }
func (t *Type) SetLJEnergy14(e float64) error {
	return setFloat(&t.ljEnergy14, "lj_energy14", e, false)
}
func (t *Type) SetCharge(q float64) error { return setFloat(&t.charge, "charge", q, false) }

func (t *Type) SetPartialCharge(q float64) error {
	return setFloat(&t.partialCharge, "partial_charge", q, false)
}

// SetRadius wants a radius greater than zero.
func (t *Type) SetRadius(r float64) error { return setFloat(&t.radius, "radius", r, true) }

// SetLJ sets both Lennard-Jones parameters. If either is already set or
// either is bad, neither is touched.
func (t *Type) SetLJ(dist, energy float64) error {
	for _, c := range []struct {
		c     *cell[float64]
		field string
		v     float64
	}{{&t.ljDist, "lj_dist", dist}, {&t.ljEnergy, "lj_energy", energy}} {
		if c.c.isSet() {
			return &FieldError{Field: c.field, Err: ErrFieldImmutable}
		}
		if !finite(c.v) {
			return badValue(c.field, c.v)
		}
	}
	return errors.Join(t.ljDist.set("lj_dist", dist), t.ljEnergy.set("lj_energy", energy))
}

// Equal compares labels and nothing else.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.label == o.label
}

// EqualAny is Equal for callers holding an interface value. Anything
// other than a non-nil *Type gives ErrWrongType instead of false.
func (t *Type) EqualAny(v any) (bool, error) {
	o, ok := v.(*Type)
	if !ok || o == nil {
		return false, fmt.Errorf("%w: cannot compare atom type with %T", ErrWrongType, v)
	}
	return t.Equal(o), nil
}

// Hash depends only on the label, so a map keyed by Hash behaves like a
// map keyed by label.
func (t *Type) Hash() uint64 { return xxhash.Sum64String(t.label) }

func setFloat(c *cell[float64], field string, v float64, positive bool) error {
	if c.isSet() {
		return &FieldError{Field: field, Err: ErrFieldImmutable}
	}
	if !finite(v) || (positive && v <= 0) {
		return badValue(field, v)
	}
	return c.set(field, v)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func badValue(field string, v any) error {
	return &FieldError{Field: field, Err: fmt.Errorf("%w: %v", ErrBadValue, v)}
}
