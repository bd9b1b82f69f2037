// 15 Oct 2026

// Package fftab reads a table of atom types from a YAML file and hands
// them out to atom records.
//
// A table looks like
//
//	name: small
//	types:
//	  - label: CT
//	    protons: 6
//	    mass: 12.011
//	    lj_dist: 3.40
//	    lj_energy: 0.1094
//	    radius: 1.9
//	  - label: OW
//	    mass: 15.999
//	    partial_charge: -0.834
//	by_name:
//	  CA: CT
//	by_element:
//	  C: CT
//	  O: OW
//
// Constants that are left out stay unset in the atom.Type. When a record
// is assigned a type, its atom name is looked up in by_name first, then
// its element in by_element.
package fftab

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/kymia/pkg/atom"
)

var ErrNoType = errors.New("no atom type for record")

type typeEntry struct {
	Label         string   `yaml:"label"`
	Protons       *int     `yaml:"protons"`
	Mass          *float64 `yaml:"mass"`
	LJDist        *float64 `yaml:"lj_dist"`
	LJEnergy      *float64 `yaml:"lj_energy"`
	LJDist14      *float64 `yaml:"lj_dist14"`
	LJEnergy14    *float64 `yaml:"lj_energy14"`
	Charge        *float64 `yaml:"charge"`
	PartialCharge *float64 `yaml:"partial_charge"`
	Radius        *float64 `yaml:"radius"`
}

type tableFile struct {
	Name      string            `yaml:"name"`
	Types     []typeEntry       `yaml:"types"`
	ByName    map[string]string `yaml:"by_name"`
	ByElement map[string]string `yaml:"by_element"`
}

// Table maps labels to types. It is filled once by Load and only read
// after that, so it may be shared between goroutines.
type Table struct {
	Name      string
	types     map[string]*atom.Type
	byName    map[string]string
	byElement map[string]string
}

// LoadFile reads a table from a file.
func LoadFile(fname string) (*Table, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	t, err := Load(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}

// Load reads a table. Duplicate labels, bad constants and rules that
// point at labels we do not have are all errors.
func Load(r io.Reader) (*Table, error) {
	var tf tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding type table: %w", err)
	}
	t := &Table{
		Name:      tf.Name,
		types:     make(map[string]*atom.Type, len(tf.Types)),
		byName:    tf.ByName,
		byElement: tf.ByElement,
	}
	for i, e := range tf.Types {
		if _, dup := t.types[e.Label]; dup {
			return nil, fmt.Errorf("type %d: label %q appears twice", i+1, e.Label)
		}
		ty, err := e.build()
		if err != nil {
			return nil, fmt.Errorf("type %d: %w", i+1, err)
		}
		t.types[e.Label] = ty
	}
	for _, rules := range []map[string]string{t.byName, t.byElement} {
		for k, label := range rules {
			if _, ok := t.types[label]; !ok {
				return nil, fmt.Errorf("rule %s -> %s: no type called %q", k, label, label)
			}
		}
	}
	return t, nil
}

func (e typeEntry) build() (*atom.Type, error) {
	ty, err := atom.NewType(e.Label)
	if err != nil {
		return nil, err
	}
	if e.Protons != nil {
		if err := ty.SetProtons(*e.Protons); err != nil {
			return nil, err
		}
	}
	floats := []struct {
		v   *float64
		set func(float64) error
	}{
		{e.Mass, ty.SetMass},
		{e.LJDist, ty.SetLJDist},
		{e.LJEnergy, ty.SetLJEnergy},
		{e.LJDist14, ty.SetLJDist14},
		{e.LJEnergy14, ty.SetLJEnergy14},
		{e.Charge, ty.SetCharge},
		{e.PartialCharge, ty.SetPartialCharge},
		{e.Radius, ty.SetRadius},
	}
	for _, f := range floats {
		if f.v == nil {
			continue
		}
		if err := f.set(*f.v); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Label, err)
		}
	}
	return ty, nil
}

// Len is the number of types.
func (t *Table) Len() int { return len(t.types) }

// Get returns the type with this label.
func (t *Table) Get(label string) (*atom.Type, bool) {
	ty, ok := t.types[label]
	return ty, ok
}

// Labels returns every label, sorted.
func (t *Table) Labels() []string {
	ls := make([]string, 0, len(t.types))
	for l := range t.types {
		ls = append(ls, l)
	}
	sort.Strings(ls)
	return ls
}

// Resolve picks a type for a record without setting it. The atom name is
// tried first, then the element if the record has one.
func (t *Table) Resolve(r *atom.Record) (*atom.Type, error) {
	if label, ok := t.byName[r.Name()]; ok {
		return t.types[label], nil
	}
	if el, err := r.Element(); err == nil {
		if label, ok := t.byElement[el]; ok {
			return t.types[label], nil
		}
	}
	return nil, fmt.Errorf("%w: %s %d", ErrNoType, r.Name(), r.Serial())
}

// Assign resolves the type and sets it. A record that already has a type
// gives atom.ErrFieldImmutable.
func (t *Table) Assign(r *atom.Record) error {
	ty, err := t.Resolve(r)
	if err != nil {
		return err
	}
	return r.SetType(ty)
}

// AssignLabel gives the record the type with this label, whatever its
// name or element say.
func (t *Table) AssignLabel(r *atom.Record, label string) error {
	ty, ok := t.types[label]
	if !ok {
		return fmt.Errorf("%w: no label %q", ErrNoType, label)
	}
	return r.SetType(ty)
}

// AssignAll assigns types to every record it can. It returns the number
// assigned and the errors for the rest, joined.
func (t *Table) AssignAll(recs []*atom.Record) (int, error) {
	var errs []error
	n := 0
	for _, r := range recs {
		if err := t.Assign(r); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}
