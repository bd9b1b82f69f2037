package fftab_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/kymia/pkg/atom"
	"github.com/andrew-torda/kymia/pkg/fftab"
)

const small = `
name: small
types:
  - label: CT
    protons: 6
    mass: 12.011
    lj_dist: 3.40
    lj_energy: 0.1094
    radius: 1.9
  - label: N
    protons: 7
    mass: 14.007
  - label: OW
    mass: 15.999
    partial_charge: -0.834
by_name:
  CA: CT
by_element:
  C: CT
  N: N
  O: OW
`

func load(t *testing.T, s string) *fftab.Table {
	t.Helper()
	tb, err := fftab.Load(strings.NewReader(s))
	require.NoError(t, err)
	return tb
}

func TestLoad(t *testing.T) {
	tb := load(t, small)
	assert.Equal(t, "small", tb.Name)
	assert.Equal(t, 3, tb.Len())
	assert.Equal(t, []string{"CT", "N", "OW"}, tb.Labels())

	ct, ok := tb.Get("CT")
	require.True(t, ok)
	m, err := ct.Mass()
	require.NoError(t, err)
	assert.Equal(t, 12.011, m)
	d, _ := ct.LJDist()
	assert.Equal(t, 3.4, d)

	// Left out means unset, not zero.
	_, err = ct.Charge()
	assert.ErrorIs(t, err, atom.ErrFieldNotSet)
	ow, _ := tb.Get("OW")
	_, err = ow.Protons()
	assert.ErrorIs(t, err, atom.ErrFieldNotSet)
	q, err := ow.PartialCharge()
	require.NoError(t, err)
	assert.Equal(t, -0.834, q)
}

func TestLoadErrors(t *testing.T) {
	var tests = []struct {
		name, yaml string
		want       error
	}{
		{"dup", "types:\n  - label: C\n  - label: C\n", nil},
		{"empty label", "types:\n  - label: ''\n", atom.ErrEmptyName},
		{"bad mass", "types:\n  - label: C\n    mass: -1\n", atom.ErrBadValue},
		{"bad rule", "types:\n  - label: C\nby_name:\n  CA: CT\n", nil},
		{"unknown key", "types:\n  - label: C\n    weight: 3\n", nil},
		{"not yaml", "types: [\n", nil},
	}
	for _, tt := range tests {
		_, err := fftab.Load(strings.NewReader(tt.yaml))
		require.Error(t, err, tt.name)
		if tt.want != nil {
			assert.ErrorIs(t, err, tt.want, tt.name)
		}
	}
}

func TestEmpty(t *testing.T) {
	tb := load(t, "")
	assert.Equal(t, 0, tb.Len())
}

func TestAssign(t *testing.T) {
	tb := load(t, small)

	ca, err := atom.FromPDBLine("ATOM      2  CA  ALA A   1      11.104  13.207   2.556  1.00 20.00           C")
	require.NoError(t, err)
	require.NoError(t, tb.Assign(ca))
	ty, err := ca.Type()
	require.NoError(t, err)
	assert.Equal(t, "CT", ty.Label())

	// Second assignment is refused by the record, not the table.
	assert.ErrorIs(t, tb.Assign(ca), atom.ErrFieldImmutable)

	// By element.
	o, _ := atom.New("OXT", 9)
	require.NoError(t, o.SetElement("O"))
	require.NoError(t, tb.Assign(o))
	ty, _ = o.Type()
	assert.Equal(t, "OW", ty.Label())

	// By label.
	w, _ := atom.New("O1", 11)
	require.NoError(t, tb.AssignLabel(w, "OW"))
	ty, _ = w.Type()
	assert.Equal(t, "OW", ty.Label())
	assert.ErrorIs(t, tb.AssignLabel(w, "XX"), fftab.ErrNoType)

	// Nothing matches.
	x, _ := atom.New("ZN", 10)
	assert.ErrorIs(t, tb.Assign(x), fftab.ErrNoType)
	assert.False(t, x.HasType())
}

// TestShared checks that every record gets the same *atom.Type.
func TestShared(t *testing.T) {
	tb := load(t, small)
	a, _ := atom.New("CA", 1)
	b, _ := atom.New("CA", 2)
	c, _ := atom.New("ZZ", 3)
	n, err := tb.AssignAll([]*atom.Record{a, b, c})
	assert.Equal(t, 2, n)
	assert.True(t, errors.Is(err, fftab.ErrNoType))
	ta, _ := a.Type()
	tb2, _ := b.Type()
	assert.Same(t, ta, tb2)
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestLoadFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(small), 0o644))
	tb, err := fftab.LoadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, 3, tb.Len())

	_, err = fftab.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
