package attype_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	. "github.com/andrew-torda/kymia/pkg/attype"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const pdbText = `HEADER    TEST
ATOM      1  N   GLY A   1      11.104  13.207   2.556  1.00 20.00           N
ATOM      2  CA  GLY A   1      12.560  13.300   2.700  1.00 21.50           C
ATOM      3  C   GLY A   1      13.000  14.700   3.100  1.00 22.00           C
ATOM      4  CA  GLY A   2      14.000  15.700   4.100  1.00 22.00           C
END
`

// mktree makes a little divided layout, like the PDB uses, with one file
// that is not coordinates at all.
func mktree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"ab", "cd"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "ab", "1abc.pdb"), []byte(pdbText), 0o644))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(pdbText))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(root, "cd", "2cde.pdb.gz"), buf.Bytes(), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(root, "cd", "junk.pdb"), []byte("not a pdb file\n"), 0o644))
	return root
}

func TestSurvey(t *testing.T) {
	root := mktree(t)
	for _, nr := range []int{0, 1, 3} {
		res, err := Survey(context.Background(), root, Options{Readers: nr})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Files)
		assert.Equal(t, 1, res.Broken)
		assert.Equal(t, Counts{"N": 2, "CA": 4, "C": 2}, res.Counts)
	}
}

func TestSurveyMaxFiles(t *testing.T) {
	root := mktree(t)
	res, err := Survey(context.Background(), root, Options{Readers: 2, MaxFiles: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, Counts{"N": 1, "CA": 2, "C": 1}, res.Counts)
}

func TestSurveyTooBroken(t *testing.T) {
	root := mktree(t)
	_, err := Survey(context.Background(), root, Options{Readers: 2, MaxBroken: 1})
	assert.ErrorIs(t, err, ErrTooBroken)
}

func TestSurveyNoDir(t *testing.T) {
	_, err := Survey(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{Readers: 2})
	assert.Error(t, err)
}

func TestSurveyCancelled(t *testing.T) {
	root := mktree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Survey(ctx, root, Options{Readers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	c := Counts{"N": 2, "CA": 4, "C": 2}
	require.NoError(t, c.WriteCSV(&buf))
	want := "name,n\nCA,4\nC,2\nN,2\n"
	assert.Equal(t, want, buf.String())

	fname := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, c.WriteFile(fname))
	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "name,n\n"))
}
