package strucfile_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/andrew-torda/kymia/pkg/strucfile"
)

func mockSites(t *testing.T) (*http.Client, []byte) {
	t.Helper()
	plain, err := os.ReadFile(filepath.Join(testdir, "small.pdb"))
	require.NoError(t, err)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, "https://files.rcsb.org/download/1tst.pdb.gz",
		httpmock.NewBytesResponder(http.StatusOK, buf.Bytes()))
	mt.RegisterResponder(http.MethodGet, "https://www.ebi.ac.uk/pdbe/entry-files/download/pdb1tst.ent",
		httpmock.NewBytesResponder(http.StatusOK, plain))
	mt.RegisterResponder(http.MethodGet, "https://ftp.pdbj.org/pub/pdb/data/structures/all/pdb/pdb1tst.ent.gz",
		httpmock.NewStringResponder(http.StatusNotFound, "not here"))
	return &http.Client{Transport: mt}, plain
}

func TestFetch(t *testing.T) {
	client, plain := mockSites(t)
	for _, siteNum := range []int{0, 1, NSites} {
		rdr, err := Fetch(context.Background(), client, "1TST", siteNum)
		require.NoError(t, err, SiteName(siteNum))
		got, err := io.ReadAll(rdr)
		require.NoError(t, err)
		assert.NoError(t, rdr.Close())
		assert.Equal(t, plain, got, SiteName(siteNum))
	}
}

func TestFetchFails(t *testing.T) {
	client, _ := mockSites(t)
	_, err := Fetch(context.Background(), client, "1tst", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = Fetch(context.Background(), client, "1ts", 0)
	assert.Error(t, err)
}

func TestFetchStructure(t *testing.T) {
	client, _ := mockSites(t)
	st, err := FetchStructure(context.Background(), client, "1tst", 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, "1tst", st.Name)
	assert.Len(t, st.Records, 4)
}

func TestSites(t *testing.T) {
	u, err := URL("5PTI", 1)
	require.NoError(t, err)
	assert.Equal(t, "https://www.ebi.ac.uk/pdbe/entry-files/download/pdb5pti.ent", u)
	assert.Equal(t, "rcsb", SiteName(0))
	assert.Equal(t, "rcsb", SiteName(-3))

	n, err := SiteNum("PDBj")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = SiteNum("nowhere")
	assert.Error(t, err)
}

// TestSiteWrap goes round the sites in both directions, as far as an int
// goes.
func TestSiteWrap(t *testing.T) {
	var tests = []struct {
		n    int
		want string
	}{
		{3, "rcsb"},
		{4, "pdbe"},
		{-1, "pdbj"},
		{-2, "pdbe"},
		{math.MaxInt, "pdbe"},
		{math.MinInt, "pdbe"},
		{math.MinInt + 1, "pdbj"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SiteName(tt.n), tt.n)
		_, err := URL("1abc", tt.n)
		assert.NoError(t, err, tt.n)
	}
}
