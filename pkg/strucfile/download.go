package strucfile

// Go to a protein data bank web site and fetch coordinates in PDB format.
// The main point is to return a reader that can be used like the file
// readers.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andrew-torda/kymia/pkg/atom"
	"github.com/andrew-torda/kymia/pkg/zwrap"
)

// A site is where we can get a file. The code goes between base and
// suffix, lower case.
type site struct {
	name    string
	base    string
	suffix  string
	gzipped bool
}

var sites = []site{
	{"rcsb", "https://files.rcsb.org/download/", ".pdb.gz", true},
	{"pdbe", "https://www.ebi.ac.uk/pdbe/entry-files/download/pdb", ".ent", false},
	{"pdbj", "https://ftp.pdbj.org/pub/pdb/data/structures/all/pdb/pdb", ".ent.gz", true},
}

// NSites is the number of download sites.
var NSites = len(sites)

// SiteName gives the short name of a site number, after wrapping it like
// Fetch does.
func SiteName(siteNum int) string { return sites[wrapSite(siteNum)].name }

// SiteNum looks up a site by its short name.
func SiteNum(name string) (int, error) {
	for i, s := range sites {
		if strings.EqualFold(s.name, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown download site %q", name)
}

// A site number that is too big or negative is wrapped round rather than
// being an error. This makes it easy to cycle through them.
func wrapSite(siteNum int) int {
	n := len(sites)
	return (siteNum%n + n) % n
}

// URL is where we would go for a four character acquisition code.
func URL(acqCode string, siteNum int) (string, error) {
	if len(acqCode) != 4 {
		return "", errors.New("acq code should be four char, not " + acqCode)
	}
	s := sites[wrapSite(siteNum)]
	return s.base + strings.ToLower(acqCode) + s.suffix, nil
}

// Fetch gets a structure from one of the sites and returns a reader for
// the uncompressed text. The caller closes it. If client is nil, we use
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, acqCode string, siteNum int) (io.ReadCloser, error) {
	url, err := URL(acqCode, siteNum)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New("Wanted " + acqCode + " using " + url + ", got " + resp.Status)
	}
	if !sites[wrapSite(siteNum)].gzipped {
		return resp.Body, nil
	}
	z, err := zwrap.Wrap(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return z, nil
}

// FetchStructure downloads and reads a structure in one go.
func FetchStructure(ctx context.Context, client *http.Client, acqCode string, siteNum int, opts Options) (*Structure, error) {
	rdr, err := Fetch(ctx, client, acqCode, siteNum)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	opts.Format = atom.FormatPDB // every site serves PDB format
	st, err := Read(rdr, acqCode, opts)
	if err != nil {
		return nil, err
	}
	if len(st.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", acqCode, ErrNoAtoms)
	}
	return st, nil
}
