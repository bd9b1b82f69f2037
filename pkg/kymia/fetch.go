package kymia

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/kymia/pkg/strucfile"
)

// httpClient is replaced in tests.
var httpClient = http.DefaultClient

func newFetchCmd(a *app) *cobra.Command {
	var outFname string
	var summary bool
	cmd := &cobra.Command{
		Use:   "fetch code",
		Short: "Download a structure by its four character code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, site := args[0], a.s.SiteNum()
			a.lg.Info("fetching", "code", code, "site", strucfile.SiteName(site))
			if summary {
				st, err := strucfile.FetchStructure(cmd.Context(), httpClient, code, site, a.s.ReadOptions(a.lg))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d atoms\t%d skipped\n", code, st.Format, len(st.Records), st.Skipped)
				return nil
			}
			rdr, err := strucfile.Fetch(cmd.Context(), httpClient, code, site)
			if err != nil {
				return err
			}
			defer rdr.Close()
			return save(rdr, outFname, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.String("site", "rcsb", "rcsb, pdbe or pdbj")
	f.StringVarP(&outFname, "out", "o", "", "write to this file instead of standard output")
	f.BoolVarP(&summary, "summary", "s", false, "read the atoms and print a summary instead of the file")
	a.bind(cmd, "fetch.site", "site")
	return cmd
}

func save(rdr io.Reader, fname string, stdout io.Writer) error {
	if fname == "" {
		_, err := io.Copy(stdout, rdr)
		return err
	}
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fp, rdr); err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return fp.Close()
}
