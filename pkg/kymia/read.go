package kymia

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/kymia/pkg/fftab"
	"github.com/andrew-torda/kymia/pkg/strucfile"
)

func newReadCmd(a *app) *cobra.Command {
	var list, coords bool
	cmd := &cobra.Command{
		Use:   "read file [file...]",
		Short: "Read coordinate files and say what was in them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.read(cmd.OutOrStdout(), args, list, coords)
		},
	}
	f := cmd.Flags()
	f.Bool("strict", false, "stop at the first bad line")
	f.String("format", "", "pdb or pqr, instead of guessing")
	f.Bool("all-models", false, "read past the first ENDMDL")
	f.String("types", "", "YAML atom type table to assign types from")
	f.BoolVarP(&list, "list", "l", false, "print every atom")
	f.BoolVar(&coords, "coords", false, "print the coordinates as an n by 3 table")
	a.bind(cmd, "read.strict", "strict")
	a.bind(cmd, "read.format", "format")
	a.bind(cmd, "read.allmodels", "all-models")
	a.bind(cmd, "types.file", "types")
	return cmd
}

// read loads each file in turn. A file that cannot be read is reported
// and we carry on with the next one, but the command then fails.
func (a *app) read(out io.Writer, fnames []string, list, coords bool) error {
	var tab *fftab.Table
	if a.s.Types.File != "" {
		var err error
		if tab, err = fftab.LoadFile(a.s.Types.File); err != nil {
			return err
		}
		a.lg.Info("atom types", "file", a.s.Types.File, "n", tab.Len())
	}
	var errs []error
	for _, fname := range fnames {
		st, err := strucfile.ReadFile(fname, a.s.ReadOptions(a.lg))
		if err != nil {
			a.lg.Error("reading", "file", fname, "err", err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%d atoms\t%d skipped", fname, st.Format, len(st.Records), st.Skipped)
		if tab != nil {
			n, err := tab.AssignAll(st.Records)
			if err != nil {
				a.lg.Warn("untyped atoms", "file", fname, "n", len(st.Records)-n)
			}
			fmt.Fprintf(out, "\t%d typed", n)
		}
		fmt.Fprintln(out)
		if list {
			for _, r := range st.Records {
				fmt.Fprintln(out, r)
			}
		}
		if coords {
			m, err := strucfile.CoordMatrix(st.Records)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", fname, err))
				continue
			}
			for _, row := range m.Mat {
				fmt.Fprintf(out, "%8.3f %8.3f %8.3f\n", row[0], row[1], row[2])
			}
		}
	}
	return errors.Join(errs...)
}
