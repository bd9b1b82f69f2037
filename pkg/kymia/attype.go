package kymia

import (
	"github.com/spf13/cobra"

	"github.com/andrew-torda/kymia/pkg/attype"
)

func newAttypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attype directory",
		Short: "Count the atom names in every file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := attype.Survey(cmd.Context(), args[0], a.s.SurveyOptions(a.lg))
			if err != nil {
				return err
			}
			if a.s.Attype.Out == "" {
				return res.Counts.WriteCSV(cmd.OutOrStdout())
			}
			return res.Counts.WriteFile(a.s.Attype.Out)
		},
	}
	f := cmd.Flags()
	f.IntP("readers", "r", 3, "number of reader goroutines")
	f.IntP("maxfiles", "f", 0, "stop after this many files, 0 for all")
	f.Int("maxbroken", 5, "give up after this many broken files, 0 to never give up")
	f.StringP("out", "o", "", "output file name instead of standard output")
	a.bind(cmd, "attype.readers", "readers")
	a.bind(cmd, "attype.maxfiles", "maxfiles")
	a.bind(cmd, "attype.maxbroken", "maxbroken")
	a.bind(cmd, "attype.out", "out")
	return cmd
}
