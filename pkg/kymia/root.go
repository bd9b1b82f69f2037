// 18 Oct 2026

// Package kymia is the command line program. The commands share the
// settings from pkg/config and a logger made from them.
package kymia

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrew-torda/kymia/pkg/config"
	"github.com/andrew-torda/kymia/pkg/logging"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// app is what the commands share once the root command has set it up.
type app struct {
	v       *viper.Viper
	cfgFile string
	s       *config.Settings
	lg      *slog.Logger
	closer  io.Closer
}

// bind ties a flag to a settings key. The flag has to exist.
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	s, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	lg, c, err := logging.New(s.Log.Dest, s.Log.Level)
	if err != nil {
		return fmt.Errorf("opening log %q: %w", s.Log.Dest, err)
	}
	a.s, a.lg, a.closer = s, lg, c
	a.lg.Debug("starting", "command", cmd.Name(), "args", args)
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "kymia",
		Short:             "Read atoms from PDB and PQR files",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./kymia.yaml or ~/.config/kymia/kymia.yaml)")
	pf.String("log", "stderr", `where log output goes: "", stdout, stderr or a file name`)
	pf.String("loglevel", "warn", "debug, info, warn or error")
	for key, flag := range map[string]string{"log.dest": "log", "log.level": "loglevel"} {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	root.AddCommand(newReadCmd(a), newAttypeCmd(a), newFetchCmd(a))
	return root
}

// Execute runs the program with the given arguments and output, and
// returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{v: config.New()}
	defer a.close()
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		return ExitFailure
	}
	return ExitSuccess
}

// MyMain runs with the real command line and stops on an interrupt.
func MyMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
