// 17 Oct 2026

// Package attype reads lots of coordinate files and counts every atom
// name it finds. File names come from a walk over a directory tree and
// are handed to a few reader goroutines, each with its own counts, which
// are merged at the end.
package attype

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/kymia/pkg/logging"
	"github.com/andrew-torda/kymia/pkg/strucfile"
)

// ErrTooBroken is returned when more than Options.MaxBroken files could
// not be read.
var ErrTooBroken = errors.New("too many broken files")

// Options for a survey.
type Options struct {
	Readers   int // reader goroutines, at least one
	MaxFiles  int // stop after this many files. <= 0 means all of them
	MaxBroken int // give up after this many broken files. <= 0 means never
	Read      strucfile.Options
	Logger    *slog.Logger
}

// Counts maps atom names to the number of times we saw them.
type Counts map[string]int

// Result of a survey.
type Result struct {
	Counts Counts
	Files  int // files we tried
	Broken int // files we could not read
}

// nextFile walks the tree under root and sends every regular file name
// down nmChan. It stops after maxFile names if maxFile > 0.
func nextFile(ctx context.Context, nmChan chan<- string, root string, maxFile int) error {
	defer close(nmChan)
	ndone := 0
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if maxFile > 0 && ndone >= maxFile {
			return fs.SkipAll
		}
		select {
		case nmChan <- p:
			ndone++
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// eatFile adds the atom names from one file to counts.
func eatFile(fname string, counts Counts, opts strucfile.Options) error {
	st, err := strucfile.ReadFile(fname, opts)
	if err != nil {
		return err
	}
	for _, r := range st.Records {
		counts[r.Name()]++
	}
	return nil
}

// Survey counts atom names in every file under root.
func Survey(ctx context.Context, root string, opts Options) (*Result, error) {
	lg := logging.OrDiscard(opts.Logger)
	if opts.Readers < 1 {
		opts.Readers = 1
	}
	if opts.Read.Logger == nil {
		opts.Read.Logger = lg
	}
	g, ctx := errgroup.WithContext(ctx)
	nmChan := make(chan string)
	g.Go(func() error { return nextFile(ctx, nmChan, root, opts.MaxFiles) })

	var nfile, nbroken atomic.Int64
	cmaps := make([]Counts, opts.Readers)
	for i := range cmaps {
		cmaps[i] = make(Counts)
		counts := cmaps[i]
		g.Go(func() error {
			for fname := range nmChan {
				nfile.Add(1)
				err := eatFile(fname, counts, opts.Read)
				if err == nil {
					continue
				}
				nb := nbroken.Add(1)
				lg.Warn("broken file", "file", fname, "err", err)
				if opts.MaxBroken > 0 && nb >= int64(opts.MaxBroken) {
					return fmt.Errorf("%w: %d, last was %s", ErrTooBroken, nb, fname)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dst := cmaps[0]
	for _, c := range cmaps[1:] {
		for k, v := range c {
			dst[k] += v
		}
	}
	res := &Result{Counts: dst, Files: int(nfile.Load()), Broken: int(nbroken.Load())}
	lg.Info("survey done", "root", root, "files", res.Files, "broken", res.Broken, "names", len(dst))
	return res, nil
}

type npair struct {
	name string
	n    int
}

// sorted puts the most common names first. Ties go alphabetically.
func (c Counts) sorted() []npair {
	pairs := make([]npair, 0, len(c))
	for k, v := range c {
		pairs = append(pairs, npair{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].n != pairs[j].n {
			return pairs[i].n > pairs[j].n
		}
		return pairs[i].name < pairs[j].name
	})
	return pairs
}

// WriteCSV writes a header line and one name,n line per atom name, most
// common first.
func (c Counts) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "n"}); err != nil {
		return err
	}
	for _, p := range c.sorted() {
		if err := cw.Write([]string{p.name, strconv.Itoa(p.n)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the counts to a file, or to standard output if fname
// is empty.
func (c Counts) WriteFile(fname string) error {
	if fname == "" {
		return c.WriteCSV(os.Stdout)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := c.WriteCSV(fp); err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return fp.Close()
}
