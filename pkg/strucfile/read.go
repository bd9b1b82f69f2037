// 16 Oct 2026

// Package strucfile reads coordinate files, PDB or PQR, and turns every
// ATOM and HETATM line into an atom.Record with all the fields the line
// has. Files may be gzipped. Uncompressed files are mapped rather than
// read.
package strucfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andrew-torda/matrix"
	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/kymia/pkg/atom"
	"github.com/andrew-torda/kymia/pkg/colfmt"
	"github.com/andrew-torda/kymia/pkg/logging"
	"github.com/andrew-torda/kymia/pkg/zwrap"
)

// Options control reading. The zero value reads the first model, guesses
// the format and skips lines it cannot use.
type Options struct {
	Format    atom.Format  // FormatUnknown means guess
	Strict    bool         // stop at the first bad line instead of skipping it
	AllModels bool         // keep reading after the first ENDMDL
	Logger    *slog.Logger // skipped lines are logged here as warnings
}

// Structure is what we got from one file.
type Structure struct {
	Name    string
	Format  atom.Format
	Records []*atom.Record
	Skipped int // bad lines we stepped over
}

// Read builds records from r. The format must be known, either from
// opts or because the caller sniffed it.
func Read(r io.Reader, name string, opts Options) (*Structure, error) {
	lg := logging.OrDiscard(opts.Logger).With("file", name)
	st := &Structure{Name: name, Format: opts.Format}
	if opts.Format != atom.FormatPDB && opts.Format != atom.FormatPQR {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}
	scnnr := bufio.NewScanner(r)
	for n := 1; scnnr.Scan(); n++ {
		line := scnnr.Text()
		rn := colfmt.RecordName(line)
		switch rn {
		case "ATOM", "HETATM":
		case "ENDMDL":
			if !opts.AllModels {
				return st, nil
			}
			continue
		case "END":
			return st, nil
		default:
			continue
		}
		rec, err := build(line, rn, opts.Format)
		if err == nil {
			st.Records = append(st.Records, rec)
			continue
		}
		le := lineError(n, line, err)
		if opts.Strict {
			return nil, fmt.Errorf("%s: %w", name, le)
		}
		st.Skipped++
		lg.Warn("skipping line", "n", n, "err", err)
	}
	if err := scnnr.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return st, nil
}

// build makes one record from an ATOM or HETATM line. PDB lines are often
// cut short after the coordinates, so we take whatever columns are there.
func build(line, rn string, f atom.Format) (*atom.Record, error) {
	var row colfmt.Row
	var err error
	if f == atom.FormatPQR {
		row, err = colfmt.Parse(line, colfmt.MustLookup(colfmt.TablePQR))
	} else {
		row, err = colfmt.ParseOptional(line, colfmt.MustLookup(rn))
	}
	if err != nil {
		return nil, err
	}
	rec, err := atom.FromRow(row, f)
	if err != nil {
		return nil, err
	}
	if err = rec.Enrich(row); err != nil {
		return nil, err
	}
	if f == atom.FormatPQR {
		if err = rec.SetHetero(rn == "HETATM"); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// slurp gives us the bytes of a file. Plain files are mapped, and the
// returned function unmaps them. Compressed files are read into memory.
func slurp(fname string) ([]byte, func() error, error) {
	nothing := func() error { return nil }
	fp, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, nil, err
	}
	if fi.IsDir() {
		fp.Close()
		return nil, nil, fmt.Errorf("%s is a directory", fname)
	}
	if fi.Size() == 0 {
		fp.Close()
		return nil, nothing, nil
	}
	z, err := zwrap.WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	defer z.Close()
	if z.Compressed() {
		b, err := io.ReadAll(z)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", fname, err)
		}
		return b, nothing, nil
	}
	// The map starts at offset 0, whatever WrapMaybe has peeked at.
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, err
	}
	return mm, mm.Unmap, nil
}

// ReadFile reads a coordinate file, gzipped or not. If opts.Format is
// unknown, the file name and then the contents decide. A file with no
// usable atoms is an error.
func ReadFile(fname string, opts Options) (st *Structure, err error) {
	data, done, err := slurp(fname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := done(); e != nil && err == nil {
			err = e
		}
	}()
	if opts.Format == atom.FormatUnknown {
		if opts.Format = Sniff(fname, data); opts.Format == atom.FormatUnknown {
			return nil, fmt.Errorf("%s: %w", fname, ErrUnknownFormat)
		}
	}
	if st, err = Read(bytes.NewReader(data), fname, opts); err != nil {
		return nil, err
	}
	if len(st.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", fname, ErrNoAtoms)
	}
	return st, nil
}

// CoordMatrix puts the coordinates of the records into an n by 3 matrix,
// one row per record, in order. Every record needs coordinates.
func CoordMatrix(recs []*atom.Record) (*matrix.FMatrix2d, error) {
	if len(recs) == 0 {
		return nil, ErrNoAtoms
	}
	m := matrix.NewFMatrix2d(len(recs), 3)
	for i, r := range recs {
		xyz, err := r.Coords()
		if err != nil {
			return nil, errors.Join(fmt.Errorf("record %d (%s %d)", i, r.Name(), r.Serial()), err)
		}
		for j, v := range xyz {
			m.Mat[i][j] = float32(v)
		}
	}
	return m, nil
}
