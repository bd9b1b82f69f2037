package strucfile

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/kymia/pkg/atom"
	"github.com/andrew-torda/kymia/pkg/colfmt"
)

const maxTestLines = 5000

// comparefirst says if s starts with the word w.
func comparefirst(s, w string) bool {
	return len(s) >= len(w) && s[:len(w)] == w
}

// byName guesses the format from a file name. We cannot use
// filepath.Ext, since it would give us .gz for a.pdb.gz.
func byName(fname string) atom.Format {
	s := filepath.Base(fname)
	i := strings.IndexByte(s, '.')
	if i == -1 {
		return atom.FormatUnknown
	}
	s = strings.ToLower(s[i+1:])
	for _, ext := range strings.Split(s, ".") {
		if f := atom.ParseFormat(ext); f != atom.FormatUnknown {
			return f
		}
	}
	return atom.FormatUnknown
}

// byContent looks at the start of the data. PQR files from the usual
// programs say so in a REMARK. Otherwise the first coordinate line
// decides: if the fixed PDB coordinate columns make sense, it is PDB,
// and if only the whitespace tokens do, it is PQR.
func byContent(data []byte) atom.Format {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "SEQRES", "CRYST1"}
	atomTab := colfmt.MustLookup(colfmt.TableATOM)
	pqrTab := colfmt.MustLookup(colfmt.TablePQR)
	scnnr := bufio.NewScanner(bytes.NewReader(data))
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		if comparefirst(s, "REMARK") && strings.Contains(strings.ToUpper(s), "PQR") {
			return atom.FormatPQR
		}
		for _, w := range pdbWords {
			if comparefirst(s, w) {
				return atom.FormatPDB
			}
		}
		if rn := colfmt.RecordName(s); rn != "ATOM" && rn != "HETATM" {
			continue
		}
		if _, err := colfmt.Parse(s, atomTab, "coordx", "coordy", "coordz"); err == nil {
			return atom.FormatPDB
		}
		if _, err := colfmt.Parse(s, pqrTab); err == nil {
			return atom.FormatPQR
		}
		return atom.FormatUnknown
	}
	return atom.FormatUnknown
}

// Sniff decides the format from the file name, then from the contents.
func Sniff(fname string, data []byte) atom.Format {
	if f := byName(fname); f != atom.FormatUnknown {
		return f
	}
	return byContent(data)
}
