// Package zwrap takes a coordinate file, or anything else you can read
// and close, and wraps it so reads come out decompressed if the data was
// gzipped. Close shuts the decompressor, then the file underneath.

package zwrap

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
)

// Rdr is what we return. If zrdr is nil, the data was not compressed and
// reads go straight to fp.
type Rdr struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Compressed says if reads are going through gzip.
func (z *Rdr) Compressed() bool { return z.zrdr != nil }

// Read reads decompressed data if the source was compressed.
func (z *Rdr) Read(p []byte) (int, error) {
	if z.zrdr != nil {
		return z.zrdr.Read(p)
	}
	return z.fp.Read(p)
}

// Close closes the decompressor then the underlying source. Both are
// closed even if the first fails.
func (z *Rdr) Close() error {
	if z.zrdr == nil {
		return z.fp.Close()
	}
	return errors.Join(z.zrdr.Close(), z.fp.Close())
}

// Wrap insists that fp is gzipped. Use it for sources that say so, like
// a download site that only serves .gz files.
func Wrap(fp io.ReadCloser) (*Rdr, error) {
	zr, err := gzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &Rdr{fp: fp, zrdr: zr}, nil
}

// magic is the first two bytes of every gzip stream.
var magic = []byte{0x1f, 0x8b}

// WrapMaybe peeks at the first two bytes and only decompresses if they
// are the gzip magic number. It does not need to seek, so it works on
// pipes and http bodies as well as files.
func WrapMaybe(fp io.ReadCloser) (*Rdr, error) {
	br := bufio.NewReader(fp)
	head, err := br.Peek(len(magic))
	src := struct {
		io.Reader
		io.Closer
	}{br, fp}
	if err != nil || head[0] != magic[0] || head[1] != magic[1] {
		// Short or empty input is not compressed. Let the reader find out.
		return &Rdr{fp: src}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return &Rdr{fp: src, zrdr: zr}, nil
}
