// Package brokenio wraps an io.ReadCloser so that reads go wrong. It is
// for testing readers of coordinate files, compressed streams and http
// bodies. You write
//
//	rdr = brokenio.NewReader(rdr, seed)
//
// and set how often, and how, things should fail. With nothing set, it
// behaves like the reader it wraps.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
)

// ErrBroken is the error for every failure we make up.
var ErrBroken = errors.New("brokenio: artificial read failure")

// Reader has the probabilities of the different failures. A value of
// 0.05 means failure in 5% of the calls.
type Reader struct {
	rdr          io.ReadCloser
	rnd          *rand.Rand
	probZeroFile float64 // on the first read, return nothing, like an empty file
	probFail     float64 // on any read, wipe out the end of what we read
	fracFail     float64 // how much to wipe out
	failAfter    int     // hard failure after this many bytes, if >= 0
	nCalled      int
	nByte        int
}

// NewReader wraps rIn. The seed makes the failures repeatable.
func NewReader(rIn io.ReadCloser, seed uint64) *Reader {
	return &Reader{
		rdr:       rIn,
		rnd:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		fracFail:  0.5,
		failAfter: -1,
	}
}

// SetProbZeroFile sets how often the first read returns io.EOF.
func (r *Reader) SetProbZeroFile(prob float64) { r.probZeroFile = prob }

// SetProbFail sets how often a read loses the end of its data.
func (r *Reader) SetProbFail(prob float64) { r.probFail = prob }

// SetFracFail sets the fraction of a failed read that is zeroed.
func (r *Reader) SetFracFail(frac float64) { r.fracFail = frac }

// SetFailAfter makes every read fail once n bytes have gone through.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// Counts says how many reads there were and how many bytes they gave.
func (r *Reader) Counts() (nCalled, nByte int) { return r.nCalled, r.nByte }

// trashSlice zeroes the end of p and says how much is left.
func trashSlice(p []byte, frac float64) (int, error) {
	nkeep := int(float64(len(p)) * (1 - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	clear(p[nkeep:])
	return nkeep, fmt.Errorf("%w: wiped out last %d of %d", ErrBroken, len(p)-nkeep, len(p))
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float64() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, fmt.Errorf("%w after %d bytes", ErrBroken, r.nByte)
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err := r.rdr.Read(p)
	r.nCalled++
	r.nByte += n
	if n > 0 && r.probFail > 0 && r.fracFail > 0 && r.rnd.Float64() < r.probFail {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Close closes the wrapped reader.
func (r *Reader) Close() error { return r.rdr.Close() }
