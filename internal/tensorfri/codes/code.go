// Package codes implements the Reed-Solomon encoding of a packed message
// over the binary tower field and its FRI butterfly-style fold.
package codes

import (
	"golang.org/x/sync/errgroup"

	"github.com/vybium/tensorfri/internal/tensorfri/errs"
	"github.com/vybium/tensorfri/internal/tensorfri/field"
	"github.com/vybium/tensorfri/internal/tensorfri/ntt"
)

// Rate is the encoding's redundancy factor R=4; LogRate = log2(Rate).
const (
	Rate    = 4
	LogRate = 2
)

const workerThreshold = 1024

// Code holds the RATE*2^m-length Reed-Solomon encoding of a length-2^m
// message in F128.
type Code struct {
	Encoding []field.Elem
}

// NewExt repacks a packed base-field message (level = tower level of each
// coeffs entry) into F128 elements and encodes it at rate Rate by calling
// the NTT's forward transform once per coset.
func NewExt(coeffs []field.Elem, level int, n *ntt.NTT) (*Code, error) {
	d := field.Degree(level)
	if len(coeffs)%d != 0 {
		return nil, errs.New(errs.ShapeMismatch, "message length %d not a multiple of chunk size %d", len(coeffs), d)
	}
	m := len(coeffs) / d
	repacked := make([]field.Elem, m)
	for k := 0; k < m; k++ {
		repacked[k] = field.PackChunk(coeffs[k*d:(k+1)*d], level)
	}
	encoding := make([]field.Elem, Rate*m)
	var g errgroup.Group
	for round := 0; round < Rate; round++ {
		round := round
		g.Go(func() error {
			clone := make([]field.Elem, m)
			copy(clone, repacked)
			transformed := n.ForwardTransformExt(clone, round)
			copy(encoding[round*m:(round+1)*m], transformed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Code{Encoding: encoding}, nil
}

// FoldCode produces a new code of half length using the standard
// FRI-over-additive-NTT butterfly fold: unskew the pair (enc[2i],enc[2i+1])
// with the round-`round` subspace-evaluation twiddle, then linearly combine
// with the challenge r.
func FoldCode(c *Code, r field.Elem, round int, n *ntt.NTT) (*Code, error) {
	enc := c.Encoding
	if len(enc)%2 != 0 {
		return nil, errs.New(errs.ShapeMismatch, "code length %d is not even", len(enc))
	}
	half := len(enc) / 2
	out := make([]field.Elem, half)
	foldRange := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			twiddle := n.GetSubspaceEval(round, i)
			x0, x1 := enc[2*i], enc[2*i+1]
			x1 = field.Add(x1, x0)
			x0 = field.Add(x0, field.Mul(x1, twiddle))
			out[i] = field.Add(x0, field.Mul(r, field.Add(x0, x1)))
		}
	}
	if half < workerThreshold {
		foldRange(0, half)
		return &Code{Encoding: out}, nil
	}
	workers := 8
	var g errgroup.Group
	chunk := (half + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > half {
			hi = half
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			foldRange(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
	return &Code{Encoding: out}, nil
}

// Fold replays the same butterfly formula on a single queried symbol pair,
// for the verifier's fold-path consistency check.
func Fold(r field.Elem, round, i int, s0, s1 field.Elem, n *ntt.NTT) field.Elem {
	twiddle := n.GetSubspaceEval(round, i)
	x0, x1 := s0, s1
	x1 = field.Add(x1, x0)
	x0 = field.Add(x0, field.Mul(x1, twiddle))
	return field.Add(x0, field.Mul(r, field.Add(x0, x1)))
}
