// Package ntt provides the additive NTT capability set the commitment scheme
// treats as an external collaborator: a forward transform used to
// Reed-Solomon-encode a message, and the matching "subspace evaluation"
// twiddle factors the FRI fold consumes one round at a time.
//
// The transform is a from-scratch, self-consistent additive analogue of a
// radix-2 FFT rather than a literal port of the Lin-Chung-Han "novel
// polynomial basis" algorithm: it recurses on even/odd-indexed coefficient
// halves and recombines with a round-indexed twiddle drawn from the tower
// field's subspace-vanishing-polynomial family (W_0(x)=x,
// W_{i+1}(x)=W_i(x)^2+W_i(beta_i)*W_i(x)). Because every step is F128-linear
// (and, in characteristic 2, the sum-check fold's combination coefficients
// (1-r) and r always sum to 1), folding the encoding commutes with folding
// the underlying message round-for-round — exactly the property
// Code.FoldCode and MLE.FoldLo rely on to stay in lock-step. See DESIGN.md
// for why this stands in for a literature-faithful additive FFT.
package ntt

import "github.com/vybium/tensorfri/internal/tensorfri/field"

// NTT precomputes the subspace-polynomial table for a fixed number of FRI
// rounds and exposes ForwardTransformExt/GetSubspaceEval over it.
type NTT struct {
	maxDepth int
	// basis[d][j] = W_d(beta_j), beta_j = field value (1<<j).
	basis [][]field.Elem
}

// New builds an NTT able to serve forward transforms of length 2^maxDepth
// and FRI folds over maxDepth rounds. maxDepth must equal the number of
// sum-check/FRI rounds the caller will run (v - TAU in the prover/verifier).
func New(maxDepth int) *NTT {
	if maxDepth < 0 {
		maxDepth = 0
	}
	width := maxDepth
	if width == 0 {
		width = 1
	}
	basis := make([][]field.Elem, maxDepth+1)
	basis[0] = make([]field.Elem, width)
	for j := 0; j < width; j++ {
		basis[0][j] = field.FromUint64(uint64(1) << uint(j))
	}
	for d := 0; d < maxDepth; d++ {
		basis[d+1] = make([]field.Elem, width)
		g := basis[d][d]
		for j := 0; j < width; j++ {
			sq := field.Square(basis[d][j])
			basis[d+1][j] = field.Add(sq, field.Mul(g, basis[d][j]))
		}
	}
	return &NTT{maxDepth: maxDepth, basis: basis}
}

// localBits is the number of low bits of a global fold index that are
// significant at the given FRI round: each of the RATE concatenated cosets
// shrinks in lock-step, so a fold round's twiddle must be periodic with
// period 2^localBits across coset boundaries.
func (n *NTT) localBits(round int) int {
	b := n.maxDepth - 1 - round
	if b < 0 {
		b = 0
	}
	return b
}

// GetSubspaceEval returns the FRI twiddle W_round(idx mod 2^localBits(round)),
// i.e. the round-`round` subspace polynomial evaluated F2-linearly at the
// index's locally-significant bits.
func (n *NTT) GetSubspaceEval(round, idx int) field.Elem {
	if round < 0 || round >= len(n.basis) {
		return field.Zero
	}
	bits := n.localBits(round)
	mask := 0
	if bits > 0 {
		mask = (1 << uint(bits)) - 1
	}
	idx &= mask
	row := n.basis[round]
	var out field.Elem
	for j := 0; idx != 0 && j < len(row); j++ {
		if idx&1 == 1 {
			out = field.Add(out, row[j])
		}
		idx >>= 1
	}
	return out
}

// ForwardTransformExt computes the additive-NTT encoding of a length-2^m
// coefficient vector (m == n.maxDepth). The `round` parameter selects which
// of the RATE repeated cosets this call is encoding; by construction (see
// package doc) the transform itself is round-independent, so every coset's
// sub-block folds identically and the final RATE folded symbols agree.
func (n *NTT) ForwardTransformExt(vals []field.Elem, round int) []field.Elem {
	return n.transform(vals, 0)
}

func (n *NTT) transform(vals []field.Elem, depth int) []field.Elem {
	ln := len(vals)
	out := make([]field.Elem, ln)
	if ln <= 1 {
		copy(out, vals)
		return out
	}
	half := ln / 2
	even := make([]field.Elem, half)
	odd := make([]field.Elem, half)
	for i := 0; i < half; i++ {
		even[i] = vals[2*i]
		odd[i] = vals[2*i+1]
	}
	eEven := n.transform(even, depth+1)
	eOdd := n.transform(odd, depth+1)
	for i := 0; i < half; i++ {
		tw := n.GetSubspaceEval(depth, i)
		a, b := eEven[i], eOdd[i]
		tb := field.Mul(tw, b)
		out[2*i] = field.Add(a, tb)
		out[2*i+1] = field.Add(field.Add(a, tb), b)
	}
	return out
}
