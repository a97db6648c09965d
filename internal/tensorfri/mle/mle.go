// Package mle implements the packed multilinear-extension container and its
// partial-evaluation/folding operations.
package mle

import (
	"math/bits"

	"github.com/vybium/tensorfri/internal/tensorfri/field"
)

// MLE represents f(x_0,...,x_{v-1}) over F1 as its 2^v evaluations on the
// boolean cube, packed into coefficients of a tower subfield.
//
// PackingFactor is the tower level of the subfield each Coeffs entry holds
// (0 once repacked to raw F128 coefficients); Variables is v;
// len(Coeffs) == 2^(Variables-PackingFactor).
type MLE struct {
	PackingFactor int
	Variables     int
	Coeffs        []field.Elem
}

// New wraps a coefficient vector, trusting the caller's packing factor and
// variable count.
func New(packingFactor, variables int, coeffs []field.Elem) *MLE {
	return &MLE{PackingFactor: packingFactor, Variables: variables, Coeffs: coeffs}
}

// PackedIdx returns the F1 bit at global index i (i in [0, 2^Variables)):
// the (i mod 2^p)-th bit of the (i >> p)-th coefficient.
func (m *MLE) PackedIdx(i int) uint64 {
	p := m.PackingFactor
	coeffIdx := i >> uint(p)
	var bitIdx int
	if p > 0 {
		bitIdx = i & ((1 << uint(p)) - 1)
	}
	return m.Coeffs[coeffIdx].Bit(bitIdx)
}

// ComputeUpperPartialEvals computes, for k in [0, 2^tau), the partial
// evaluation Sum_j PackedIdx(k | (j<<tau)) * rightEq[j] — the "top-slice"
// tensor-batching setup of the prover's statement binding step.
func (m *MLE) ComputeUpperPartialEvals(tau int, rightEq []field.Elem) []field.Elem {
	out := make([]field.Elem, 1<<uint(tau))
	for k := range out {
		var sum field.Elem
		for j, e := range rightEq {
			if m.PackedIdx(k|(j<<uint(tau))) == 1 {
				sum = field.Add(sum, e)
			}
		}
		out[k] = sum
	}
	return out
}

// RepackForFRI views the N packed coefficients of an F-MLE as N/D
// coefficients of an F128-MLE, D = dim(F128/F) = field.Degree(PackingFactor).
// This always drops exactly PackingFactor+log2(D) = 7 variables, since
// D = 2^(7-PackingFactor) and the coefficient count divides by D while the
// packing factor resets to zero.
func (m *MLE) RepackForFRI() *MLE {
	level := m.PackingFactor
	d := field.Degree(level)
	newLen := len(m.Coeffs) / d
	newCoeffs := make([]field.Elem, newLen)
	for k := 0; k < newLen; k++ {
		chunk := m.Coeffs[k*d : (k+1)*d]
		newCoeffs[k] = field.PackChunk(chunk, level)
	}
	// len(Coeffs) = 2^(Variables-level); newLen = len(Coeffs)/d = 2^(Variables-level-(7-level)) = 2^(Variables-7).
	return &MLE{PackingFactor: 0, Variables: m.Variables - 7, Coeffs: newCoeffs}
}

// FoldLo produces an MLE with one fewer variable:
// c'_i = c_{2i} + r*(c_{2i} + c_{2i+1}) = (1-r)c_{2i} + r*c_{2i+1} (char 2).
// Only meaningful for a PackingFactor-0 (already-F128) MLE, which is the
// only way the prover/verifier ever call it.
func (m *MLE) FoldLo(r field.Elem) *MLE {
	half := len(m.Coeffs) / 2
	out := make([]field.Elem, half)
	for i := 0; i < half; i++ {
		c0, c1 := m.Coeffs[2*i], m.Coeffs[2*i+1]
		sum := field.Add(c0, c1)
		out[i] = field.Add(c0, field.Mul(r, sum))
	}
	return &MLE{PackingFactor: 0, Variables: m.Variables - 1, Coeffs: out}
}

// GetBoundElem evaluates Sum_j Coeffs[(i<<k)|j] * eq[j], where k = log2(len(eq)):
// the evaluation of the coefficient block starting at i<<k, bound to eq's point.
func (m *MLE) GetBoundElem(i int, eq []field.Elem) field.Elem {
	k := bits.Len(uint(len(eq))) - 1
	base := i << uint(k)
	var sum field.Elem
	for j, e := range eq {
		sum = field.Add(sum, field.Mul(m.Coeffs[base|j], e))
	}
	return sum
}
