// Package protocols implements the prover and verifier engines: the
// interleaved tensor-batched sum-check / FRI commit phase, the FRI query
// phase, and the verifier that replays the transcript against them.
package protocols

import (
	"github.com/vybium/tensorfri/internal/tensorfri/core"
	"github.com/vybium/tensorfri/internal/tensorfri/field"
)

// Tau is log2 of the tensor-batching block size; 2^Tau = 128 matches the
// dimension of F128 over F1.
const Tau = 7

// FriCommitment binds a vector commitment of the base code to the tower
// level of the committed MLE.
type FriCommitment struct {
	VC            core.VectorCommitment
	PackingFactor int
}

// Univariate is a degree-<=2 round polynomial stored as
// [p(0), p(0)+p(1)+p(inf), p(inf)]; Evaluate(r) treats these as the
// coefficients of 1, r, r^2 in that order.
type Univariate struct {
	C [3]field.Elem
}

// Evaluate computes c0 + c1*r + c2*r^2 via Horner's rule.
func (u Univariate) Evaluate(r field.Elem) field.Elem {
	acc := u.C[2]
	acc = field.Add(field.Mul(acc, r), u.C[1])
	acc = field.Add(field.Mul(acc, r), u.C[0])
	return acc
}

// SymbolPair is one queried leaf's two adjacent encoding symbols.
type SymbolPair struct {
	S0, S1 field.Elem
}

// EvalProof is the complete transcript artifact produced by Prove and
// consumed by Verify.
type EvalProof struct {
	UpperPartialEvals []field.Elem
	SumCheckOracles   []Univariate
	FriOracles        []core.VectorCommitment
	FinalFoldedValue  field.Elem
	FriQueriedSymbols [][]SymbolPair
	FriMerklePaths    [][][]core.Hash
}

const (
	elemBytes = 16
	hashBytes = 32
)

// Size estimates the proof's serialized byte footprint: 16 bytes per field
// element, 32 per Merkle hash, 8 per commitment depth.
func (p *EvalProof) Size() int {
	n := len(p.UpperPartialEvals) * elemBytes
	n += len(p.SumCheckOracles) * 3 * elemBytes
	n += len(p.FriOracles) * (hashBytes + 8)
	n += elemBytes
	for _, round := range p.FriQueriedSymbols {
		n += len(round) * 2 * elemBytes
	}
	for _, round := range p.FriMerklePaths {
		for _, path := range round {
			n += len(path) * hashBytes
		}
	}
	return n
}
