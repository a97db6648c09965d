package tensorfri

import (
	"github.com/vybium/tensorfri/internal/tensorfri/codes"
	"github.com/vybium/tensorfri/internal/tensorfri/core"
	"github.com/vybium/tensorfri/internal/tensorfri/ntt"
	"github.com/vybium/tensorfri/internal/tensorfri/protocols"
	"github.com/vybium/tensorfri/internal/tensorfri/utils"
)

// PCS is a committed multilinear polynomial, ready to be opened at any
// point with at least protocols.Tau+1 variables.
type PCS struct {
	mle        *MLE
	ntt        *ntt.NTT
	tree       *core.MerkleTree
	code       *codes.Code
	commitment Commitment
}

// Commit builds the base Reed-Solomon encoding and Merkle tree of m and
// returns the PCS handle used to open it. The NTT's depth is fixed by m's
// variable count, so the same handle serves every future Prove/Verify call
// against this polynomial.
func Commit(m *MLE) (*PCS, error) {
	n := ntt.New(m.Variables - protocols.Tau)
	tree, code, fri, err := protocols.Commit(m, n)
	if err != nil {
		return nil, err
	}
	return &PCS{mle: m, ntt: n, tree: tree, code: code, commitment: fri}, nil
}

// Commitment returns the binding vector commitment a verifier checks
// openings against.
func (p *PCS) Commitment() Commitment {
	return p.commitment
}

// Prove produces an evaluation proof for f(evalPoint) == eval.
func (p *PCS) Prove(evalPoint []FieldElement, eval FieldElement) (*Proof, error) {
	t := utils.NewTranscript()
	return protocols.Prove(p.mle, p.tree, p.code, p.commitment, evalPoint, eval, p.ntt, t)
}

// Verify checks proof against commitment for the claim f(evalPoint) == eval.
// It returns nil on success and an *Error otherwise.
func Verify(commitment Commitment, evalPoint []FieldElement, eval FieldElement, proof *Proof) error {
	n := ntt.New(len(evalPoint) - protocols.Tau)
	t := utils.NewTranscript()
	return protocols.Verify(commitment, evalPoint, eval, proof, n, t)
}
