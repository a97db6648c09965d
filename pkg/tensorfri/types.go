package tensorfri

import (
	"github.com/vybium/tensorfri/internal/tensorfri/codes"
	"github.com/vybium/tensorfri/internal/tensorfri/field"
	"github.com/vybium/tensorfri/internal/tensorfri/mle"
	"github.com/vybium/tensorfri/internal/tensorfri/protocols"
)

// FieldElement is an element of the 128-bit binary tower field F128.
type FieldElement = field.Elem

// MLE is a multilinear polynomial over the boolean cube, evaluations packed
// into a tower subfield.
type MLE = mle.MLE

// Commitment binds a Merkle vector commitment of the base Reed-Solomon
// encoding to the committed polynomial's tower packing level.
type Commitment = protocols.FriCommitment

// Proof is the complete evaluation proof produced by Prove and consumed by
// Verify.
type Proof = protocols.EvalProof

// Config holds the scheme's fixed protocol parameters. There is currently
// nothing a caller can safely tune: the tensor-batching split, the
// Reed-Solomon rate, and the query count are all fixed by the soundness
// analysis the scheme is built against. Config exists so future parameters
// (e.g. a configurable security level) have a home without breaking the
// public API.
type Config struct {
	// Rate is the Reed-Solomon encoding's redundancy factor.
	Rate int

	// QueryCount is the number of FRI query indices sampled per proof.
	QueryCount int
}

// DefaultConfig returns the scheme's fixed parameters.
func DefaultConfig() Config {
	return Config{Rate: codes.Rate, QueryCount: 144}
}

// NewMLE packs a length-2^(variables-packingFactor) coefficient vector into
// an MLE of the given variable count and tower packing level.
func NewMLE(packingFactor, variables int, coeffs []FieldElement) *MLE {
	return mle.New(packingFactor, variables, coeffs)
}
