// Package tensorfri implements a polynomial commitment scheme for
// multilinear polynomials over a 128-bit binary tower field, combining
// tensor-batched sum-check with a FRI low-degree test over a Reed-Solomon
// encoding, compiled to a non-interactive argument via Fiat-Shamir.
//
// # Features
//
// - Commitment to bit-packed multilinear polynomials over any tower level
// - Tensor-batched sum-check opening, splitting the evaluation point at a
//   fixed tau to amortize the top slice of the hypercube
// - FRI-over-additive-NTT low-degree test at a fixed rate of 4
// - Keccak-256 Merkle vector commitments and Fiat-Shamir transcript
//
// # Quick Start
//
// Committing to a polynomial and opening it at a point:
//
//	m := tensorfri.NewMLE(0, variables, coeffs)
//	pcs, err := tensorfri.Commit(m)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proof, err := pcs.Prove(evalPoint, eval)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := tensorfri.Verify(pcs.Commitment(), evalPoint, eval, proof); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// tensorfri uses a hybrid public/private layout:
//
// - pkg/tensorfri/: public API (this package)
// - internal/tensorfri/: private implementation (not importable)
//
// Implementation details in internal/ can be refactored without breaking
// the public API.
package tensorfri
