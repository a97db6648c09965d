package protocols

import (
	"github.com/vybium/tensorfri/internal/tensorfri/codes"
	"github.com/vybium/tensorfri/internal/tensorfri/core"
	"github.com/vybium/tensorfri/internal/tensorfri/eqtable"
	"github.com/vybium/tensorfri/internal/tensorfri/errs"
	"github.com/vybium/tensorfri/internal/tensorfri/field"
	"github.com/vybium/tensorfri/internal/tensorfri/ntt"
	"github.com/vybium/tensorfri/internal/tensorfri/utils"
)

// Verify replays the prover's transcript absorptions exactly, checking the
// initial claim, the sum-check consistency relation round by round, the
// FRI fold-path consistency, every queried Merkle path, and the final
// folded value. Every rejection is a *errs.Error: a malformed or
// inconsistent proof yields code ShapeMismatch or Consistency, and a
// transcript failure is returned with the transcript's own code.
func Verify(
	commitment FriCommitment,
	evalPoint []field.Elem,
	eval field.Elem,
	proof *EvalProof,
	n *ntt.NTT,
	t *utils.Transcript,
) error {
	v := len(evalPoint)
	if v <= Tau {
		return errs.New(errs.ShapeMismatch, "eval point length %d must exceed tau=%d", v, Tau)
	}
	rounds := v - Tau
	left := evalPoint[:Tau]

	if len(proof.UpperPartialEvals) != 1<<Tau {
		return errs.New(errs.ShapeMismatch, "got %d upper partial evals, want %d", len(proof.UpperPartialEvals), 1<<Tau)
	}

	t.ObserveFriCommitment(commitment.VC, commitment.PackingFactor)
	t.ObserveFieldElems(evalPoint)
	t.ObserveFieldElem(eval)

	leftEq := eqtable.GenFromPoint(left).Vals
	var initClaim field.Elem
	for i, le := range leftEq {
		initClaim = field.Add(initClaim, field.Mul(le, proof.UpperPartialEvals[i]))
	}
	if !initClaim.Equal(eval) {
		return errs.New(errs.Consistency, "initial claim mismatch")
	}

	tensorBatchingPoint, err := t.GetRandomPoints(Tau)
	if err != nil {
		return err
	}
	batchingEq := eqtable.GenFromPoint(tensorBatchingPoint).Vals
	sumCheckClaim := eqtable.ComputeRowBatch(batchingEq, proof.UpperPartialEvals)

	if len(proof.SumCheckOracles) != rounds {
		return errs.New(errs.ShapeMismatch, "got %d sum-check oracles, want %d", len(proof.SumCheckOracles), rounds)
	}
	if len(proof.FriOracles) != rounds {
		return errs.New(errs.ShapeMismatch, "got %d fri oracles, want %d", len(proof.FriOracles), rounds)
	}

	challenges := make([]field.Elem, rounds)
	for round := 0; round < rounds; round++ {
		oracle := proof.SumCheckOracles[round]
		if !field.Add(oracle.Evaluate(field.Zero), oracle.Evaluate(field.One)).Equal(sumCheckClaim) {
			return errs.New(errs.Consistency, "sum-check relation failed at round %d", round)
		}
		t.ObserveFieldElems(oracle.C[:])
		r, err := t.GetRandomPoint()
		if err != nil {
			return err
		}
		t.ObserveVectorCommitment(proof.FriOracles[round])
		sumCheckClaim = oracle.Evaluate(r)
		challenges[round] = r
	}

	t.ObserveFieldElem(proof.FinalFoldedValue)

	queries, err := t.GenQueries(rounds + codes.LogRate)
	if err != nil {
		return err
	}
	for i := range queries {
		queries[i] >>= 1
	}

	if len(proof.FriQueriedSymbols) != rounds || len(proof.FriMerklePaths) != rounds {
		return errs.New(errs.ShapeMismatch, "fri query-phase round count mismatch")
	}

	q := append([]int(nil), queries...)
	foldedSymbols := make([]field.Elem, len(queries))
	for round := 0; round < rounds; round++ {
		symbols := proof.FriQueriedSymbols[round]
		paths := proof.FriMerklePaths[round]
		if len(symbols) != len(q) || len(paths) != len(q) {
			return errs.New(errs.ShapeMismatch, "round %d: got %d symbols/%d paths, want %d", round, len(symbols), len(paths), len(q))
		}
		for i := range q {
			s0, s1 := symbols[i].S0, symbols[i].S1
			leafHash := leafHash(s0, s1)
			if round > 0 {
				var expect field.Elem
				if q[i]&1 == 1 {
					expect = s1
				} else {
					expect = s0
				}
				if !foldedSymbols[i].Equal(expect) {
					return errs.New(errs.Consistency, "fold-path consistency failed at round %d query %d", round, i)
				}
				q[i] >>= 1
			}
			var target core.VectorCommitment
			if round == 0 {
				target = commitment.VC
			} else {
				target = proof.FriOracles[round-1]
			}
			ok, err := core.VerifyMerklePath(target, leafHash, q[i], paths[i])
			if err != nil {
				return err
			}
			if !ok {
				return errs.New(errs.Consistency, "merkle path verification failed at round %d query %d", round, i)
			}
			foldedSymbols[i] = codes.Fold(challenges[round], round, q[i], s0, s1, n)
		}
	}

	for i, fs := range foldedSymbols {
		if !fs.Equal(proof.FinalFoldedValue) {
			return errs.New(errs.Consistency, "final folded value mismatch at query %d", i)
		}
	}
	return nil
}

func leafHash(s0, s1 field.Elem) core.Hash {
	leaves, _ := core.ComputeLeafHashes([]field.Elem{s0, s1})
	return leaves[0]
}
