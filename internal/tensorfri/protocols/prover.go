package protocols

import (
	"github.com/vybium/tensorfri/internal/tensorfri/codes"
	"github.com/vybium/tensorfri/internal/tensorfri/core"
	"github.com/vybium/tensorfri/internal/tensorfri/eqtable"
	"github.com/vybium/tensorfri/internal/tensorfri/errs"
	"github.com/vybium/tensorfri/internal/tensorfri/field"
	"github.com/vybium/tensorfri/internal/tensorfri/mle"
	"github.com/vybium/tensorfri/internal/tensorfri/ntt"
	"github.com/vybium/tensorfri/internal/tensorfri/utils"
)

// Commit builds the base Reed-Solomon encoding of m, its Merkle tree, and
// the FriCommitment binding it to m's tower level.
func Commit(m *mle.MLE, n *ntt.NTT) (*core.MerkleTree, *codes.Code, FriCommitment, error) {
	code, err := codes.NewExt(m.Coeffs, m.PackingFactor, n)
	if err != nil {
		return nil, nil, FriCommitment{}, err
	}
	leaves, err := core.ComputeLeafHashes(code.Encoding)
	if err != nil {
		return nil, nil, FriCommitment{}, err
	}
	tree, err := core.Merklize(leaves)
	if err != nil {
		return nil, nil, FriCommitment{}, err
	}
	return tree, code, FriCommitment{VC: tree.Commitment(), PackingFactor: m.PackingFactor}, nil
}

// Prove runs the interleaved sum-check/FRI commit phase followed by the FRI
// query phase, producing an EvalProof for f(evalPoint) == eval.
func Prove(
	m *mle.MLE,
	baseTree *core.MerkleTree,
	baseCode *codes.Code,
	fri FriCommitment,
	evalPoint []field.Elem,
	eval field.Elem,
	n *ntt.NTT,
	t *utils.Transcript,
) (*EvalProof, error) {
	v := len(evalPoint)
	if v <= Tau {
		return nil, errs.New(errs.ShapeMismatch, "eval point length %d must exceed tau=%d", v, Tau)
	}
	rounds := v - Tau
	// The prover never rebuilds an eq table over the left (low-tau) split:
	// PackedIdx's k|(j<<tau) indexing already accounts for it directly.
	// Only the verifier needs left's eq table, to recheck the initial claim.
	right := evalPoint[Tau:]

	t.ObserveFriCommitment(fri.VC, fri.PackingFactor)
	t.ObserveFieldElems(evalPoint)
	t.ObserveFieldElem(eval)

	rightEq := eqtable.GenFromPoint(right)
	upperPartialEvals := m.ComputeUpperPartialEvals(Tau, rightEq.Vals)

	tensorBatchingPoint, err := t.GetRandomPoints(Tau)
	if err != nil {
		return nil, err
	}
	batchingEq := eqtable.GenFromPoint(tensorBatchingPoint)
	sumCheckClaim := eqtable.ComputeRowBatch(batchingEq.Vals, upperPartialEvals)

	repackedMLE := m.RepackForFRI()
	tensoredEq := rightEq.RowBatch(batchingEq)

	oracles := make([]Univariate, rounds)
	friOracles := make([]core.VectorCommitment, rounds)
	challenges := make([]field.Elem, rounds)
	codesPerRound := make([]*codes.Code, rounds)
	treesPerRound := make([]*core.MerkleTree, rounds)

	curCode := baseCode
	for round := 0; round < rounds; round++ {
		half := len(repackedMLE.Coeffs) / 2
		var evalAt0, evalAtInf field.Elem
		for i := 0; i < half; i++ {
			c0, c1 := repackedMLE.Coeffs[2*i], repackedMLE.Coeffs[2*i+1]
			e0, e1 := tensoredEq.Vals[2*i], tensoredEq.Vals[2*i+1]
			evalAt0 = field.Add(evalAt0, field.Mul(c0, e0))
			evalAtInf = field.Add(evalAtInf, field.Mul(field.Add(c0, c1), field.Add(e0, e1)))
		}
		evalAt1 := field.Add(sumCheckClaim, evalAt0)
		u := Univariate{C: [3]field.Elem{evalAt0, field.Add(field.Add(evalAt0, evalAt1), evalAtInf), evalAtInf}}
		t.ObserveFieldElems(u.C[:])
		r, err := t.GetRandomPoint()
		if err != nil {
			return nil, err
		}
		sumCheckClaim = u.Evaluate(r)

		foldedCode, err := codes.FoldCode(curCode, r, round, n)
		if err != nil {
			return nil, err
		}
		leaves, err := core.ComputeLeafHashes(foldedCode.Encoding)
		if err != nil {
			return nil, err
		}
		foldedTree, err := core.Merklize(leaves)
		if err != nil {
			return nil, err
		}
		vc := foldedTree.Commitment()
		t.ObserveVectorCommitment(vc)

		repackedMLE = repackedMLE.FoldLo(r)
		tensoredEq.FoldLo(r)

		oracles[round] = u
		friOracles[round] = vc
		challenges[round] = r
		codesPerRound[round] = foldedCode
		treesPerRound[round] = foldedTree
		curCode = foldedCode
	}

	finalFoldedValue := codesPerRound[rounds-1].Encoding[0]
	t.ObserveFieldElem(finalFoldedValue)

	queries, err := t.GenQueries(rounds + codes.LogRate)
	if err != nil {
		return nil, err
	}
	for i := range queries {
		queries[i] >>= 1
	}

	friQueriedSymbols := make([][]SymbolPair, rounds)
	friMerklePaths := make([][][]core.Hash, rounds)
	curQueries := append([]int(nil), queries...)
	for round := 0; round < rounds; round++ {
		var tree *core.MerkleTree
		var cod *codes.Code
		if round == 0 {
			tree, cod = baseTree, baseCode
		} else {
			tree, cod = treesPerRound[round-1], codesPerRound[round-1]
		}
		symbols := make([]SymbolPair, len(curQueries))
		paths := make([][]core.Hash, len(curQueries))
		for qi, q := range curQueries {
			path, err := tree.GetMerklePath(q)
			if err != nil {
				return nil, err
			}
			symbols[qi] = SymbolPair{S0: cod.Encoding[2*q], S1: cod.Encoding[2*q+1]}
			paths[qi] = path
		}
		friQueriedSymbols[round] = symbols
		friMerklePaths[round] = paths
		for i := range curQueries {
			curQueries[i] >>= 1
		}
	}

	return &EvalProof{
		UpperPartialEvals: upperPartialEvals,
		SumCheckOracles:   oracles,
		FriOracles:        friOracles,
		FinalFoldedValue:  finalFoldedValue,
		FriQueriedSymbols: friQueriedSymbols,
		FriMerklePaths:    friMerklePaths,
	}, nil
}
