// Package eqtable builds and folds the Lagrange/equality table used to
// batch the tensor sum-check claim.
package eqtable

import (
	"golang.org/x/sync/errgroup"

	"github.com/vybium/tensorfri/internal/tensorfri/field"
)

// workerThreshold mirrors core's bulk-reduction cutoff: below this many
// entries a single goroutine does the work.
const workerThreshold = 1024

// EqTable is the vector of 2^k Lagrange-basis evaluations at a point r, in
// little-endian cube order (entry b corresponds to the product over i of
// r_i when bit i of b is 1, or 1-r_i when it is 0).
type EqTable struct {
	Vals []field.Elem
}

// GenFromPoint builds the table for r by the standard doubling recurrence.
func GenFromPoint(r []field.Elem) *EqTable {
	vals := []field.Elem{field.One}
	for _, ri := range r {
		oneMinus := field.Add(field.One, ri)
		next := make([]field.Elem, len(vals)*2)
		for j, x := range vals {
			next[j] = field.Mul(x, oneMinus)
			next[len(vals)+j] = field.Mul(x, ri)
		}
		vals = next
	}
	return &EqTable{Vals: vals}
}

// Vars returns log2(len(Vals)).
func (e *EqTable) Vars() int {
	n := len(e.Vals)
	v := 0
	for n > 1 {
		n >>= 1
		v++
	}
	return v
}

// FoldLo halves the table using the same pairwise fold as mle.MLE.FoldLo:
// vals'_i = vals_{2i} + r*(vals_{2i} + vals_{2i+1}).
func (e *EqTable) FoldLo(r field.Elem) {
	half := len(e.Vals) / 2
	out := make([]field.Elem, half)
	for i := 0; i < half; i++ {
		c0, c1 := e.Vals[2*i], e.Vals[2*i+1]
		out[i] = field.Add(c0, field.Mul(r, field.Add(c0, c1)))
	}
	e.Vals = out
}

// RowBatch interprets each of self's entries as a length-128 F1-vector via
// its bit decomposition and computes vals'[i] = Sum_b bit_b(self[i]) *
// other.Vals[b]. The result keeps self's variable count.
func (e *EqTable) RowBatch(other *EqTable) *EqTable {
	n := len(e.Vals)
	out := make([]field.Elem, n)
	rowBatchRange := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			var sum field.Elem
			self := e.Vals[i]
			for b, ob := range other.Vals {
				if self.Bit(b) == 1 {
					sum = field.Add(sum, ob)
				}
			}
			out[i] = sum
		}
	}
	if n < workerThreshold {
		rowBatchRange(0, n)
		return &EqTable{Vals: out}
	}
	workers := 8
	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			rowBatchRange(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
	return &EqTable{Vals: out}
}

// ComputeRowBatch batches a column-view algebra element (a vector of 128
// F128 entries whose bit-decompositions form a 128x128 F1 matrix) by a
// 2^tau-entry equality table: switch the matrix to row view, then
// Sum_i batchingEq[i] * rowView[i].
func ComputeRowBatch(batchingEq, vals []field.Elem) field.Elem {
	rowView := switchView(vals)
	var sum field.Elem
	for i, b := range batchingEq {
		sum = field.Add(sum, field.Mul(b, rowView[i]))
	}
	return sum
}

// switchView transposes the bit matrix formed by viewing each of vals'
// entries as a column of F1 bits: bit j of row i equals bit i of vals[j].
// Columns beyond len(vals) are zero.
func switchView(vals []field.Elem) []field.Elem {
	out := make([]field.Elem, field.NumBits)
	for j, v := range vals {
		bitJ := basisElem(j)
		for i := 0; i < field.NumBits; i++ {
			if v.Bit(i) == 1 {
				out[i] = field.Add(out[i], bitJ)
			}
		}
	}
	return out
}

// basisElem is the F1-basis element of F128 with only bit j set.
func basisElem(j int) field.Elem {
	if j < 64 {
		return field.New128(uint64(1)<<uint(j), 0)
	}
	return field.New128(0, uint64(1)<<uint(j-64))
}
