package mle

import (
	"testing"

	"github.com/vybium/tensorfri/internal/tensorfri/field"
)

func TestPackedIdxUnpacked(t *testing.T) {
	// packingFactor 0: PackedIdx(i) is bit 0 of Coeffs[i], one coefficient
	// per boolean-cube entry.
	bits := []uint64{1, 0, 1, 1, 0, 0, 1, 0}
	coeffs := make([]field.Elem, len(bits))
	for i, b := range bits {
		coeffs[i] = field.FromUint64(b)
	}
	m := New(0, 3, coeffs)
	for i, w := range bits {
		if got := m.PackedIdx(i); got != w {
			t.Fatalf("PackedIdx(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestPackedIdxPackedLevel(t *testing.T) {
	// packingFactor 2: each coefficient packs 4 boolean-cube entries as its
	// low 4 bits.
	coeffs := []field.Elem{field.New128(0b1010, 0)}
	m := New(2, 2, coeffs)
	want := []uint64{0, 1, 0, 1}
	for i, w := range want {
		if got := m.PackedIdx(i); got != w {
			t.Fatalf("PackedIdx(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestFoldLoReducesVariableCount(t *testing.T) {
	coeffs := []field.Elem{field.New128(1, 0), field.New128(2, 0), field.New128(3, 0), field.New128(4, 0)}
	m := New(0, 2, coeffs)
	r := field.New128(5, 0)
	folded := m.FoldLo(r)
	if folded.Variables != 1 {
		t.Fatalf("Variables = %d, want 1", folded.Variables)
	}
	if len(folded.Coeffs) != 2 {
		t.Fatalf("len(Coeffs) = %d, want 2", len(folded.Coeffs))
	}
	want0 := field.Add(coeffs[0], field.Mul(r, field.Add(coeffs[0], coeffs[1])))
	if !folded.Coeffs[0].Equal(want0) {
		t.Fatalf("folded.Coeffs[0] = %+v, want %+v", folded.Coeffs[0], want0)
	}
}

func TestFoldLoAtZeroAndOneAreBoundaryValues(t *testing.T) {
	coeffs := []field.Elem{field.New128(11, 0), field.New128(22, 0)}
	m := New(0, 1, coeffs)
	f0 := m.FoldLo(field.Zero)
	if !f0.Coeffs[0].Equal(coeffs[0]) {
		t.Fatalf("FoldLo(0) should reproduce the low half")
	}
	f1 := m.FoldLo(field.One)
	if !f1.Coeffs[0].Equal(coeffs[1]) {
		t.Fatalf("FoldLo(1) should reproduce the high half")
	}
}

func TestFoldLoLawOnSubcube(t *testing.T) {
	// fold_lo(f, r)(x) == (1-r)*f(0,x) + r*f(1,x) for every x on the
	// remaining subcube.
	variables := 4
	coeffs := make([]field.Elem, 1<<uint(variables))
	for i := range coeffs {
		x, err := field.Random()
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		coeffs[i] = x
	}
	m := New(0, variables, coeffs)
	r, err := field.Random()
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	folded := m.FoldLo(r)
	oneMinusR := field.Add(field.One, r)
	for x := 0; x < 1<<uint(variables-1); x++ {
		f0, f1 := coeffs[2*x], coeffs[2*x+1]
		want := field.Add(field.Mul(oneMinusR, f0), field.Mul(r, f1))
		if !folded.Coeffs[x].Equal(want) {
			t.Fatalf("folded(%d) = %+v, want %+v", x, folded.Coeffs[x], want)
		}
	}
}

func TestRepackForFRIDropsSevenVariables(t *testing.T) {
	level := 3
	d := field.Degree(level)
	variables := 12
	coeffs := make([]field.Elem, 1<<uint(variables-level))
	for i := range coeffs {
		coeffs[i] = field.FromUint64(uint64(i))
	}
	m := New(level, variables, coeffs)
	repacked := m.RepackForFRI()
	if repacked.PackingFactor != 0 {
		t.Fatalf("RepackForFRI should reset PackingFactor to 0, got %d", repacked.PackingFactor)
	}
	if repacked.Variables != variables-7 {
		t.Fatalf("Variables = %d, want %d", repacked.Variables, variables-7)
	}
	if len(repacked.Coeffs) != len(coeffs)/d {
		t.Fatalf("len(Coeffs) = %d, want %d", len(repacked.Coeffs), len(coeffs)/d)
	}
}

func TestGetBoundElem(t *testing.T) {
	coeffs := []field.Elem{field.New128(1, 0), field.New128(2, 0), field.New128(3, 0), field.New128(4, 0)}
	m := New(0, 2, coeffs)
	eq := []field.Elem{field.One, field.Zero}
	if got := m.GetBoundElem(0, eq); !got.Equal(coeffs[0]) {
		t.Fatalf("GetBoundElem(0) = %+v, want %+v", got, coeffs[0])
	}
	if got := m.GetBoundElem(1, eq); !got.Equal(coeffs[2]) {
		t.Fatalf("GetBoundElem(1) = %+v, want %+v", got, coeffs[2])
	}
}

func TestComputeUpperPartialEvalsMatchesDirectEvaluation(t *testing.T) {
	// 4 variables total, tau=2: left 2 vars produce "k", right 2 vars
	// produce "j". upper_partial_evals[k] should equal Sum_j f(k|(j<<2))*rightEq[j].
	coeffs := []field.Elem{field.New128(0b1101_0110_1001_1100, 0)}
	m := New(4, 4, coeffs)
	tau := 2
	rightEq := []field.Elem{field.One, field.Zero, field.Zero, field.Zero} // selects j=0 only
	got := m.ComputeUpperPartialEvals(tau, rightEq)
	for k := 0; k < 4; k++ {
		want := field.FromUint64(m.PackedIdx(k))
		if !got[k].Equal(want) {
			t.Fatalf("ComputeUpperPartialEvals[%d] = %+v, want %+v", k, got[k], want)
		}
	}
}
