package tensorfri_test

import (
	"testing"

	"github.com/vybium/tensorfri/internal/tensorfri/field"
	"github.com/vybium/tensorfri/pkg/tensorfri"
)

func evaluateMLE(t *testing.T, m *tensorfri.MLE, point []tensorfri.FieldElement) tensorfri.FieldElement {
	t.Helper()
	n := 1 << uint(m.Variables)
	vals := make([]field.Elem, n)
	for i := range vals {
		vals[i] = field.FromUint64(m.PackedIdx(i))
	}
	for _, r := range point {
		half := len(vals) / 2
		next := make([]field.Elem, half)
		for i := 0; i < half; i++ {
			c0, c1 := vals[2*i], vals[2*i+1]
			next[i] = field.Add(c0, field.Mul(r, field.Add(c0, c1)))
		}
		vals = next
	}
	return vals[0]
}

func TestEndToEndCommitProveVerify(t *testing.T) {
	variables, level := 11, 3
	coeffsLen := 1 << uint(variables-level)
	coeffs := make([]field.Elem, coeffsLen)
	for i := range coeffs {
		x, err := field.Random()
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		coeffs[i] = field.MaskLevel(x, level)
	}
	m := tensorfri.NewMLE(level, variables, coeffs)

	pcs, err := tensorfri.Commit(m)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	point := make([]field.Elem, variables)
	for i := range point {
		x, err := field.Random()
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		point[i] = x
	}
	eval := evaluateMLE(t, m, point)

	proof, err := pcs.Prove(point, eval)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if proof.Size() <= 0 {
		t.Fatalf("Proof.Size() = %d, want > 0", proof.Size())
	}

	if err := tensorfri.Verify(pcs.Commitment(), point, eval, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := tensorfri.DefaultConfig()
	if cfg.Rate != 4 {
		t.Fatalf("Rate = %d, want 4", cfg.Rate)
	}
	if cfg.QueryCount != 144 {
		t.Fatalf("QueryCount = %d, want 144", cfg.QueryCount)
	}
}

func TestErrorCodeRoundTrip(t *testing.T) {
	err := tensorfri.Verify(tensorfri.Commitment{}, make([]field.Elem, 20), field.Zero, &tensorfri.Proof{})
	if err == nil {
		t.Fatalf("Verify with an empty proof should fail")
	}
	if terr, ok := err.(*tensorfri.Error); ok {
		_ = terr.Code
	} else {
		t.Fatalf("error is not *tensorfri.Error: %v", err)
	}
}
