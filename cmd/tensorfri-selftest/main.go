// Command tensorfri-selftest exercises the commitment scheme end to end: for
// each variable-count in a fixed sweep it commits to a random packed
// polynomial, opens it at a random point, and verifies the resulting proof.
package main

import (
	"fmt"
	"os"

	"github.com/vybium/tensorfri/internal/tensorfri/field"
	"github.com/vybium/tensorfri/pkg/tensorfri"
)

// packingLevel is the BinaryField64b tower level (Width(6) == 64 bits) the
// sweep packs its random coefficients at.
const packingLevel = 6

func main() {
	for l := 10; l <= 40; l++ {
		if err := runOne(l); err != nil {
			fatal(fmt.Sprintf("l=%d: %v", l, err))
		}
		logStderr(fmt.Sprintf("l=%d: ok", l))
	}
	logStderr("all rounds passed")
}

func runOne(l int) error {
	coeffsLen := 1 << uint(l)
	variables := l + packingLevel

	coeffs := make([]field.Elem, coeffsLen)
	for i := range coeffs {
		x, err := field.Random()
		if err != nil {
			return fmt.Errorf("sampling coefficient %d: %w", i, err)
		}
		coeffs[i] = field.MaskLevel(x, packingLevel)
	}

	m := tensorfri.NewMLE(packingLevel, variables, coeffs)

	pcs, err := tensorfri.Commit(m)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logStderr(fmt.Sprintf("l=%d: committed (%d variables)", l, variables))

	evalPoint := make([]field.Elem, variables)
	for i := range evalPoint {
		r, err := field.Random()
		if err != nil {
			return fmt.Errorf("sampling eval point coordinate %d: %w", i, err)
		}
		evalPoint[i] = r
	}

	eval, err := evaluateMLE(m, evalPoint)
	if err != nil {
		return fmt.Errorf("evaluating reference polynomial: %w", err)
	}

	proof, err := pcs.Prove(evalPoint, eval)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	logStderr(fmt.Sprintf("l=%d: proved (%d bytes)", l, proof.Size()))

	if err := tensorfri.Verify(pcs.Commitment(), evalPoint, eval, proof); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	return nil
}

// evaluateMLE computes f(evalPoint) directly from the boolean-cube
// evaluations via repeated variable binding, as an oracle-free reference
// value for the self-test to prove and verify against.
func evaluateMLE(m *tensorfri.MLE, evalPoint []field.Elem) (field.Elem, error) {
	if len(evalPoint) != m.Variables {
		return field.Elem{}, fmt.Errorf("point length %d != variable count %d", len(evalPoint), m.Variables)
	}
	n := 1 << uint(m.Variables)
	vals := make([]field.Elem, n)
	for i := range vals {
		vals[i] = field.FromUint64(m.PackedIdx(i))
	}
	for _, r := range evalPoint {
		half := len(vals) / 2
		next := make([]field.Elem, half)
		for i := 0; i < half; i++ {
			c0, c1 := vals[2*i], vals[2*i+1]
			next[i] = field.Add(c0, field.Mul(r, field.Add(c0, c1)))
		}
		vals = next
	}
	return vals[0], nil
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "tensorfri-selftest:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
