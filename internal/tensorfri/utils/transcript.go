// Package utils provides the Fiat-Shamir transcript used to compile the
// interactive sum-check/FRI protocol into a non-interactive one.
package utils

import (
	"golang.org/x/crypto/sha3"

	"github.com/vybium/tensorfri/internal/tensorfri/core"
	"github.com/vybium/tensorfri/internal/tensorfri/errs"
	"github.com/vybium/tensorfri/internal/tensorfri/field"
)

// queryCount is the fixed number of FRI query indices sampled per proof,
// encoding 96-bit security at rate R=4 per [DP24].
const queryCount = 144

// Transcript is a single-threaded, append-only Fiat-Shamir channel: a
// running Keccak-256 sponge plus a monotonically increasing round counter.
type Transcript struct {
	state    []byte
	roundIdx uint64
}

// NewTranscript starts a fresh transcript with empty state.
func NewTranscript() *Transcript {
	return &Transcript{state: []byte{}}
}

func (t *Transcript) absorb(data []byte) {
	h := sha3.NewLegacyKeccak256()
	h.Write(t.state)
	h.Write(data)
	t.state = h.Sum(nil)
}

// ObserveFieldElem absorbs x's canonical 16-byte little-endian encoding.
func (t *Transcript) ObserveFieldElem(x field.Elem) {
	t.absorb(x.Bytes())
}

// ObserveFieldElems absorbs each element in order.
func (t *Transcript) ObserveFieldElems(xs []field.Elem) {
	for _, x := range xs {
		t.ObserveFieldElem(x)
	}
}

// ObserveVectorCommitment absorbs root.bytes || LE_usize(depth).
func (t *Transcript) ObserveVectorCommitment(vc core.VectorCommitment) {
	t.absorb(vc.Root[:])
	t.absorb(leUsize(uint64(vc.Depth)))
}

// ObserveFriCommitment absorbs its VectorCommitment then LE_usize(packingFactor).
func (t *Transcript) ObserveFriCommitment(vc core.VectorCommitment, packingFactor int) {
	t.ObserveVectorCommitment(vc)
	t.absorb(leUsize(uint64(packingFactor)))
}

// GetRandomPoint squeezes one challenge: d = Keccak256(state || LE_usize(roundIdx)),
// deserialized from its first 16 bytes, then increments roundIdx.
func (t *Transcript) GetRandomPoint() (field.Elem, error) {
	if t.roundIdx == ^uint64(0) {
		return field.Elem{}, errs.New(errs.TranscriptOverflow, "round counter overflow")
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(t.state)
	h.Write(leUsize(t.roundIdx))
	d := h.Sum(nil)
	t.roundIdx++
	e, err := field.FromBytes(d[:16])
	if err != nil {
		return field.Elem{}, errs.Wrap(errs.Serialization, err, "deserializing transcript challenge")
	}
	return e, nil
}

// GetRandomPoints squeezes n independent challenges in order.
func (t *Transcript) GetRandomPoints(n int) ([]field.Elem, error) {
	out := make([]field.Elem, n)
	for i := 0; i < n; i++ {
		e, err := t.GetRandomPoint()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// GenQueries samples queryCount random indices into a domain of size
// 2^logMaxLen, one per squeezed field element masked to logMaxLen bits. If
// the domain is smaller than queryCount it returns the exhaustive index
// list 0..domainSize instead of resampling redundantly.
func (t *Transcript) GenQueries(logMaxLen int) ([]int, error) {
	if logMaxLen < 0 || logMaxLen >= 64 {
		return nil, errs.New(errs.DomainSizeOverflow, "log domain size %d out of range", logMaxLen)
	}
	domainSize := uint64(1) << uint(logMaxLen)
	if domainSize < queryCount {
		out := make([]int, domainSize)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	mask := domainSize - 1
	out := make([]int, queryCount)
	for i := 0; i < queryCount; i++ {
		e, err := t.GetRandomPoint()
		if err != nil {
			return nil, err
		}
		_, lo := e.Val()
		out[i] = int(lo & mask)
	}
	return out, nil
}

func leUsize(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}
