// Package core provides the Keccak-256 hash primitive and the binary Merkle
// vector commitment built on it.
package core

import (
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/vybium/tensorfri/internal/tensorfri/errs"
	"github.com/vybium/tensorfri/internal/tensorfri/field"
)

// Hash is a 32-byte Keccak-256 digest.
type Hash [32]byte

func keccak256(parts ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// VectorCommitment is a Merkle root together with its tree depth.
type VectorCommitment struct {
	Root  Hash
	Depth int
}

// MerkleTree stores contiguous layers, layer 0 the leaves and the last layer
// the single-element root.
type MerkleTree struct {
	layers [][]Hash
}

// parallelThreshold is the minimum item count before a bulk reduction is
// worth splitting across goroutines.
const parallelThreshold = 1024

func numWorkers(n int) int {
	if n < parallelThreshold {
		return 1
	}
	w := 8
	if n < w {
		w = n
	}
	return w
}

// ComputeLeafHashes partitions an encoding into adjacent symbol pairs and
// hashes each pair: leaf[k] = Keccak256(LE16(encoding[2k]) || LE16(encoding[2k+1])).
func ComputeLeafHashes(encoding []field.Elem) ([]Hash, error) {
	if len(encoding)%2 != 0 {
		return nil, errs.New(errs.ShapeMismatch, "encoding length %d is not even", len(encoding))
	}
	n := len(encoding) / 2
	leaves := make([]Hash, n)
	workers := numWorkers(n)
	if workers <= 1 {
		for k := 0; k < n; k++ {
			leaves[k] = keccak256(encoding[2*k].Bytes(), encoding[2*k+1].Bytes())
		}
		return leaves, nil
	}
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
			for k := lo; k < hi; k++ {
				leaves[k] = keccak256(encoding[2*k].Bytes(), encoding[2*k+1].Bytes())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return leaves, nil
}

// Merklize requires a power-of-two, non-empty leaf count (a programmer
// error otherwise: callers always derive leaves from an encoding whose
// length is itself a power of two) and builds the layered tree by pairwise
// Keccak(left || right).
func Merklize(leafHashes []Hash) (*MerkleTree, error) {
	n := len(leafHashes)
	if n == 0 || n&(n-1) != 0 {
		return nil, errs.New(errs.ShapeMismatch, "leaf count %d is not a positive power of two", n)
	}
	layers := make([][]Hash, 0, trailingZeros(n)+1)
	cur := make([]Hash, n)
	copy(cur, leafHashes)
	layers = append(layers, cur)
	for len(cur) > 1 {
		next := make([]Hash, len(cur)/2)
		buildParentLayer(cur, next)
		layers = append(layers, next)
		cur = next
	}
	return &MerkleTree{layers: layers}, nil
}

func buildParentLayer(cur []Hash, next []Hash) {
	n := len(next)
	workers := numWorkers(n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			next[i] = keccak256(cur[2*i][:], cur[2*i+1][:])
		}
		return
	}
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
			for i := lo; i < hi; i++ {
				next[i] = keccak256(cur[2*i][:], cur[2*i+1][:])
			}
			return nil
		})
	}
	_ = g.Wait() // buildParentLayer's body cannot fail
}

func trailingZeros(n int) int {
	t := 0
	for n > 1 {
		n >>= 1
		t++
	}
	return t
}

// Depth returns log2(leaf count).
func (mt *MerkleTree) Depth() int {
	return len(mt.layers) - 1
}

// Root returns the tree's single root hash.
func (mt *MerkleTree) Root() Hash {
	top := mt.layers[len(mt.layers)-1]
	return top[0]
}

// Commitment bundles the root with its depth.
func (mt *MerkleTree) Commitment() VectorCommitment {
	return VectorCommitment{Root: mt.Root(), Depth: mt.Depth()}
}

// GetMerklePath returns the depth sibling hashes from leaf i up to, but
// excluding, the root.
func (mt *MerkleTree) GetMerklePath(i int) ([]Hash, error) {
	n := len(mt.layers[0])
	if i < 0 || i >= n {
		return nil, errs.New(errs.ShapeMismatch, "leaf index %d out of range [0,%d)", i, n)
	}
	path := make([]Hash, 0, mt.Depth())
	j := i
	for d := 0; d < mt.Depth(); d++ {
		layer := mt.layers[d]
		sibling := j ^ 1
		path = append(path, layer[sibling])
		j >>= 1
	}
	return path, nil
}

// VerifyMerklePath walks from leafHash up to the root using the given
// sibling path, treating bit d of i as "am I the left child at depth d",
// and reports whether the result matches commitment.Root.
func VerifyMerklePath(commitment VectorCommitment, leafHash Hash, i int, path []Hash) (bool, error) {
	if len(path) != commitment.Depth {
		return false, errs.New(errs.ShapeMismatch, "path length %d != commitment depth %d", len(path), commitment.Depth)
	}
	cur := leafHash
	idx := i
	for d := 0; d < len(path); d++ {
		sib := path[d]
		if idx&1 == 0 {
			cur = keccak256(cur[:], sib[:])
		} else {
			cur = keccak256(sib[:], cur[:])
		}
		idx >>= 1
	}
	return cur == commitment.Root, nil
}
