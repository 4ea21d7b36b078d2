// Package reservoir implements the depth-indexed reservoir weight bank
// and the echo-state update that turns a trie traversal into a fixed
// size embedding. The reservoir weights are generated once and frozen;
// only the readout layer elsewhere is ever trained.
package reservoir

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// rescaleEpsilon guards the mean-absolute-value rescale against an
// all-zero matrix.
const rescaleEpsilon = 1e-5

// Bank holds one square weight matrix per trie depth level. It is
// immutable after NewBank and safe to share across readers.
type Bank struct {
	size    int
	weights []*mat.Dense
}

// NewBank draws depthCount size x size matrices with entries iid
// uniform on [-1, 1], then rescales each matrix by rho divided by the
// mean absolute value of its entries. The rescale is a cheap proxy for
// bounding the spectral radius near rho; it is an approximation, the
// true spectral radius is not computed or controlled.
//
// The rng handle makes generation reproducible: the same seed yields
// the same bank, entry for entry.
func NewBank(depthCount, size int, rho float64, rng *rand.Rand) (*Bank, error) {
	if depthCount <= 0 {
		return nil, fmt.Errorf("depth count must be positive, got %d", depthCount)
	}
	if size <= 0 {
		return nil, fmt.Errorf("reservoir size must be positive, got %d", size)
	}

	b := &Bank{size: size, weights: make([]*mat.Dense, depthCount)}
	for l := 0; l < depthCount; l++ {
		data := make([]float64, size*size)
		var absSum float64
		for i := range data {
			data[i] = uniform(rng)
			if data[i] < 0 {
				absSum -= data[i]
			} else {
				absSum += data[i]
			}
		}
		meanAbs := absSum / float64(len(data))
		if meanAbs > rescaleEpsilon {
			scale := rho / meanAbs
			for i := range data {
				data[i] *= scale
			}
		}
		b.weights[l] = mat.NewDense(size, size, data)
	}
	return b, nil
}

// Depths returns the number of depth levels in the bank.
func (b *Bank) Depths() int {
	return len(b.weights)
}

// Size returns the reservoir dimension.
func (b *Bank) Size() int {
	return b.size
}

// Matrix returns the weight matrix for the given depth level. The
// returned matrix must not be mutated.
func (b *Bank) Matrix(depth int) *mat.Dense {
	return b.weights[depth]
}

// uniform draws from the uniform distribution on [-1, 1].
func uniform(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
