// Package readout implements the trained linear-softmax layer that
// maps a reservoir embedding to class probabilities. The readout
// weights are the only learned state in the whole model.
package readout

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidLabel is returned by TrainStep for a gold index outside
// [0, OutDim).
var ErrInvalidLabel = errors.New("label index out of range")

// initScale shrinks the initial uniform weights.
const initScale = 0.01

// Readout is a dense outDim x size weight matrix with a softmax over
// the resulting logits. TrainStep mutates the weights; callers running
// concurrent training must serialize externally.
type Readout struct {
	outDim  int
	size    int
	weights *mat.Dense
}

// New returns a readout with weights drawn uniformly from
// [-initScale, initScale].
func New(outDim, size int, rng *rand.Rand) (*Readout, error) {
	if outDim <= 0 {
		return nil, fmt.Errorf("output dimension must be positive, got %d", outDim)
	}
	if size <= 0 {
		return nil, fmt.Errorf("reservoir size must be positive, got %d", size)
	}
	data := make([]float64, outDim*size)
	for i := range data {
		data[i] = initScale * (rng.Float64()*2 - 1)
	}
	return &Readout{outDim: outDim, size: size, weights: mat.NewDense(outDim, size, data)}, nil
}

// Restore rebuilds a readout from previously exported weights, laid
// out row-major as outDim rows of size columns.
func Restore(outDim, size int, weights []float64) (*Readout, error) {
	if len(weights) != outDim*size {
		return nil, fmt.Errorf("weight count %d does not match %dx%d", len(weights), outDim, size)
	}
	data := make([]float64, len(weights))
	copy(data, weights)
	return &Readout{outDim: outDim, size: size, weights: mat.NewDense(outDim, size, data)}, nil
}

// OutDim returns the number of output classes.
func (r *Readout) OutDim() int {
	return r.outDim
}

// Forward computes class probabilities for state via a plain softmax
// over the logits. No max-logit subtraction is performed, so extreme
// logits can overflow; that matches the reference numeric behavior.
func (r *Readout) Forward(state *mat.VecDense) []float64 {
	logits := mat.NewVecDense(r.outDim, nil)
	logits.MulVec(r.weights, state)

	probs := make([]float64, r.outDim)
	var sum float64
	for i := range probs {
		probs[i] = math.Exp(logits.AtVec(i))
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// TrainStep applies one stochastic gradient-descent update of the
// cross-entropy loss for (state, gold): grad_i = probs[i] - 1 for the
// gold class and probs[i] otherwise, and
// weights[i][j] -= lr * grad_i * state[j]. Only the readout weights
// move; the state is read, never written.
func (r *Readout) TrainStep(state *mat.VecDense, gold int, lr float64) error {
	if gold < 0 || gold >= r.outDim {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidLabel, gold, r.outDim)
	}
	probs := r.Forward(state)
	for i := 0; i < r.outDim; i++ {
		grad := probs[i]
		if i == gold {
			grad -= 1
		}
		for j := 0; j < r.size; j++ {
			r.weights.Set(i, j, r.weights.At(i, j)-lr*grad*state.AtVec(j))
		}
	}
	return nil
}

// Weights exports the weight matrix row-major, for persistence.
func (r *Readout) Weights() []float64 {
	out := make([]float64, r.outDim*r.size)
	for i := 0; i < r.outDim; i++ {
		for j := 0; j < r.size; j++ {
			out[i*r.size+j] = r.weights.At(i, j)
		}
	}
	return out
}
