package reservoir

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rcliao/trlm/internal/trie"
)

// Engine applies depth-ordered echo-state updates to a hidden state
// vector while walking an input string through a trie.
//
// When noiseAmp > 0 every update perturbs the pre-activation with
// fresh uniform noise, so Forward is intentionally non-deterministic
// for the same input. A zero noiseAmp disables injection and makes
// Forward reproducible, which tests rely on.
type Engine struct {
	alpha    float64
	noiseAmp float64
	rng      *rand.Rand
}

// NewEngine returns an engine with decay constant alpha and per-step
// noise amplitude noiseAmp. rng is only consulted when noiseAmp > 0
// and may be nil otherwise.
func NewEngine(alpha, noiseAmp float64, rng *rand.Rand) *Engine {
	return &Engine{alpha: alpha, noiseAmp: noiseAmp, rng: rng}
}

// Update performs one depth-step in place:
//
//	state[i] = alpha * tanh((w * state)[i] + noise)
func (e *Engine) Update(w *mat.Dense, state *mat.VecDense) {
	raw := mat.NewVecDense(state.Len(), nil)
	raw.MulVec(w, state)
	if e.noiseAmp > 0 {
		for i := 0; i < raw.Len(); i++ {
			raw.SetVec(i, raw.AtVec(i)+e.noiseAmp*uniform(e.rng))
		}
	}
	for i := 0; i < raw.Len(); i++ {
		state.SetVec(i, e.alpha*tanh(raw.AtVec(i)))
	}
}

// Forward walks input through t from the root, applying one Update per
// descended edge with the matrix of the depth the walk is currently
// at. The walk stops at the first byte with no matching child or when
// the depth budget runs out; both are normal outcomes and simply leave
// fewer updates applied. It returns the final state, starting from all
// zeros, and the number of updates performed.
func (e *Engine) Forward(t *trie.Trie, b *Bank, input string) (*mat.VecDense, int) {
	state := mat.NewVecDense(b.Size(), nil)

	budget := t.MaxDepth()
	if b.Depths() < budget {
		budget = b.Depths()
	}

	cur := trie.Root
	steps := 0
	for i := 0; i < len(input) && i < budget; i++ {
		next, ok := t.Child(cur, input[i])
		if !ok {
			break
		}
		e.Update(b.Matrix(t.Depth(cur)), state)
		steps++
		cur = next
	}
	return state, steps
}

// tanh via the exponential ratio (e^x - e^-x) / (e^x + e^-x).
func tanh(x float64) float64 {
	e1 := math.Exp(x)
	e2 := math.Exp(-x)
	return (e1 - e2) / (e1 + e2)
}
